package scene

import (
	"github.com/larch3d/larch/engine/math3d"
)

// Transform is a node's position, rotation and scale relative to its parent.
// The local matrix is T*R*S and is cached until a component changes; the
// world matrix is parent.world * local and is recomputed by the scene walk
// for dirty subtrees only.
type Transform struct {
	position math3d.Vec3
	rotation math3d.Quat
	scale    math3d.Vec3

	local      math3d.Mat4
	world      math3d.Mat4
	localDirty bool
	worldDirty bool
}

func NewTransform() Transform {
	return Transform{
		position:   math3d.Zero3,
		rotation:   math3d.QuatIdent(),
		scale:      math3d.One3,
		local:      math3d.Ident(),
		world:      math3d.Ident(),
		localDirty: false,
		worldDirty: true,
	}
}

func (t *Transform) Position() math3d.Vec3 { return t.position }
func (t *Transform) Rotation() math3d.Quat { return t.rotation }
func (t *Transform) Scale() math3d.Vec3    { return t.scale }

func (t *Transform) SetPosition(p math3d.Vec3) {
	t.position = p
	t.markDirty()
}

func (t *Transform) SetRotation(q math3d.Quat) {
	t.rotation = q.Normalize()
	t.markDirty()
}

func (t *Transform) SetScale(s math3d.Vec3) {
	t.scale = s
	t.markDirty()
}

func (t *Transform) SetUniformScale(s float32) {
	t.SetScale(math3d.V3(s, s, s))
}

// Translate offsets the position in parent space.
func (t *Transform) Translate(d math3d.Vec3) {
	t.SetPosition(t.position.Add(d))
}

// TranslateLocal offsets the position along the transform's own basis
// vectors, so "forward" follows the current rotation.
func (t *Transform) TranslateLocal(d math3d.Vec3) {
	step := t.Right().Scale(d.X).Add(t.Up().Scale(d.Y)).Add(t.Forward().Scale(d.Z))
	t.SetPosition(t.position.Add(step))
}

// Rotate composes an additional rotation on top of the current one.
func (t *Transform) Rotate(q math3d.Quat) {
	t.SetRotation(q.Mul(t.rotation))
}

// RotateEuler applies XYZ euler angles in radians.
func (t *Transform) RotateEuler(x, y, z float32) {
	t.Rotate(math3d.QuatEulerXYZ(x, y, z))
}

func (t *Transform) Forward() math3d.Vec3 {
	return t.rotation.Rotate(math3d.Forward3)
}

func (t *Transform) Right() math3d.Vec3 {
	return t.rotation.Rotate(math3d.Right3)
}

func (t *Transform) Up() math3d.Vec3 {
	return t.rotation.Rotate(math3d.Up)
}

// Compose combines a parent transform with this one into a flat transform:
// positions add, rotations multiply and renormalize, scales multiply
// componentwise. Useful for baking a hierarchy level away.
func (t *Transform) Compose(parent *Transform) Transform {
	out := NewTransform()
	out.SetPosition(parent.position.Add(t.position))
	out.SetRotation(parent.rotation.Mul(t.rotation))
	out.SetScale(parent.scale.Mul(t.scale))
	return out
}

// Local returns the cached T*R*S matrix, rebuilding it if a component
// changed since the last call.
func (t *Transform) Local() math3d.Mat4 {
	if t.localDirty {
		t.local = math3d.TRS(t.position, t.rotation, t.scale)
		t.localDirty = false
	}
	return t.local
}

// World returns the world matrix as of the last scene walk. Reading it
// between a mutation and the next walk returns the stale value.
func (t *Transform) World() math3d.Mat4 { return t.world }

func (t *Transform) WorldPosition() math3d.Vec3 {
	return t.world.Translation()
}

// Dirty reports whether the world matrix needs recomputation.
func (t *Transform) Dirty() bool { return t.worldDirty }

func (t *Transform) markDirty() {
	t.localDirty = true
	t.worldDirty = true
}

// updateWorld recomputes the world matrix from the parent's. Called by the
// scene walk; parentDirty forces recomputation even when the local
// transform is clean, because an ancestor moved.
func (t *Transform) updateWorld(parent math3d.Mat4, parentDirty bool) bool {
	if !t.worldDirty && !parentDirty {
		return false
	}
	t.world = parent.Mul(t.Local())
	t.worldDirty = false
	return true
}
