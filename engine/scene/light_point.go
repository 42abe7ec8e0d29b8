package scene

import (
	"github.com/larch3d/larch/engine/math3d"
)

// PointLight emits in all directions from its world position with
// quadratic falloff. Shadows render into six cube faces; the face
// matrices use a 90 degree square frustum so the faces tile the full
// sphere exactly.
type PointLight struct {
	Base

	Color       math3d.Vec4
	Intensity   float32
	CastShadows bool

	nearPlane float32
	farPlane  float32

	faces        [6]math3d.Mat4
	lastPosition math3d.Vec3
	facesBuilt   bool
}

func NewPointLight(color math3d.Vec4, nearPlane, farPlane float32) *PointLight {
	return &PointLight{
		Base:        NewBase(),
		Color:       color,
		Intensity:   1,
		CastShadows: true,
		nearPlane:   nearPlane,
		farPlane:    farPlane,
	}
}

func (l *PointLight) FarPlane() float32 { return l.farPlane }

// FaceMatrices returns the six cube-face view-projections for the light's
// current world position. Rebuilt only when the light has moved; cube-map
// convention flips the up vectors for the horizontal faces.
func (l *PointLight) FaceMatrices() [6]math3d.Mat4 {
	pos := l.Transform().WorldPosition()
	if l.facesBuilt && pos == l.lastPosition {
		return l.faces
	}

	proj := math3d.Perspective(math3d.Radians(90), 1, l.nearPlane, l.farPlane)
	downY := math3d.V3(0, -1, 0)

	targets := [6]math3d.Vec3{
		{X: 1}, {X: -1},
		{Y: 1}, {Y: -1},
		{Z: 1}, {Z: -1},
	}
	ups := [6]math3d.Vec3{
		downY, downY,
		{Z: 1}, {Z: -1},
		downY, downY,
	}
	for i := range targets {
		l.faces[i] = proj.Mul(math3d.LookAt(pos, pos.Add(targets[i]), ups[i]))
	}

	l.lastPosition = pos
	l.facesBuilt = true
	return l.faces
}
