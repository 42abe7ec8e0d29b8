package scene

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/larch3d/larch/engine/core"
	"github.com/larch3d/larch/engine/math3d"
)

const maxPitch = 89.9 // degrees, keeps the fly camera off the poles

// Camera3D is a perspective camera node. The scene renders from whichever
// camera the active-camera path points at; extra cameras in the tree are
// inert. Fly and Look enable the built-in free-fly controls, driven from
// the camera's Behavior.
type Camera3D struct {
	Base

	Fov  float32 // radians
	Near float32
	Far  float32

	Fly         bool
	Look        bool
	Speed       float32
	Sensitivity float32

	aspect float32
}

// NewCamera3D validates the frustum parameters: fov must lie in (0, pi)
// and near must be positive and less than far.
func NewCamera3D(fov, near, far float32) (*Camera3D, error) {
	if fov <= 0 || fov >= math32.Pi {
		return nil, fmt.Errorf("scene: camera fov %v outside (0, pi)", fov)
	}
	if near <= 0 || near >= far {
		return nil, fmt.Errorf("scene: camera planes near=%v far=%v violate 0 < near < far", near, far)
	}
	return &Camera3D{
		Base:        NewBase(),
		Fov:         fov,
		Near:        near,
		Far:         far,
		Speed:       5,
		Sensitivity: 0.1,
		aspect:      1,
	}, nil
}

// SetOrientation points the camera along dir.
func (c *Camera3D) SetOrientation(dir math3d.Vec3) {
	c.Transform().SetRotation(math3d.QuatBetween(dir))
}

// Orientation is the camera's forward vector.
func (c *Camera3D) Orientation() math3d.Vec3 {
	return c.Transform().Forward()
}

// View looks from the camera's world position along its forward vector.
func (c *Camera3D) View() math3d.Mat4 {
	pos := c.Transform().WorldPosition()
	return math3d.LookAt(pos, pos.Add(c.Transform().Forward()), math3d.Up)
}

func (c *Camera3D) Projection(aspect float32) math3d.Mat4 {
	return math3d.Perspective(c.Fov, aspect, c.Near, c.Far)
}

// VP is projection*view for the camera's last known aspect ratio.
func (c *Camera3D) VP() math3d.Mat4 {
	return c.Projection(c.aspect).Mul(c.View())
}

// Behavior keeps the aspect ratio current and runs the optional fly/look
// controls. A camera with both disabled just tracks the framebuffer.
func (c *Camera3D) Behavior(ctx *Context) error {
	c.aspect = ctx.Aspect()
	if c.Fly {
		c.FreeFly(ctx)
	} else if c.Look {
		c.FreeLook(ctx)
	}
	return nil
}

// FreeFly is WASD movement along the camera basis, Space/LeftControl for
// vertical, LeftShift for a 5x speed boost, mouse for rotation.
func (c *Camera3D) FreeFly(ctx *Context) {
	in := ctx.Input
	speed := c.Speed * ctx.Delta()
	if in.IsKeyDown(core.KeyLeftShift) {
		speed *= 5
	}

	forward := c.Transform().Forward()
	right := forward.Cross(math3d.Up).Normalize()

	var move math3d.Vec3
	if in.IsKeyDown(core.KeyW) {
		move = move.Add(forward.Scale(speed))
	}
	if in.IsKeyDown(core.KeyS) {
		move = move.Sub(forward.Scale(speed))
	}
	if in.IsKeyDown(core.KeyA) {
		move = move.Sub(right.Scale(speed))
	}
	if in.IsKeyDown(core.KeyD) {
		move = move.Add(right.Scale(speed))
	}
	if in.IsKeyDown(core.KeySpace) {
		move = move.Add(math3d.Up.Scale(speed))
	}
	if in.IsKeyDown(core.KeyLeftControl) {
		move = move.Sub(math3d.Up.Scale(speed))
	}
	c.Transform().Translate(move)

	c.FreeLook(ctx)
}

// FreeLook rotates the camera from the frame's mouse delta, yaw around
// world up and pitch around the camera's right vector, roll locked to 0.
func (c *Camera3D) FreeLook(ctx *Context) {
	dx, dy := ctx.Input.MouseDelta()
	if dx == 0 && dy == 0 {
		return
	}
	c.rotate(dx, dy, c.Sensitivity*ctx.Delta())
}

func (c *Camera3D) rotate(dx, dy, sensitivity float32) {
	pitchOffset := dy * sensitivity
	yawOffset := -dx * sensitivity

	forward := c.Transform().Forward().Normalize()
	currentPitch := math32.Asin(-forward.Y)

	limit := math3d.Radians(maxPitch)
	targetPitch := math3d.Clamp(currentPitch+pitchOffset, -limit, limit)
	pitchOffset = targetPitch - currentPitch

	right := math3d.Up.Cross(forward).Normalize()
	pitchQuat := math3d.QuatAxisAngle(right, pitchOffset)
	yawQuat := math3d.QuatAxisAngle(math3d.Up, yawOffset)

	c.Transform().SetRotation(yawQuat.Mul(pitchQuat).Mul(c.Transform().Rotation()).Normalize())
}
