package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/larch3d/larch/engine/math3d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraValidation(t *testing.T) {
	_, err := NewCamera3D(0, 0.1, 100)
	assert.Error(t, err)
	_, err = NewCamera3D(math32.Pi, 0.1, 100)
	assert.Error(t, err)
	_, err = NewCamera3D(math32.Pi/4, 100, 0.1)
	assert.Error(t, err)
	_, err = NewCamera3D(math32.Pi/4, 0, 100)
	assert.Error(t, err)

	cam, err := NewCamera3D(math32.Pi/4, 0.1, 100)
	require.NoError(t, err)
	assert.NotNil(t, cam)
}

func TestCameraOrientation(t *testing.T) {
	cam, err := NewCamera3D(math32.Pi/4, 0.1, 100)
	require.NoError(t, err)

	cam.SetOrientation(math3d.V3(1, 0, 0))
	assert.True(t, cam.Orientation().NearEq(math3d.Right3, eps))

	cam.SetOrientation(math3d.V3(0, 0, -1))
	assert.True(t, cam.Orientation().NearEq(math3d.V3(0, 0, -1), eps))
}

func TestCameraViewLooksAlongForward(t *testing.T) {
	s := NewScene()
	cam, err := NewCamera3D(math32.Pi/4, 0.1, 100)
	require.NoError(t, err)
	cam.Transform().SetPosition(math3d.V3(0, 0, 5))
	cam.SetOrientation(math3d.V3(0, 0, -1))
	require.NoError(t, s.Add("camera", cam))
	s.Update(&Context{Scene: s})

	view := cam.View()
	// a point straight ahead lands on the -Z view axis
	p := view.MulPoint(math3d.V3(0, 0, 0))
	assert.True(t, p.NearEq(math3d.V3(0, 0, -5), eps))
}

// A scene update without a window must not bring the walk down: the
// camera's per-frame aspect refresh falls back to 1.
func TestCameraBehaviorHeadless(t *testing.T) {
	s := NewScene()
	cam, err := NewCamera3D(math32.Pi/4, 0.1, 100)
	require.NoError(t, err)
	require.NoError(t, s.Add("camera", cam))

	ctx := &Context{Scene: s}
	assert.NotPanics(t, func() { s.Update(ctx) })
	assert.Equal(t, float32(1), ctx.Aspect())
	assert.NoError(t, cam.Behavior(ctx))
}

func TestCameraPitchClamp(t *testing.T) {
	cam, err := NewCamera3D(math32.Pi/4, 0.1, 100)
	require.NoError(t, err)

	// crank pitch way past vertical; forward must never reach the pole
	for i := 0; i < 100; i++ {
		cam.rotate(0, 10, 1)
	}
	f := cam.Transform().Forward()
	assert.Less(t, math32.Abs(f.Y), float32(1.0))
	limit := math32.Sin(math3d.Radians(maxPitch))
	assert.LessOrEqual(t, math32.Abs(f.Y), limit+eps)
}

func TestActiveCameraLookup(t *testing.T) {
	s := NewScene()
	cam, err := NewCamera3D(math32.Pi/4, 0.1, 100)
	require.NoError(t, err)
	rig := NewGroup()
	require.NoError(t, s.Add("rig", rig))
	require.NoError(t, rig.Children().Add("camera", cam))

	assert.Nil(t, s.ActiveCamera())

	s.SetActiveCamera("rig/camera")
	assert.Same(t, cam, s.ActiveCamera())

	s.SetActiveCamera("rig/missing")
	assert.Nil(t, s.ActiveCamera())
}
