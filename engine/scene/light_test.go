package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/larch3d/larch/engine/math3d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCascadeSplitsMonotonic(t *testing.T) {
	l := NewDirectionalLight(math3d.V3(1, 1, 1), math3d.V4(1, 1, 1, 1), 100, 4)
	splits := l.CascadeSplits()

	prev := float32(0)
	for i, s := range splits {
		assert.Greater(t, s, prev, "split %d", i)
		prev = s
	}
	// last split covers the full shadow distance
	assert.InDelta(t, 1.0, splits[3], 1e-3)
}

func TestCascadeSplitsBlendUniformAndLog(t *testing.T) {
	const near, far, lambda = 0.1, 100.0, 0.7
	l := NewDirectionalLight(math3d.V3(0, 1, 0), math3d.V4(1, 1, 1, 1), far, 4)
	splits := l.CascadeSplits()

	for i := 1; i <= 4; i++ {
		f := float32(i) / 4
		uniform := float32(near) + (far-near)*f
		logarithmic := float32(near) * math32.Pow(far/near, f)
		want := (lambda*logarithmic + (1-lambda)*uniform) / far
		assert.InDelta(t, want, splits[i-1], 1e-4, "split %d", i)
	}
}

func TestCascadeCountClamped(t *testing.T) {
	assert.Equal(t, 1, NewDirectionalLight(math3d.Up, math3d.V4(1, 1, 1, 1), 50, 0).Cascades())
	assert.Equal(t, 4, NewDirectionalLight(math3d.Up, math3d.V4(1, 1, 1, 1), 50, 9).Cascades())

	// unused split slots pad to 1.0
	l := NewDirectionalLight(math3d.Up, math3d.V4(1, 1, 1, 1), 50, 2)
	splits := l.CascadeSplits()
	assert.Equal(t, float32(1), splits[2])
	assert.Equal(t, float32(1), splits[3])
}

func TestCascadeSelection(t *testing.T) {
	const far = 100.0
	l := NewDirectionalLight(math3d.Up, math3d.V4(1, 1, 1, 1), far, 4)
	splits := l.CascadeSplits()

	// thresholds are farPlane/2 * split; a distance under threshold i and
	// over threshold i-1 selects cascade i
	threshold := func(i int) float32 { return far / 2 * splits[i] }

	tests := []struct {
		dist float32
		want int
	}{
		{0, 0},
		{threshold(0) - 0.01, 0},
		{threshold(0) + 0.01, 1},
		{threshold(1) + 0.01, 2},
		{threshold(2) + 0.01, 3},
		{threshold(3) - 0.01, 3},
		// beyond every threshold falls back to the last cascade
		{threshold(3) + 0.01, 3},
		{far * 10, 3},
	}
	for _, c := range tests {
		assert.Equal(t, c.want, l.CascadeFor(c.dist), "dist %v", c.dist)
	}

	// fewer cascades still fall back to their own last band
	two := NewDirectionalLight(math3d.Up, math3d.V4(1, 1, 1, 1), far, 2)
	assert.Equal(t, 1, two.CascadeFor(far*10))
}

func TestDirectionalLightDirection(t *testing.T) {
	l := NewDirectionalLight(math3d.V3(2, 0, 0), math3d.V4(1, 1, 1, 1), 100, 4)
	assert.True(t, l.Direction().NearEq(math3d.Right3, eps))

	// anti-parallel to the reference axis must still produce a valid rotation
	l.SetDirection(math3d.V3(0, 0, -1))
	f := l.Transform().Forward()
	assert.True(t, f.NearEq(math3d.V3(0, 0, -1), eps))
}

func TestViewProjectionsFollowCenter(t *testing.T) {
	l := NewDirectionalLight(math3d.V3(1, 2, 1), math3d.V4(1, 1, 1, 1), 100, 3)

	vps := l.ViewProjections(math3d.V3(10, 0, -4))
	require.Len(t, vps, 3)

	// the center point projects to the middle of every cascade
	for i, vp := range vps {
		clip := vp.MulVec4(math3d.V4(10, 0, -4, 1))
		assert.InDelta(t, 0, clip.X/clip.W, 1e-3, "cascade %d", i)
		assert.InDelta(t, 0, clip.Y/clip.W, 1e-3, "cascade %d", i)
	}
}

func TestPointLightFaceMatricesCached(t *testing.T) {
	s := NewScene()
	l := NewPointLight(math3d.V4(1, 1, 1, 1), 0.1, 25)
	require.NoError(t, s.Add("light", l))
	s.Update(&Context{Scene: s})

	first := l.FaceMatrices()
	again := l.FaceMatrices()
	assert.Equal(t, first, again)

	l.Transform().SetPosition(math3d.V3(3, 0, 0))
	s.Update(&Context{Scene: s})
	moved := l.FaceMatrices()
	assert.NotEqual(t, first, moved)
}

func TestPointLightFacesCoverAxes(t *testing.T) {
	s := NewScene()
	l := NewPointLight(math3d.V4(1, 1, 1, 1), 0.1, 25)
	require.NoError(t, s.Add("light", l))
	s.Update(&Context{Scene: s})

	faces := l.FaceMatrices()
	axes := [6]math3d.Vec3{
		{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1},
	}
	// a point along each face's axis lands on that face's view center
	for i, axis := range axes {
		clip := faces[i].MulVec4(axis.Scale(5).Vec4(1))
		assert.InDelta(t, 0, clip.X/clip.W, 1e-3, "face %d", i)
		assert.InDelta(t, 0, clip.Y/clip.W, 1e-3, "face %d", i)
	}
}
