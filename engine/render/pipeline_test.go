package render

import (
	"testing"
	"unsafe"

	"github.com/larch3d/larch/engine/math3d"
	"github.com/larch3d/larch/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The GPU reads these structs raw, so the Go layout must match the std430
// offsets of the shader-side declarations exactly.

func TestDirectLightDataLayout(t *testing.T) {
	var d directLightData
	assert.Equal(t, uintptr(0), unsafe.Offsetof(d.Color))
	assert.Equal(t, uintptr(16), unsafe.Offsetof(d.Direction))
	assert.Equal(t, uintptr(32), unsafe.Offsetof(d.Intensity))
	assert.Equal(t, uintptr(36), unsafe.Offsetof(d.ShadowIndex))
	assert.Equal(t, uintptr(40), unsafe.Offsetof(d.CascadeLevel))
	assert.Equal(t, uintptr(44), unsafe.Offsetof(d.FarPlane))
	assert.Equal(t, uintptr(48), unsafe.Offsetof(d.CascadeSplit))
	assert.Equal(t, uintptr(64), unsafe.Offsetof(d.LightSpaceMatrices))
	assert.Equal(t, 320, directLightSize)
}

func TestPointLightDataLayout(t *testing.T) {
	var d pointLightData
	assert.Equal(t, uintptr(0), unsafe.Offsetof(d.Color))
	assert.Equal(t, uintptr(16), unsafe.Offsetof(d.Position))
	assert.Equal(t, uintptr(32), unsafe.Offsetof(d.Intensity))
	assert.Equal(t, uintptr(36), unsafe.Offsetof(d.ShadowIndex))
	assert.Equal(t, uintptr(40), unsafe.Offsetof(d.FarPlane))
	assert.Equal(t, 48, pointLightSize)
}

func TestPackPrefixesCount(t *testing.T) {
	lights := []pointLightData{
		{Intensity: 1}, {Intensity: 2}, {Intensity: 3},
	}
	buf := packPointLights(lights)

	require.Len(t, buf, bufferHeaderSize+3*pointLightSize)
	assert.Equal(t, int32(3), *(*int32)(unsafe.Pointer(&buf[0])))

	first := (*pointLightData)(unsafe.Pointer(&buf[bufferHeaderSize]))
	assert.Equal(t, float32(1), first.Intensity)
}

func TestPackEmpty(t *testing.T) {
	buf := packDirectLights(nil)
	require.Len(t, buf, bufferHeaderSize)
	assert.Equal(t, int32(0), *(*int32)(unsafe.Pointer(&buf[0])))
}

func TestDirectLightDataFromLight(t *testing.T) {
	l := scene.NewDirectionalLight(math3d.V3(1, 1, 0), math3d.V4(1, 0.9, 0.8, 1), 80, 3)
	l.Intensity = 2

	vps := l.ViewProjections(math3d.Zero3)
	data := newDirectLightData(l, 1, vps)

	assert.Equal(t, int32(1), data.ShadowIndex)
	assert.Equal(t, int32(3), data.CascadeLevel)
	assert.Equal(t, float32(80), data.FarPlane)
	assert.Equal(t, l.CascadeSplits(), data.CascadeSplit)
	assert.Equal(t, float32(0), data.Direction[3])
	assert.Equal(t, vps[0], data.LightSpaceMatrices[0])
	// unused cascade slots stay zero
	assert.Equal(t, math3d.Mat4{}, data.LightSpaceMatrices[3])
}

func buildScene(t *testing.T, direct, point int) *scene.Scene {
	t.Helper()
	s := scene.NewScene()
	for i := 0; i < direct; i++ {
		l := scene.NewDirectionalLight(math3d.V3(1, 1, 1), math3d.V4(1, 1, 1, 1), 100, 4)
		require.NoError(t, s.Add(string(rune('a'+i)), l))
	}
	for i := 0; i < point; i++ {
		l := scene.NewPointLight(math3d.V4(1, 1, 1, 1), 0.1, 25)
		require.NoError(t, s.Add(string(rune('A'+i)), l))
	}
	return s
}

func TestCollectPartitionsNodes(t *testing.T) {
	s := scene.NewScene()
	group := scene.NewGroup()
	require.NoError(t, s.Add("group", group))
	require.NoError(t, group.Children().Add("model", scene.NewModel()))
	require.NoError(t, s.Add("sun", scene.NewDirectionalLight(math3d.Up, math3d.V4(1, 1, 1, 1), 100, 4)))
	require.NoError(t, s.Add("lamp", scene.NewPointLight(math3d.V4(1, 1, 1, 1), 0.1, 25)))

	var p Pipeline
	f := p.collect(s)

	assert.Len(t, f.models, 1)
	assert.Len(t, f.direct, 1)
	assert.Len(t, f.point, 1)
}

func TestCollectTruncatesExcessLights(t *testing.T) {
	s := buildScene(t, 6, 18)

	var p Pipeline
	f := p.collect(s)

	assert.Len(t, f.direct, 4)
	assert.Len(t, f.point, 16)
	// first lights by insertion order survive
	assert.Same(t, s.Get("a"), scene.Node(f.direct[0]))
	assert.Same(t, s.Get("d"), scene.Node(f.direct[3]))
}

func TestCollectSlotsAreFrameScoped(t *testing.T) {
	s := buildScene(t, 2, 0)

	var p Pipeline
	f := p.collect(s)
	require.Len(t, f.direct, 2)
	second := f.direct[1]

	// removing the first light promotes the second to slot 0 next frame
	s.Root().Children().Remove("a")
	f = p.collect(s)
	require.Len(t, f.direct, 1)
	assert.Same(t, second, f.direct[0])
}
