package render

import (
	"unsafe"

	"github.com/larch3d/larch/engine/math3d"
	"github.com/larch3d/larch/engine/scene"
)

// GPU mirror structs for the light storage buffers. Field order and
// padding are the std430 layout of the shader-side structs; the packers
// below copy them to the GPU byte for byte, so any change here must be
// made in the GLSL as well.

type directLightData struct {
	Color              [4]float32
	Direction          [4]float32
	Intensity          float32
	ShadowIndex        int32
	CascadeLevel       int32
	FarPlane           float32
	CascadeSplit       [4]float32
	LightSpaceMatrices [4]math3d.Mat4
}

type pointLightData struct {
	Color       [4]float32
	Position    [4]float32
	Intensity   float32
	ShadowIndex int32
	FarPlane    float32
	_           float32
}

const (
	directLightSize = int(unsafe.Sizeof(directLightData{}))
	pointLightSize  = int(unsafe.Sizeof(pointLightData{}))

	// std430 pads the int light count up to the array's 16-byte alignment
	bufferHeaderSize = 16
)

func newDirectLightData(l *scene.DirectionalLight, shadowIndex int32, vps []math3d.Mat4) directLightData {
	d := l.Direction()
	data := directLightData{
		Color:        l.Color.Array(),
		Direction:    [4]float32{d.X, d.Y, d.Z, 0},
		Intensity:    l.Intensity,
		ShadowIndex:  shadowIndex,
		CascadeLevel: int32(l.Cascades()),
		FarPlane:     l.FarPlane(),
		CascadeSplit: l.CascadeSplits(),
	}
	for i := 0; i < len(vps) && i < len(data.LightSpaceMatrices); i++ {
		data.LightSpaceMatrices[i] = vps[i]
	}
	return data
}

func newPointLightData(l *scene.PointLight, shadowIndex int32) pointLightData {
	p := l.Transform().WorldPosition()
	return pointLightData{
		Color:       l.Color.Array(),
		Position:    [4]float32{p.X, p.Y, p.Z, 1},
		Intensity:   l.Intensity,
		ShadowIndex: shadowIndex,
		FarPlane:    l.FarPlane(),
	}
}

func packDirectLights(lights []directLightData) []byte {
	buf := make([]byte, bufferHeaderSize+len(lights)*directLightSize)
	*(*int32)(unsafe.Pointer(&buf[0])) = int32(len(lights))
	if len(lights) > 0 {
		src := unsafe.Slice((*byte)(unsafe.Pointer(&lights[0])), len(lights)*directLightSize)
		copy(buf[bufferHeaderSize:], src)
	}
	return buf
}

func packPointLights(lights []pointLightData) []byte {
	buf := make([]byte, bufferHeaderSize+len(lights)*pointLightSize)
	*(*int32)(unsafe.Pointer(&buf[0])) = int32(len(lights))
	if len(lights) > 0 {
		src := unsafe.Slice((*byte)(unsafe.Pointer(&lights[0])), len(lights)*pointLightSize)
		copy(buf[bufferHeaderSize:], src)
	}
	return buf
}
