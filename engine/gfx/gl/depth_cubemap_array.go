package glbackend

import (
	"fmt"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// DepthCubeMapArray is a layered cube depth texture for point-light shadows.
// Each light occupies 6 consecutive layer-faces starting at lightSlot*6. The
// fragment stage stores linearized distance-to-light normalized by the
// light's far plane, so depth values are comparable across lights.
type DepthCubeMapArray struct {
	framebuffer uint32
	texture     uint32
	resolution  int32
	cubes       int32
}

func NewDepthCubeMapArray(resolution, cubes int32) (*DepthCubeMapArray, error) {
	m := &DepthCubeMapArray{resolution: resolution, cubes: cubes}

	gl.GenFramebuffers(1, &m.framebuffer)
	gl.GenTextures(1, &m.texture)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP_ARRAY, m.texture)

	gl.TexParameteri(gl.TEXTURE_CUBE_MAP_ARRAY, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP_ARRAY, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP_ARRAY, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP_ARRAY, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP_ARRAY, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)

	// layer count for cube arrays is faces, 6 per cube
	gl.TexStorage3D(gl.TEXTURE_CUBE_MAP_ARRAY, 1, gl.DEPTH_COMPONENT32F,
		resolution, resolution, cubes*6)

	gl.BindFramebuffer(gl.FRAMEBUFFER, m.framebuffer)
	gl.FramebufferTexture(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, m.texture, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		m.Release()
		return nil, fmt.Errorf("cube shadow framebuffer incomplete: 0x%x", status)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return m, nil
}

func (m *DepthCubeMapArray) BindFramebuffer() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, m.framebuffer)
	gl.Viewport(0, 0, m.resolution, m.resolution)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
}

func (m *DepthCubeMapArray) UnbindFramebuffer() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

func (m *DepthCubeMapArray) BindTexture(p *Program, name string, unit int32) {
	p.SetInt(name, unit)
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_CUBE_MAP_ARRAY, m.texture)
}

func (m *DepthCubeMapArray) Release() {
	if m.texture != 0 {
		gl.DeleteTextures(1, &m.texture)
		m.texture = 0
	}
	if m.framebuffer != 0 {
		gl.DeleteFramebuffers(1, &m.framebuffer)
		m.framebuffer = 0
	}
}
