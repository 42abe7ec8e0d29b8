package glbackend

import (
	"fmt"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// DepthMapArray is a layered 2D depth texture with an attached framebuffer,
// used for cascaded directional shadows. Layers are addressed as
// lightSlot*MaxCascades + cascade.
type DepthMapArray struct {
	framebuffer uint32
	texture     uint32
	width       int32
	height      int32
	layers      int32
}

func NewDepthMapArray(width, height, layers int32) (*DepthMapArray, error) {
	m := &DepthMapArray{width: width, height: height, layers: layers}

	gl.GenFramebuffers(1, &m.framebuffer)
	gl.GenTextures(1, &m.texture)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, m.texture)

	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	// out-of-frustum samples read as fully lit
	border := [4]float32{1, 1, 1, 1}
	gl.TexParameterfv(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_BORDER_COLOR, &border[0])

	gl.TexStorage3D(gl.TEXTURE_2D_ARRAY, 1, gl.DEPTH_COMPONENT32F, width, height, layers)

	gl.BindFramebuffer(gl.FRAMEBUFFER, m.framebuffer)
	gl.FramebufferTexture(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, m.texture, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		m.Release()
		return nil, fmt.Errorf("shadow framebuffer incomplete: 0x%x", status)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return m, nil
}

// BindFramebuffer makes the depth array the render target and clears it.
func (m *DepthMapArray) BindFramebuffer() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, m.framebuffer)
	gl.Viewport(0, 0, m.width, m.height)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
}

func (m *DepthMapArray) UnbindFramebuffer() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// BindTexture binds the array to a texture unit and points the sampler
// uniform at it. Program must be bound.
func (m *DepthMapArray) BindTexture(p *Program, name string, unit int32) {
	p.SetInt(name, unit)
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, m.texture)
}

func (m *DepthMapArray) Release() {
	if m.texture != 0 {
		gl.DeleteTextures(1, &m.texture)
		m.texture = 0
	}
	if m.framebuffer != 0 {
		gl.DeleteFramebuffers(1, &m.framebuffer)
		m.framebuffer = 0
	}
}
