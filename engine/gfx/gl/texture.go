package glbackend

import (
	"github.com/go-gl/gl/v4.3-core/gl"
)

// TextureKind tells the material layer which sampler uniform a texture
// belongs to.
type TextureKind int

const (
	TextureDiffuse TextureKind = iota
	TextureSpecular
)

// UniformName is the sampler uniform the main shader expects for this kind.
func (k TextureKind) UniformName() string {
	switch k {
	case TextureDiffuse:
		return "diffuse0"
	case TextureSpecular:
		return "specular0"
	}
	return "diffuse0"
}

type Texture struct {
	id   uint32
	Kind TextureKind
}

// NewTexture uploads tightly packed RGBA8 pixels (bottom-left origin).
func NewTexture(width, height int, rgba []byte, kind TextureKind) *Texture {
	t := &Texture{Kind: kind}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)

	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t
}

// NewUITexture uploads RGBA8 pixels with nearest filtering and edge clamp,
// no mipmaps. Used for font atlases and other screen-space imagery.
func NewUITexture(width, height int, rgba []byte) *Texture {
	t := &Texture{Kind: TextureDiffuse}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t
}

// WhiteTexture is the 1x1 placeholder substituted when an asset's texture is
// missing, so a broken material still renders from its scalar factors.
func WhiteTexture() *Texture {
	return NewTexture(1, 1, []byte{0xff, 0xff, 0xff, 0xff}, TextureDiffuse)
}

// AssignUnit points the sampler uniform at a texture unit. Program must be
// bound.
func (t *Texture) AssignUnit(p *Program, name string, unit int32) {
	p.SetInt(name, unit)
}

func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

func (t *Texture) Unbind() {
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (t *Texture) Release() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}
