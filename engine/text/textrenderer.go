package text

import (
	"fmt"

	glbackend "github.com/larch3d/larch/engine/gfx/gl"
	"github.com/larch3d/larch/engine/math3d"
)

const maxQuads = 2048

const vertexSrc = `#version 430 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec4 aColor;
layout (location = 3) in vec2 aUV;

uniform mat4 u_Projection;

out vec4 vColor;
out vec2 vUV;

void main() {
	vColor = aColor;
	vUV = aUV;
	gl_Position = u_Projection * vec4(aPos, 1.0);
}
`

const fragmentSrc = `#version 430 core
in vec4 vColor;
in vec2 vUV;

uniform sampler2D atlas;

out vec4 FragColor;

void main() {
	float coverage = texture(atlas, vUV).a;
	FragColor = vec4(vColor.rgb, vColor.a * coverage);
}
`

// Renderer batches glyph quads in screen space, pixel coordinates with the
// origin at the top left. Draw between Begin and Flush, once per frame.
type Renderer struct {
	program *glbackend.Program
	va      *glbackend.VertexArray
	vb      *glbackend.DynamicVertexBuffer
	ib      *glbackend.IndexBuffer

	vertices []glbackend.Vertex
	atlas    *FontAtlas
}

func NewRenderer() (*Renderer, error) {
	program, err := glbackend.NewProgram(vertexSrc, fragmentSrc, "")
	if err != nil {
		return nil, fmt.Errorf("text shader: %w", err)
	}

	// Quad index pattern is static, only the vertices stream.
	indices := make([]uint32, 0, maxQuads*6)
	for q := uint32(0); q < maxQuads; q++ {
		v := q * 4
		indices = append(indices, v, v+1, v+2, v, v+2, v+3)
	}

	va := glbackend.NewVertexArray()
	va.Bind()
	vb := glbackend.NewDynamicVertexBuffer(maxQuads * 4)
	ib := glbackend.NewIndexBuffer(indices)
	va.Unbind()
	vb.Unbind()
	ib.Unbind()

	return &Renderer{
		program:  program,
		va:       va,
		vb:       vb,
		ib:       ib,
		vertices: make([]glbackend.Vertex, 0, maxQuads*4),
	}, nil
}

// Begin starts a batch sized to the current framebuffer.
func (r *Renderer) Begin(width, height int) {
	r.vertices = r.vertices[:0]
	r.program.Bind()
	r.program.SetMat4("u_Projection",
		math3d.Ortho(0, float32(width), float32(height), 0, -1, 1))
	r.program.Unbind()
}

// Draw appends the glyph quads for s with its top left at (x, y).
func (r *Renderer) Draw(atlas *FontAtlas, x, y, size float32, s string, color math3d.Vec4) {
	if atlas == nil {
		return
	}
	r.atlas = atlas

	scale := size / atlas.SizePx
	penX := x
	baseY := y + atlas.Ascent*scale
	var prev rune = -1

	for _, c := range s {
		if c == '\n' {
			penX = x
			baseY += atlas.LineHeight() * scale
			prev = -1
			continue
		}

		g, ok := atlas.Glyphs[c]
		if !ok {
			if sp, ok2 := atlas.Glyphs[' ']; ok2 {
				penX += sp.Advance * scale
			}
			prev = c
			continue
		}

		if prev >= 0 && atlas.Face != nil {
			penX += float32(atlas.Face.Kern(prev, c)) / 64.0 * scale
		}

		if g.W > 0 && g.H > 0 && len(r.vertices) < maxQuads*4 {
			left := penX + g.BearingX*scale
			top := baseY - g.BearingY*scale
			right := left + float32(g.W)*scale
			bottom := top + float32(g.H)*scale

			r.vertices = append(r.vertices,
				glbackend.Vertex{Position: math3d.V3(left, top, 0), Color: color, UV: math3d.V2(g.U0, g.V0)},
				glbackend.Vertex{Position: math3d.V3(left, bottom, 0), Color: color, UV: math3d.V2(g.U0, g.V1)},
				glbackend.Vertex{Position: math3d.V3(right, bottom, 0), Color: color, UV: math3d.V2(g.U1, g.V1)},
				glbackend.Vertex{Position: math3d.V3(right, top, 0), Color: color, UV: math3d.V2(g.U1, g.V0)},
			)
		}

		penX += g.Advance * scale
		prev = c
	}
}

// Flush uploads the batch and draws it.
func (r *Renderer) Flush() {
	if len(r.vertices) == 0 || r.atlas == nil {
		return
	}

	r.program.Bind()
	r.va.Bind()
	uploaded := r.vb.Update(r.vertices)
	r.ib.Bind()

	r.atlas.Texture.AssignUnit(r.program, "atlas", 0)
	r.atlas.Texture.Bind(0)

	glbackend.DrawIndexed(int32(uploaded / 4 * 6))

	r.atlas.Texture.Unbind()
	r.ib.Unbind()
	r.va.Unbind()
	r.program.Unbind()

	r.vertices = r.vertices[:0]
}

func (r *Renderer) Release() {
	r.ib.Release()
	r.vb.Release()
	r.va.Release()
	r.program.Release()
}
