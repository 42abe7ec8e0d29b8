package glbackend

import (
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/larch3d/larch/engine/math3d"
)

type AlphaMode int

const (
	AlphaOpaque AlphaMode = iota
	AlphaMask
	AlphaBlend
)

// Material holds the per-primitive shading inputs the engine maps onto the
// main shader's uniform contract. Texture slots may be nil: presence flags
// drive conditional sampling in the shader, so a material without a texture
// renders from its scalar factors and never samples an unbound unit.
type Material struct {
	BaseColorFactor math3d.Vec4
	MetallicFactor  float32
	RoughnessFactor float32
	DoubleSided     bool
	AlphaMode       AlphaMode
	AlphaCutoff     float32

	Diffuse  *Texture
	Specular *Texture
}

// DefaultMaterial is the fallback substituted for missing or invalid
// material data.
func DefaultMaterial() Material {
	return Material{
		BaseColorFactor: math3d.V4(1, 1, 1, 1),
		MetallicFactor:  1,
		RoughnessFactor: 1,
		AlphaCutoff:     0.5, // gltf pipeline default
	}
}

// Mesh is one GPU-resident primitive: geometry buffers plus the material.
type Mesh struct {
	Center   math3d.Vec3
	Material Material

	va *VertexArray
	vb *VertexBuffer
	ib *IndexBuffer
}

func NewMesh(vertices []Vertex, indices []uint32, material Material) *Mesh {
	va := NewVertexArray()
	va.Bind()
	vb := NewVertexBuffer(vertices)
	ib := NewIndexBuffer(indices)
	va.Unbind()
	vb.Unbind()
	ib.Unbind()

	return &Mesh{
		Center:   centerOf(vertices),
		Material: material,
		va:       va,
		vb:       vb,
		ib:       ib,
	}
}

// Draw binds the material's uniforms and issues the indexed draw call.
// The program must be bound; u_Model and camera state are set by the caller.
func (m *Mesh) Draw(p *Program) {
	m.va.Bind()
	m.ib.Bind()

	unit := int32(0)
	if m.Material.Diffuse != nil {
		p.SetBool("useTexture", true)
		m.Material.Diffuse.AssignUnit(p, m.Material.Diffuse.Kind.UniformName(), unit)
		m.Material.Diffuse.Bind(uint32(unit))
		unit++
	}
	if m.Material.Specular != nil {
		m.Material.Specular.AssignUnit(p, m.Material.Specular.Kind.UniformName(), unit)
		m.Material.Specular.Bind(uint32(unit))
		unit++
	}

	p.SetVec4("baseColorFactor", m.Material.BaseColorFactor)
	p.SetFloat("u_SpecularStrength", 0.5*m.Material.MetallicFactor*(1-m.Material.RoughnessFactor*0.5))

	if m.Material.AlphaMode == AlphaMask {
		p.SetBool("useAlphaCutoff", true)
		p.SetFloat("alphaCutoff", m.Material.AlphaCutoff)
	}

	if m.Material.DoubleSided {
		SetCullFace(false)
	}

	gl.DrawElements(gl.TRIANGLES, m.ib.Count(), gl.UNSIGNED_INT, unsafe.Pointer(uintptr(0)))

	if m.Material.DoubleSided {
		SetCullFace(true)
	}

	// reset presence flags so the next mesh starts clean
	if m.Material.Diffuse != nil {
		m.Material.Diffuse.Unbind()
	}
	if m.Material.Specular != nil {
		m.Material.Specular.Unbind()
	}
	p.SetBool("useTexture", false)
	p.SetBool("useAlphaCutoff", false)

	m.va.Unbind()
	m.ib.Unbind()
}

// DrawDepth issues the draw with no material state, for shadow passes.
func (m *Mesh) DrawDepth() {
	m.va.Bind()
	m.ib.Bind()
	gl.DrawElements(gl.TRIANGLES, m.ib.Count(), gl.UNSIGNED_INT, unsafe.Pointer(uintptr(0)))
	m.va.Unbind()
	m.ib.Unbind()
}

func (m *Mesh) Release() {
	m.ib.Release()
	m.vb.Release()
	m.va.Release()
}

func centerOf(vertices []Vertex) math3d.Vec3 {
	if len(vertices) == 0 {
		return math3d.Zero3
	}
	sum := math3d.Zero3
	for _, v := range vertices {
		sum = sum.Add(v.Position)
	}
	return sum.Scale(1 / float32(len(vertices)))
}
