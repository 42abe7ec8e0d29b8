package scene

import (
	"sort"

	glbackend "github.com/larch3d/larch/engine/gfx/gl"
	"github.com/larch3d/larch/engine/math3d"
)

// Model is a drawable node: one or more meshes sharing the node's
// transform. Opaque meshes draw first; alpha-blended meshes draw after,
// sorted back to front from the camera so blending composes correctly.
type Model struct {
	Base

	Meshes []*glbackend.Mesh

	// CastShadows excludes the model from all depth passes when false.
	CastShadows bool
	// Lighting disables the lighting term entirely when false; the model
	// renders at full base color, useful for light gizmos and skyboxes.
	Lighting bool
	// ShaderName selects a registered scene shader; empty means the
	// built-in lit shader.
	ShaderName string
}

func NewModel(meshes ...*glbackend.Mesh) *Model {
	return &Model{
		Base:        NewBase(),
		Meshes:      meshes,
		CastShadows: true,
		Lighting:    true,
	}
}

// Draw issues the model's draw calls with the world matrix bound. camPos
// orders the transparent meshes.
func (m *Model) Draw(p *glbackend.Program, camPos math3d.Vec3) {
	world := m.Transform().World()
	p.SetMat4("u_Model", world)
	p.SetBool("u_LightingEnabled", m.Lighting)

	var transparent []*glbackend.Mesh
	for _, mesh := range m.Meshes {
		if mesh.Material.AlphaMode == glbackend.AlphaBlend {
			transparent = append(transparent, mesh)
			continue
		}
		mesh.Draw(p)
	}
	if len(transparent) == 0 {
		return
	}

	dist := func(mesh *glbackend.Mesh) float32 {
		c := world.MulPoint(mesh.Center)
		return c.Sub(camPos).Len()
	}
	sort.Slice(transparent, func(i, j int) bool {
		return dist(transparent[i]) > dist(transparent[j])
	})
	for _, mesh := range transparent {
		mesh.Draw(p)
	}
}

// DrawShadow renders depth only, positions bound and materials skipped.
func (m *Model) DrawShadow(p *glbackend.Program) {
	if !m.CastShadows {
		return
	}
	p.SetMat4("u_Model", m.Transform().World())
	for _, mesh := range m.Meshes {
		mesh.DrawDepth()
	}
}

// Release frees the model's GPU buffers.
func (m *Model) Release() {
	for _, mesh := range m.Meshes {
		mesh.Release()
	}
	m.Meshes = nil
}
