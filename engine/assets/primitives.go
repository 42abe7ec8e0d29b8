package assets

import (
	"github.com/chewxy/math32"
	glbackend "github.com/larch3d/larch/engine/gfx/gl"
	"github.com/larch3d/larch/engine/math3d"
)

// Generated primitives are unit sized, centered on the origin, white
// vertex color, with per-face normals and simple planar UVs. Scale and
// tint through the node transform and material factors.

func v(px, py, pz, nx, ny, nz, u, vv float32) glbackend.Vertex {
	return glbackend.Vertex{
		Position: math3d.V3(px, py, pz),
		Normal:   math3d.V3(nx, ny, nz),
		Color:    math3d.V4(1, 1, 1, 1),
		UV:       math3d.V2(u, vv),
	}
}

// Cube is a unit cube with a full UV quad per face.
func Cube() MeshData {
	const h = 0.5
	verts := []glbackend.Vertex{
		// +Z
		v(-h, -h, h, 0, 0, 1, 0, 0), v(h, -h, h, 0, 0, 1, 1, 0),
		v(h, h, h, 0, 0, 1, 1, 1), v(-h, h, h, 0, 0, 1, 0, 1),
		// -Z
		v(h, -h, -h, 0, 0, -1, 0, 0), v(-h, -h, -h, 0, 0, -1, 1, 0),
		v(-h, h, -h, 0, 0, -1, 1, 1), v(h, h, -h, 0, 0, -1, 0, 1),
		// +X
		v(h, -h, h, 1, 0, 0, 0, 0), v(h, -h, -h, 1, 0, 0, 1, 0),
		v(h, h, -h, 1, 0, 0, 1, 1), v(h, h, h, 1, 0, 0, 0, 1),
		// -X
		v(-h, -h, -h, -1, 0, 0, 0, 0), v(-h, -h, h, -1, 0, 0, 1, 0),
		v(-h, h, h, -1, 0, 0, 1, 1), v(-h, h, -h, -1, 0, 0, 0, 1),
		// +Y
		v(-h, h, h, 0, 1, 0, 0, 0), v(h, h, h, 0, 1, 0, 1, 0),
		v(h, h, -h, 0, 1, 0, 1, 1), v(-h, h, -h, 0, 1, 0, 0, 1),
		// -Y
		v(-h, -h, -h, 0, -1, 0, 0, 0), v(h, -h, -h, 0, -1, 0, 1, 0),
		v(h, -h, h, 0, -1, 0, 1, 1), v(-h, -h, h, 0, -1, 0, 0, 1),
	}
	indices := make([]uint32, 0, 36)
	for f := uint32(0); f < 6; f++ {
		base := f * 4
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return MeshData{Name: "cube", Vertices: verts, Indices: indices, Material: DefaultMaterialData()}
}

// Plane is a unit quad in the XZ plane facing up.
func Plane() MeshData {
	const h = 0.5
	verts := []glbackend.Vertex{
		v(-h, 0, h, 0, 1, 0, 0, 0), v(h, 0, h, 0, 1, 0, 1, 0),
		v(h, 0, -h, 0, 1, 0, 1, 1), v(-h, 0, -h, 0, 1, 0, 0, 1),
	}
	return MeshData{
		Name:     "plane",
		Vertices: verts,
		Indices:  []uint32{0, 1, 2, 0, 2, 3},
		Material: DefaultMaterialData(),
	}
}

// Pyramid is a square base with four triangular faces meeting at the apex.
func Pyramid() MeshData {
	const h = 0.5
	apex := math3d.V3(0, h, 0)
	base := [4]math3d.Vec3{
		{X: -h, Y: -h, Z: h}, {X: h, Y: -h, Z: h},
		{X: h, Y: -h, Z: -h}, {X: -h, Y: -h, Z: -h},
	}

	var verts []glbackend.Vertex
	var indices []uint32
	for i := 0; i < 4; i++ {
		a, b := base[i], base[(i+1)%4]
		n := b.Sub(a).Cross(apex.Sub(a)).Normalize()
		start := uint32(len(verts))
		verts = append(verts,
			v(a.X, a.Y, a.Z, n.X, n.Y, n.Z, 0, 0),
			v(b.X, b.Y, b.Z, n.X, n.Y, n.Z, 1, 0),
			v(apex.X, apex.Y, apex.Z, n.X, n.Y, n.Z, 0.5, 1),
		)
		indices = append(indices, start, start+1, start+2)
	}

	// base, wound to face down
	start := uint32(len(verts))
	verts = append(verts,
		v(base[0].X, base[0].Y, base[0].Z, 0, -1, 0, 0, 0),
		v(base[1].X, base[1].Y, base[1].Z, 0, -1, 0, 1, 0),
		v(base[2].X, base[2].Y, base[2].Z, 0, -1, 0, 1, 1),
		v(base[3].X, base[3].Y, base[3].Z, 0, -1, 0, 0, 1),
	)
	indices = append(indices, start, start+2, start+1, start, start+3, start+2)

	return MeshData{Name: "pyramid", Vertices: verts, Indices: indices, Material: DefaultMaterialData()}
}

// Sphere is a UV sphere of radius 0.5.
func Sphere(segments, rings int) MeshData {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}
	const radius = 0.5

	var verts []glbackend.Vertex
	for r := 0; r <= rings; r++ {
		phi := math32.Pi * float32(r) / float32(rings)
		y := math32.Cos(phi)
		ringRadius := math32.Sin(phi)
		for s := 0; s <= segments; s++ {
			theta := 2 * math32.Pi * float32(s) / float32(segments)
			n := math3d.V3(ringRadius*math32.Cos(theta), y, ringRadius*math32.Sin(theta))
			p := n.Scale(radius)
			verts = append(verts, v(p.X, p.Y, p.Z, n.X, n.Y, n.Z,
				float32(s)/float32(segments), 1-float32(r)/float32(rings)))
		}
	}

	var indices []uint32
	stride := uint32(segments + 1)
	for r := uint32(0); r < uint32(rings); r++ {
		for s := uint32(0); s < uint32(segments); s++ {
			a := r*stride + s
			b := a + stride
			indices = append(indices, a, a+1, b, a+1, b+1, b)
		}
	}

	return MeshData{Name: "sphere", Vertices: verts, Indices: indices, Material: DefaultMaterialData()}
}

// Cylinder is a closed cylinder of radius 0.5 and height 1 along Y.
func Cylinder(segments int) MeshData {
	if segments < 3 {
		segments = 3
	}
	const radius, h = 0.5, 0.5

	var verts []glbackend.Vertex
	var indices []uint32

	// side wall, smooth normals
	for s := 0; s <= segments; s++ {
		theta := 2 * math32.Pi * float32(s) / float32(segments)
		nx, nz := math32.Cos(theta), math32.Sin(theta)
		u := float32(s) / float32(segments)
		verts = append(verts,
			v(nx*radius, -h, nz*radius, nx, 0, nz, u, 0),
			v(nx*radius, h, nz*radius, nx, 0, nz, u, 1),
		)
	}
	for s := uint32(0); s < uint32(segments); s++ {
		a := s * 2
		indices = append(indices, a, a+1, a+2, a+1, a+3, a+2)
	}

	// caps, fanned from center
	for _, end := range []struct {
		y, ny float32
	}{{h, 1}, {-h, -1}} {
		center := uint32(len(verts))
		verts = append(verts, v(0, end.y, 0, 0, end.ny, 0, 0.5, 0.5))
		for s := 0; s <= segments; s++ {
			theta := 2 * math32.Pi * float32(s) / float32(segments)
			cx, cz := math32.Cos(theta), math32.Sin(theta)
			verts = append(verts, v(cx*radius, end.y, cz*radius, 0, end.ny, 0,
				0.5+cx/2, 0.5+cz/2))
		}
		for s := uint32(0); s < uint32(segments); s++ {
			if end.ny > 0 {
				indices = append(indices, center, center+2+s, center+1+s)
			} else {
				indices = append(indices, center, center+1+s, center+2+s)
			}
		}
	}

	return MeshData{Name: "cylinder", Vertices: verts, Indices: indices, Material: DefaultMaterialData()}
}
