package assets

import (
	"testing"

	"github.com/larch3d/larch/engine/math3d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allPrimitives() map[string]MeshData {
	return map[string]MeshData{
		"cube":     Cube(),
		"plane":    Plane(),
		"pyramid":  Pyramid(),
		"sphere":   Sphere(16, 8),
		"cylinder": Cylinder(16),
	}
}

func TestPrimitiveIndicesInBounds(t *testing.T) {
	for name, md := range allPrimitives() {
		require.NotEmpty(t, md.Vertices, name)
		require.NotEmpty(t, md.Indices, name)
		require.Zero(t, len(md.Indices)%3, "%s: indices must form triangles", name)
		for _, i := range md.Indices {
			assert.Less(t, int(i), len(md.Vertices), name)
		}
	}
}

func TestPrimitiveNormalsAreUnit(t *testing.T) {
	for name, md := range allPrimitives() {
		for i, vert := range md.Vertices {
			assert.InDelta(t, 1.0, vert.Normal.Len(), 1e-3, "%s vertex %d", name, i)
		}
	}
}

// Every triangle must wind counter-clockwise seen from outside. The closed
// shapes are centered on the origin, so a face normal pointing away from
// the center has a positive dot product with the centroid direction. The
// plane is flat through the origin and gets its own check below.
func TestPrimitiveWindingFacesOutward(t *testing.T) {
	for name, md := range allPrimitives() {
		if name == "plane" {
			continue
		}
		for t0 := 0; t0 < len(md.Indices); t0 += 3 {
			a := md.Vertices[md.Indices[t0]].Position
			b := md.Vertices[md.Indices[t0+1]].Position
			c := md.Vertices[md.Indices[t0+2]].Position
			face := b.Sub(a).Cross(c.Sub(a))
			if face.Len() < 1e-6 {
				continue // degenerate pole triangle on the sphere
			}
			centroid := a.Add(b).Add(c).Scale(1.0 / 3.0)
			assert.Greater(t, face.Dot(centroid), float32(0),
				"%s triangle %d winds inward", name, t0/3)
		}
	}
}

func TestPlaneFacesUp(t *testing.T) {
	md := Plane()
	for _, vert := range md.Vertices {
		assert.Equal(t, math3d.V3(0, 1, 0), vert.Normal)
		assert.InDelta(t, 0, vert.Position.Y, 1e-6)
	}
}

func TestSphereRadius(t *testing.T) {
	md := Sphere(24, 12)
	for i, vert := range md.Vertices {
		assert.InDelta(t, 0.5, vert.Position.Len(), 1e-4, "vertex %d", i)
		// outward normal matches the position direction on a sphere
		assert.InDelta(t, 1.0, vert.Normal.Dot(vert.Position.Normalize()), 1e-3)
	}
}

func TestCubeVertexCount(t *testing.T) {
	md := Cube()
	assert.Len(t, md.Vertices, 24)
	assert.Len(t, md.Indices, 36)
}

func TestCheckerboardAlternates(t *testing.T) {
	img := Checkerboard(64, 8)
	require.Equal(t, 64, img.Width)
	require.Equal(t, 64, img.Height)
	require.Len(t, img.Pixels, 64*64*4)

	at := func(x, y int) byte { return img.Pixels[(y*64+x)*4] } // red channel
	assert.NotEqual(t, at(0, 0), at(8, 0), "adjacent cells share a color")
	assert.Equal(t, at(0, 0), at(16, 0), "cells two steps apart share a color")
	assert.Equal(t, at(0, 0), at(8, 8), "diagonal cells share a color")
}

func TestDefaultMaterialData(t *testing.T) {
	m := DefaultMaterialData()
	assert.Equal(t, math3d.V4(1, 1, 1, 1), m.BaseColorFactor)
	assert.Nil(t, m.Diffuse)
	assert.Nil(t, m.Specular)
}
