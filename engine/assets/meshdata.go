package assets

import (
	glbackend "github.com/larch3d/larch/engine/gfx/gl"
	"github.com/larch3d/larch/engine/math3d"
)

// MeshData is a mesh on the CPU side: vertices, indices and material
// properties, with textures still as raw pixels. No GL calls happen until
// Upload, so loaders and their tests run without a context.
type MeshData struct {
	Name     string
	Vertices []glbackend.Vertex
	Indices  []uint32
	Material MaterialData
}

// MaterialData mirrors the PBR material slots of the glTF material model.
// Absent textures stay nil and the mesh renders from the scalar factors.
type MaterialData struct {
	BaseColorFactor math3d.Vec4
	MetallicFactor  float32
	RoughnessFactor float32
	DoubleSided     bool
	AlphaMode       glbackend.AlphaMode
	AlphaCutoff     float32

	Diffuse  *ImageData
	Specular *ImageData
}

// ImageData is decoded, tightly packed RGBA8 pixels.
type ImageData struct {
	Width  int
	Height int
	Pixels []byte
}

func DefaultMaterialData() MaterialData {
	return MaterialData{
		BaseColorFactor: math3d.V4(1, 1, 1, 1),
		MetallicFactor:  0,
		RoughnessFactor: 1,
		AlphaMode:       glbackend.AlphaOpaque,
		AlphaCutoff:     0.5,
	}
}

// Upload creates the GPU-side mesh. Requires a current GL context.
func (d *MeshData) Upload() *glbackend.Mesh {
	mat := glbackend.Material{
		BaseColorFactor: d.Material.BaseColorFactor,
		MetallicFactor:  d.Material.MetallicFactor,
		RoughnessFactor: d.Material.RoughnessFactor,
		DoubleSided:     d.Material.DoubleSided,
		AlphaMode:       d.Material.AlphaMode,
		AlphaCutoff:     d.Material.AlphaCutoff,
	}
	if img := d.Material.Diffuse; img != nil {
		mat.Diffuse = glbackend.NewTexture(img.Width, img.Height, img.Pixels, glbackend.TextureDiffuse)
	}
	if img := d.Material.Specular; img != nil {
		mat.Specular = glbackend.NewTexture(img.Width, img.Height, img.Pixels, glbackend.TextureSpecular)
	}
	return glbackend.NewMesh(d.Vertices, d.Indices, mat)
}

// UploadAll uploads a loaded mesh set in order.
func UploadAll(data []MeshData) []*glbackend.Mesh {
	meshes := make([]*glbackend.Mesh, len(data))
	for i := range data {
		meshes[i] = data[i].Upload()
	}
	return meshes
}
