package assets

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	glbackend "github.com/larch3d/larch/engine/gfx/gl"
	"github.com/larch3d/larch/engine/math3d"
)

// LoadModel reads a glTF or GLB file into one MeshData per triangle
// primitive. Positions are required; normals, UVs and vertex colors are
// optional. PBR materials map onto MaterialData with embedded or external
// textures decoded to RGBA8. A missing texture is not fatal: the mesh
// falls back to its scalar factors.
func LoadModel(path string) ([]MeshData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf %q: %w", path, err)
	}

	var out []MeshData
	for _, m := range doc.Meshes {
		for pi, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
				continue
			}
			data, err := loadPrimitive(doc, prim, filepath.Dir(path))
			if err != nil {
				return nil, fmt.Errorf("mesh %q primitive %d: %w", m.Name, pi, err)
			}
			data.Name = m.Name
			out = append(out, data)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("gltf %q: no triangle primitives", path)
	}
	return out, nil
}

func loadPrimitive(doc *gltf.Document, prim *gltf.Primitive, dir string) (MeshData, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return MeshData{}, fmt.Errorf("primitive has no positions")
	}
	positions, err := readVec3(doc, posIdx)
	if err != nil {
		return MeshData{}, fmt.Errorf("positions: %w", err)
	}

	var normals []math3d.Vec3
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = readVec3(doc, idx); err != nil {
			return MeshData{}, fmt.Errorf("normals: %w", err)
		}
	}
	var uvs []math3d.Vec2
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = readVec2(doc, idx); err != nil {
			return MeshData{}, fmt.Errorf("uvs: %w", err)
		}
	}

	verts := make([]glbackend.Vertex, len(positions))
	for i, p := range positions {
		verts[i] = glbackend.Vertex{
			Position: p,
			Color:    math3d.V4(1, 1, 1, 1),
		}
		if i < len(normals) {
			verts[i].Normal = normals[i]
		}
		if i < len(uvs) {
			// glTF V origin is top-left, GL samples bottom-left
			verts[i].UV = math3d.V2(uvs[i].X, 1-uvs[i].Y)
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		if indices, err = readIndices(doc, *prim.Indices); err != nil {
			return MeshData{}, fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(verts))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	material, err := loadMaterial(doc, prim.Material, dir)
	if err != nil {
		return MeshData{}, err
	}

	return MeshData{Vertices: verts, Indices: indices, Material: material}, nil
}

func loadMaterial(doc *gltf.Document, idx *int, dir string) (MaterialData, error) {
	mat := DefaultMaterialData()
	if idx == nil {
		return mat, nil
	}
	src := doc.Materials[*idx]

	switch src.AlphaMode {
	case gltf.AlphaMask:
		mat.AlphaMode = glbackend.AlphaMask
		mat.AlphaCutoff = float32(src.AlphaCutoffOrDefault())
	case gltf.AlphaBlend:
		mat.AlphaMode = glbackend.AlphaBlend
	}
	mat.DoubleSided = src.DoubleSided

	pbr := src.PBRMetallicRoughness
	if pbr == nil {
		return mat, nil
	}
	bc := pbr.BaseColorFactorOrDefault()
	mat.BaseColorFactor = math3d.V4(
		float32(bc[0]), float32(bc[1]), float32(bc[2]), float32(bc[3]))
	mat.MetallicFactor = float32(pbr.MetallicFactorOrDefault())
	mat.RoughnessFactor = float32(pbr.RoughnessFactorOrDefault())

	if pbr.BaseColorTexture != nil {
		img, err := loadTextureImage(doc, int(pbr.BaseColorTexture.Index), dir)
		if err != nil {
			return mat, fmt.Errorf("base color texture: %w", err)
		}
		mat.Diffuse = img
	}
	if pbr.MetallicRoughnessTexture != nil {
		img, err := loadTextureImage(doc, int(pbr.MetallicRoughnessTexture.Index), dir)
		if err != nil {
			return mat, fmt.Errorf("metallic roughness texture: %w", err)
		}
		mat.Specular = img
	}
	return mat, nil
}

// loadTextureImage resolves a texture to decoded pixels, from the GLB
// binary chunk or an external file next to the document.
func loadTextureImage(doc *gltf.Document, texIdx int, dir string) (*ImageData, error) {
	if texIdx < 0 || texIdx >= len(doc.Textures) {
		return nil, fmt.Errorf("texture index %d out of range", texIdx)
	}
	tex := doc.Textures[texIdx]
	if tex.Source == nil {
		return nil, fmt.Errorf("texture %d has no image source", texIdx)
	}
	img := doc.Images[*tex.Source]

	var raw []byte
	switch {
	case img.BufferView != nil:
		bv := doc.BufferViews[*img.BufferView]
		buf := doc.Buffers[bv.Buffer]
		if buf.Data == nil {
			return nil, fmt.Errorf("image buffer %d has no data", bv.Buffer)
		}
		raw = buf.Data[bv.ByteOffset : bv.ByteOffset+bv.ByteLength]
	case img.URI != "":
		b, err := os.ReadFile(filepath.Join(dir, img.URI))
		if err != nil {
			return nil, fmt.Errorf("read image %q: %w", img.URI, err)
		}
		raw = b
	default:
		return nil, fmt.Errorf("image %d has neither buffer view nor uri", *tex.Source)
	}

	decoded, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return imageData(decoded), nil
}

func readVec3(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	acc := doc.Accessors[accessorIdx]
	if acc.Type != gltf.AccessorVec3 || acc.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v/%v", acc.Type, acc.ComponentType)
	}
	data, stride, err := accessorBytes(doc, acc, 12)
	if err != nil {
		return nil, err
	}
	out := make([]math3d.Vec3, acc.Count)
	for i := range out {
		off := i * stride
		out[i] = math3d.V3(f32(data[off:]), f32(data[off+4:]), f32(data[off+8:]))
	}
	return out, nil
}

func readVec2(doc *gltf.Document, accessorIdx int) ([]math3d.Vec2, error) {
	acc := doc.Accessors[accessorIdx]
	if acc.Type != gltf.AccessorVec2 || acc.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC2, got %v/%v", acc.Type, acc.ComponentType)
	}
	data, stride, err := accessorBytes(doc, acc, 8)
	if err != nil {
		return nil, err
	}
	out := make([]math3d.Vec2, acc.Count)
	for i := range out {
		off := i * stride
		out[i] = math3d.V2(f32(data[off:]), f32(data[off+4:]))
	}
	return out, nil
}

func readIndices(doc *gltf.Document, accessorIdx int) ([]uint32, error) {
	acc := doc.Accessors[accessorIdx]
	if acc.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", acc.Type)
	}

	var compSize int
	switch acc.ComponentType {
	case gltf.ComponentUbyte:
		compSize = 1
	case gltf.ComponentUshort:
		compSize = 2
	case gltf.ComponentUint:
		compSize = 4
	default:
		return nil, fmt.Errorf("unsupported index component type %v", acc.ComponentType)
	}

	data, stride, err := accessorBytes(doc, acc, compSize)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, acc.Count)
	for i := range out {
		off := i * stride
		switch compSize {
		case 1:
			out[i] = uint32(data[off])
		case 2:
			out[i] = uint32(binary.LittleEndian.Uint16(data[off:]))
		case 4:
			out[i] = binary.LittleEndian.Uint32(data[off:])
		}
	}
	return out, nil
}

// accessorBytes resolves an accessor to its backing bytes and element
// stride. Only embedded (GLB) buffers are supported.
func accessorBytes(doc *gltf.Document, acc *gltf.Accessor, elemSize int) ([]byte, int, error) {
	if acc.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	bv := doc.BufferViews[*acc.BufferView]
	buf := doc.Buffers[bv.Buffer]
	if buf.Data == nil {
		return nil, 0, fmt.Errorf("buffer %d has no embedded data", bv.Buffer)
	}
	stride := int(bv.ByteStride)
	if stride == 0 {
		stride = elemSize
	}
	start := int(bv.ByteOffset) + int(acc.ByteOffset)
	return buf.Data[start:], stride, nil
}

func f32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
