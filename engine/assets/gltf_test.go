package assets

import (
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	glbackend "github.com/larch3d/larch/engine/gfx/gl"
)

func TestLoadMaterialConvertsFactors(t *testing.T) {
	cutoff := 0.25
	base := [4]float64{0.5, 0.25, 1, 1}
	metallic := 0.8
	roughness := 0.2
	doc := &gltf.Document{
		Materials: []*gltf.Material{{
			AlphaMode:   gltf.AlphaMask,
			AlphaCutoff: &cutoff,
			DoubleSided: true,
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: &base,
				MetallicFactor:  &metallic,
				RoughnessFactor: &roughness,
			},
		}},
	}

	idx := 0
	mat, err := loadMaterial(doc, &idx, "")
	require.NoError(t, err)

	assert.Equal(t, glbackend.AlphaMask, mat.AlphaMode)
	assert.InDelta(t, 0.25, mat.AlphaCutoff, 1e-6)
	assert.True(t, mat.DoubleSided)
	assert.InDelta(t, 0.5, mat.BaseColorFactor.X, 1e-6)
	assert.InDelta(t, 0.25, mat.BaseColorFactor.Y, 1e-6)
	assert.InDelta(t, 1, mat.BaseColorFactor.W, 1e-6)
	assert.InDelta(t, 0.8, mat.MetallicFactor, 1e-6)
	assert.InDelta(t, 0.2, mat.RoughnessFactor, 1e-6)
}

func TestLoadMaterialDefaults(t *testing.T) {
	mat, err := loadMaterial(&gltf.Document{}, nil, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultMaterialData(), mat)
}
