package assets

import (
	"fmt"
	"os"
	"path/filepath"

	glbackend "github.com/larch3d/larch/engine/gfx/gl"
)

// LoadShaderSource reads a GLSL file from assets/shaders.
func LoadShaderSource(name string) (string, error) {
	path := filepath.Join("assets", "shaders", name)
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", name, err)
	}
	return string(b), nil
}

// LoadProgram compiles a program from shader files under assets/shaders.
// geometryName may be empty. Compilation failure is fatal to the caller.
func LoadProgram(vertexName, fragmentName, geometryName string) (*glbackend.Program, error) {
	vs, err := LoadShaderSource(vertexName)
	if err != nil {
		return nil, err
	}
	fs, err := LoadShaderSource(fragmentName)
	if err != nil {
		return nil, err
	}
	var gs string
	if geometryName != "" {
		if gs, err = LoadShaderSource(geometryName); err != nil {
			return nil, err
		}
	}
	return glbackend.NewProgram(vs, fs, gs)
}
