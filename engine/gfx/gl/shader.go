package glbackend

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/larch3d/larch/engine/math3d"
)

// Program is a compiled and linked shader program with a uniform location
// cache. The engine populates the fixed uniform contract every frame; user
// uniforms go through the same Set* methods.
type Program struct {
	id   uint32
	locs map[string]int32
}

// NewProgram compiles and links a program from GLSL sources. geometrySrc may
// be empty. A compile or link failure is fatal for the caller: a broken
// shader cannot safely render anything.
func NewProgram(vertexSrc, fragmentSrc, geometrySrc string) (*Program, error) {
	vs, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return nil, err
	}
	fs, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return nil, err
	}

	var gs uint32
	if geometrySrc != "" {
		gs, err = compileShader(geometrySrc, gl.GEOMETRY_SHADER)
		if err != nil {
			gl.DeleteShader(vs)
			gl.DeleteShader(fs)
			return nil, err
		}
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	if gs != 0 {
		gl.AttachShader(prog, gs)
	}
	gl.LinkProgram(prog)

	gl.DeleteShader(vs)
	gl.DeleteShader(fs)
	if gs != 0 {
		gl.DeleteShader(gs)
	}

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen)+1)
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return nil, fmt.Errorf("program link error: %s", log)
	}

	return &Program{id: prog, locs: map[string]int32{}}, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	if !strings.HasSuffix(src, "\x00") {
		src += "\x00"
	}
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen)+1)
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("%s shader compile error: %s", shaderName(shaderType), log)
	}
	return sh, nil
}

func shaderName(shaderType uint32) string {
	switch shaderType {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	case gl.GEOMETRY_SHADER:
		return "geometry"
	}
	return "unknown"
}

func (p *Program) Bind()   { gl.UseProgram(p.id) }
func (p *Program) Unbind() { gl.UseProgram(0) }

func (p *Program) Release() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

func (p *Program) location(name string) int32 {
	if loc, ok := p.locs[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	if loc < 0 {
		// array uniforms resolve under their first-element name
		loc = gl.GetUniformLocation(p.id, gl.Str(name+"[0]\x00"))
	}
	p.locs[name] = loc
	return loc
}

// The program must be bound before calling any setter.

func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	gl.Uniform1i(p.location(name), i)
}

func (p *Program) SetInt(name string, v int32)     { gl.Uniform1i(p.location(name), v) }
func (p *Program) SetFloat(name string, v float32) { gl.Uniform1f(p.location(name), v) }

func (p *Program) SetVec2(name string, v math3d.Vec2) {
	gl.Uniform2f(p.location(name), v.X, v.Y)
}

func (p *Program) SetVec3(name string, v math3d.Vec3) {
	gl.Uniform3f(p.location(name), v.X, v.Y, v.Z)
}

func (p *Program) SetVec4(name string, v math3d.Vec4) {
	gl.Uniform4f(p.location(name), v.X, v.Y, v.Z, v.W)
}

func (p *Program) SetMat4(name string, m math3d.Mat4) {
	gl.UniformMatrix4fv(p.location(name), 1, false, &m[0])
}

// SetMat4Slice uploads a mat4 array uniform.
func (p *Program) SetMat4Slice(name string, ms []math3d.Mat4) {
	if len(ms) == 0 {
		return
	}
	flat := make([]float32, 0, len(ms)*16)
	for _, m := range ms {
		flat = append(flat, m[:]...)
	}
	gl.UniformMatrix4fv(p.location(name), int32(len(ms)), false, &flat[0])
}

func (p *Program) SetFloatSlice(name string, vs []float32) {
	if len(vs) == 0 {
		return
	}
	gl.Uniform1fv(p.location(name), int32(len(vs)), &vs[0])
}
