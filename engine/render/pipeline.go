package render

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/larch3d/larch/engine/core"
	glbackend "github.com/larch3d/larch/engine/gfx/gl"
	"github.com/larch3d/larch/engine/math3d"
	"github.com/larch3d/larch/engine/profiler"
	"github.com/larch3d/larch/engine/scene"
)

// Texture units reserved for the shadow samplers, above the material
// units meshes bind.
const (
	shadowMapUnit     = 10
	shadowCubeMapUnit = 11
)

// Pipeline runs the per-frame pass sequence: collect lights, depth passes
// for directional cascades and point-light cubes, the lit color pass, then
// overlays. Shadow storage is allocated once for the device light limits
// and layered per frame-scoped slot.
type Pipeline struct {
	cfg core.Config

	main      *glbackend.Program
	depth     *glbackend.Program
	cubeDepth *glbackend.Program

	shadowMaps  *glbackend.DepthMapArray
	shadowCubes *glbackend.DepthCubeMapArray

	directBuffer *glbackend.StorageBuffer
	pointBuffer  *glbackend.StorageBuffer

	// last reported truncation counts, to warn once per change instead of
	// every frame
	warnedDirect int
	warnedPoint  int
}

func NewPipeline(cfg core.Config) (*Pipeline, error) {
	main, err := glbackend.NewProgram(glbackend.MainVertexSrc, glbackend.MainFragmentSrc, "")
	if err != nil {
		return nil, fmt.Errorf("main shader: %w", err)
	}
	depth, err := glbackend.NewProgram(glbackend.DepthVertexSrc, glbackend.DepthFragmentSrc, glbackend.DepthGeometrySrc)
	if err != nil {
		return nil, fmt.Errorf("cascade depth shader: %w", err)
	}
	cubeDepth, err := glbackend.NewProgram(glbackend.DepthVertexSrc, glbackend.CubeDepthFragmentSrc, glbackend.CubeDepthGeometrySrc)
	if err != nil {
		return nil, fmt.Errorf("cube depth shader: %w", err)
	}

	res := cfg.ShadowResolution
	shadowMaps, err := glbackend.NewDepthMapArray(res, res, glbackend.MaxDirectionalLights*glbackend.MaxCascades)
	if err != nil {
		return nil, fmt.Errorf("directional shadow storage: %w", err)
	}
	shadowCubes, err := glbackend.NewDepthCubeMapArray(res, glbackend.MaxPointLights)
	if err != nil {
		return nil, fmt.Errorf("point shadow storage: %w", err)
	}

	return &Pipeline{
		cfg:          cfg,
		main:         main,
		depth:        depth,
		cubeDepth:    cubeDepth,
		shadowMaps:   shadowMaps,
		shadowCubes:  shadowCubes,
		directBuffer: glbackend.NewStorageBuffer(),
		pointBuffer:  glbackend.NewStorageBuffer(),
	}, nil
}

// frameNodes is everything one tree scan yields for the frame's passes.
type frameNodes struct {
	models []*scene.Model
	direct []*scene.DirectionalLight
	point  []*scene.PointLight
}

// collect scans the scene tree and partitions the drawables and lights.
// Lights beyond the slot limits are dropped in traversal order.
func (p *Pipeline) collect(s *scene.Scene) frameNodes {
	var f frameNodes
	s.Root().Children().Walk(func(name string, n scene.Node) {
		switch v := n.(type) {
		case *scene.Model:
			f.models = append(f.models, v)
		case *scene.DirectionalLight:
			f.direct = append(f.direct, v)
		case *scene.PointLight:
			f.point = append(f.point, v)
		}
	})

	if dropped := len(f.direct) - glbackend.MaxDirectionalLights; dropped > 0 {
		if dropped != p.warnedDirect {
			slog.Warn("too many directional lights, truncating",
				"active", glbackend.MaxDirectionalLights, "dropped", dropped)
		}
		p.warnedDirect = dropped
		f.direct = f.direct[:glbackend.MaxDirectionalLights]
	} else {
		p.warnedDirect = 0
	}
	if dropped := len(f.point) - glbackend.MaxPointLights; dropped > 0 {
		if dropped != p.warnedPoint {
			slog.Warn("too many point lights, truncating",
				"active", glbackend.MaxPointLights, "dropped", dropped)
		}
		p.warnedPoint = dropped
		f.point = f.point[:glbackend.MaxPointLights]
	} else {
		p.warnedPoint = 0
	}
	return f
}

// Frame renders one frame of the scene. Pass order is fixed: every shadow
// pass completes before the color pass samples its texture, by submission
// order on the single GL command stream.
func (p *Pipeline) Frame(ctx *scene.Context) {
	w, h := ctx.Window.FramebufferSize()
	cam := ctx.Scene.ActiveCamera()
	if cam == nil {
		p.clearBackbuffer(w, h)
		p.overlayPass(ctx)
		return
	}

	nodes := p.collect(ctx.Scene)
	camPos := cam.Transform().WorldPosition()

	directData := p.directionalShadowPass(nodes, camPos)
	pointData := p.pointShadowPass(nodes)
	p.colorPass(ctx, nodes, cam, directData, pointData)
	p.overlayPass(ctx)
}

// directionalShadowPass renders every shadow-casting directional light's
// cascades into the array texture and returns the packed light data.
// Slots are assigned in collection order, fresh each frame.
func (p *Pipeline) directionalShadowPass(nodes frameNodes, camPos math3d.Vec3) []directLightData {
	defer profiler.Start("pass.shadow.directional")()
	data := make([]directLightData, 0, len(nodes.direct))

	p.depth.Bind()
	p.shadowMaps.BindFramebuffer()
	for slot, l := range nodes.direct {
		vps := l.ViewProjections(camPos)
		shadowIndex := int32(-1)
		if l.CastShadows {
			shadowIndex = int32(slot)
			p.depth.SetMat4Slice("light.matrices", vps)
			p.depth.SetInt("light.index", int32(slot))
			p.depth.SetInt("light.cascadeDepth", int32(l.Cascades()))
			for _, m := range nodes.models {
				m.DrawShadow(p.depth)
			}
		}
		data = append(data, newDirectLightData(l, shadowIndex, vps))
	}
	p.shadowMaps.UnbindFramebuffer()
	return data
}

// pointShadowPass renders each shadow-casting point light's six cube
// faces, storing linearized distance over the light's far plane.
func (p *Pipeline) pointShadowPass(nodes frameNodes) []pointLightData {
	defer profiler.Start("pass.shadow.point")()
	data := make([]pointLightData, 0, len(nodes.point))

	p.cubeDepth.Bind()
	p.shadowCubes.BindFramebuffer()
	for slot, l := range nodes.point {
		shadowIndex := int32(-1)
		if l.CastShadows {
			shadowIndex = int32(slot)
			faces := l.FaceMatrices()
			p.cubeDepth.SetMat4Slice("shadowMatrices", faces[:])
			p.cubeDepth.SetInt("lightIndex", int32(slot))
			p.cubeDepth.SetVec3("lightPos", l.Transform().WorldPosition())
			p.cubeDepth.SetFloat("farPlane", l.FarPlane())
			for _, m := range nodes.models {
				m.DrawShadow(p.cubeDepth)
			}
		}
		data = append(data, newPointLightData(l, shadowIndex))
	}
	p.shadowCubes.UnbindFramebuffer()
	return data
}

func (p *Pipeline) colorPass(ctx *scene.Context, nodes frameNodes, cam *scene.Camera3D, directData []directLightData, pointData []pointLightData) {
	defer profiler.Start("pass.color")()
	w, h := ctx.Window.FramebufferSize()
	p.clearBackbuffer(w, h)

	directBytes := packDirectLights(directData)
	p.directBuffer.SetData(unsafe.Pointer(&directBytes[0]), len(directBytes))
	p.directBuffer.Bind(0)
	pointBytes := packPointLights(pointData)
	p.pointBuffer.SetData(unsafe.Pointer(&pointBytes[0]), len(pointBytes))
	p.pointBuffer.Bind(1)

	vp := cam.VP()
	camPos := cam.Transform().WorldPosition()

	var bound *glbackend.Program
	for _, m := range nodes.models {
		prog := p.main
		if m.ShaderName != "" {
			if s := ctx.Scene.Shader(m.ShaderName); s != nil {
				prog = s
			} else {
				slog.Warn("model references unregistered shader, using default", "shader", m.ShaderName)
			}
		}
		if prog != bound {
			p.bindFrameUniforms(prog, ctx.Scene, vp, camPos)
			bound = prog
		}
		m.Draw(prog, camPos)
	}
}

// bindFrameUniforms sets the per-frame uniform contract on a program:
// camera matrices, lighting globals and the shadow samplers.
func (p *Pipeline) bindFrameUniforms(prog *glbackend.Program, s *scene.Scene, vp math3d.Mat4, camPos math3d.Vec3) {
	prog.Bind()
	prog.SetMat4("u_VP", vp)
	prog.SetVec3("camPos", camPos)
	prog.SetFloat("scene.ambient", s.Ambient)
	prog.SetFloat("scene.biasFactor", s.BiasFactor)
	prog.SetFloat("scene.biasOffset", s.BiasOffset)
	p.shadowMaps.BindTexture(prog, "shadowMaps", shadowMapUnit)
	p.shadowCubes.BindTexture(prog, "shadowCubeMaps", shadowCubeMapUnit)
}

// overlayPass draws the registered 2D overlays straight to the back
// buffer, depth testing off, in registration order.
func (p *Pipeline) overlayPass(ctx *scene.Context) {
	overlays := ctx.Scene.Overlays()
	if len(overlays) == 0 {
		return
	}
	glbackend.SetDepthTest(false)
	for _, ov := range overlays {
		ov.Draw(ctx)
	}
	glbackend.SetDepthTest(true)
}

func (p *Pipeline) clearBackbuffer(w, h int) {
	glbackend.Viewport(w, h)
	c := p.cfg.ClearColor
	glbackend.ClearColor(c[0], c[1], c[2], c[3])
	glbackend.Clear()
}

// Release frees the pipeline's GPU resources in reverse acquisition order.
func (p *Pipeline) Release() {
	p.pointBuffer.Release()
	p.directBuffer.Release()
	p.shadowCubes.Release()
	p.shadowMaps.Release()
	p.cubeDepth.Release()
	p.depth.Release()
	p.main.Release()
}
