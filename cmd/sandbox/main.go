package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/larch3d/larch/engine/app"
	"github.com/larch3d/larch/engine/assets"
	"github.com/larch3d/larch/engine/colors"
	"github.com/larch3d/larch/engine/core"
	glbackend "github.com/larch3d/larch/engine/gfx/gl"
	"github.com/larch3d/larch/engine/math3d"
	"github.com/larch3d/larch/engine/scene"
	"github.com/larch3d/larch/engine/text"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg := core.DefaultConfig("Larch Sandbox")
	engine, err := app.New(cfg)
	if err != nil {
		slog.Error("engine init failed", "error", err)
		os.Exit(1)
	}
	defer engine.Shutdown()

	s, err := buildScene(engine)
	if err != nil {
		slog.Error("scene build failed", "error", err)
		os.Exit(1)
	}
	engine.LoadScene(s)
	engine.Window().SetCursorLocked(true)

	engine.Run()
}

func buildScene(engine *app.Engine) (*scene.Scene, error) {
	s := scene.NewScene()

	camera, err := scene.NewCamera3D(math3d.Radians(60), 0.1, 300)
	if err != nil {
		return nil, err
	}
	camera.Fly = true
	camera.Transform().SetPosition(math3d.V3(0, 3, 10))
	camera.SetOrientation(math3d.V3(0, -0.2, -1))
	if err := s.Add("camera", camera); err != nil {
		return nil, err
	}
	s.SetActiveCamera("camera")

	sun := scene.NewDirectionalLight(
		math3d.V3(0.5, 1, 0.3), colors.Warm.Vec4(),
		engine.Config().ShadowDistance, 4)
	sun.Intensity = 1.2
	sun.CastShadows = true
	if err := s.Add("sun", sun); err != nil {
		return nil, err
	}

	lamp := scene.NewPointLight(colors.Orange.Vec4(), 0.1, 40)
	lamp.Intensity = 2
	lamp.CastShadows = true
	lamp.Transform().SetPosition(math3d.V3(4, 4, 0))
	if err := s.Add("lamp", lamp); err != nil {
		return nil, err
	}

	if err := addGeometry(s); err != nil {
		return nil, err
	}
	if err := addSpinner(s); err != nil {
		return nil, err
	}
	addHUD(s)

	return s, nil
}

func addGeometry(s *scene.Scene) error {
	floor := assets.Plane()
	floor.Material.BaseColorFactor = colors.Gray.Vec4()
	floor.Material.Diffuse = assets.Checkerboard(256, 16)

	cube := assets.Cube()
	cube.Material.BaseColorFactor = colors.Red.Vec4()

	sphere := assets.Sphere(32, 16)
	sphere.Material.BaseColorFactor = colors.Blue.Vec4()

	nodes := []struct {
		name    string
		data    assets.MeshData
		pos     math3d.Vec3
		scale   float32
		shadows bool
	}{
		{"floor", floor, math3d.V3(0, 0, 0), 40, false},
		{"cube", cube, math3d.V3(-2, 0.5, 0), 1, true},
		{"sphere", sphere, math3d.V3(2, 1, -2), 2, true},
	}
	for _, n := range nodes {
		model := scene.NewModel(n.data.Upload())
		model.CastShadows = n.shadows
		model.Transform().SetPosition(n.pos)
		model.Transform().SetUniformScale(n.scale)
		if err := s.Add(n.name, model); err != nil {
			return err
		}
	}

	// A transparent pane near the sphere, drawn back to front after the
	// opaque geometry.
	pane := assets.Cube()
	pane.Material.BaseColorFactor = math3d.V4(0.3, 0.8, 0.9, 0.4)
	pane.Material.AlphaMode = glbackend.AlphaBlend
	pane.Material.DoubleSided = true
	paneModel := scene.NewModel(pane.Upload())
	paneModel.Transform().SetPosition(math3d.V3(2, 1, 1))
	paneModel.Transform().SetScale(math3d.V3(2, 2, 0.1))
	if err := s.Add("pane", paneModel); err != nil {
		return err
	}

	// Optional glTF content, skipped when the asset is missing.
	if meshes, err := assets.LoadModel("assets/models/helmet.glb"); err == nil {
		model := scene.NewModel(assets.UploadAll(meshes)...)
		model.CastShadows = true
		model.Transform().SetPosition(math3d.V3(0, 1.5, -5))
		if err := s.Add("helmet", model); err != nil {
			return err
		}
	} else {
		slog.Info("glTF sample not loaded", "error", err)
	}

	return nil
}

// addSpinner puts a pyramid on a slowly orbiting pivot, exercising nested
// transforms and per-frame behaviors.
func addSpinner(s *scene.Scene) error {
	pyramid := assets.Pyramid()
	pyramid.Material.BaseColorFactor = colors.Yellow.Vec4()
	model := scene.NewModel(pyramid.Upload())
	model.CastShadows = true
	model.Transform().SetPosition(math3d.V3(4, 0, 0))

	pivot := scene.NewScripted()
	pivot.OnBehavior = func(n *scene.Scripted, ctx *scene.Context) error {
		n.Transform().RotateEuler(0, ctx.Delta()*0.8, 0)
		return nil
	}
	pivot.Transform().SetPosition(math3d.V3(0, 1.5, 0))

	spinner, err := scene.Build(pivot).Child("pyramid", model).Done()
	if err != nil {
		return err
	}
	return s.Add("spinner", spinner)
}

// addHUD wires the FPS overlay and the escape/click cursor toggle.
func addHUD(s *scene.Scene) {
	var atlas *text.FontAtlas
	var hud *text.Renderer

	if a, err := text.LoadTTF("RobotoMono.ttf", 32); err == nil {
		atlas = a
		if r, rerr := text.NewRenderer(); rerr == nil {
			hud = r
		} else {
			slog.Warn("text renderer unavailable", "error", rerr)
		}
	} else {
		slog.Warn("font not loaded, HUD disabled", "error", err)
	}

	s.AddOverlay("hud", func(ctx *scene.Context) {
		if hud == nil || atlas == nil {
			return
		}
		w, h := ctx.Window.FramebufferSize()
		hud.Begin(w, h)
		hud.Draw(atlas, 10, 10, 20,
			fmt.Sprintf("%d fps", ctx.Clock.FPS()), colors.White.Vec4())
		hud.Flush()
	})

	controls := scene.NewScripted()
	controls.OnBehavior = func(n *scene.Scripted, ctx *scene.Context) error {
		if ctx.Input.IsKeyDown(core.KeyEscape) && ctx.Window.CursorLocked() {
			ctx.Window.SetCursorLocked(false)
			ctx.Input.ResetMouseDelta()
		}
		if ctx.Input.IsMouseButtonDown(0) && !ctx.Window.CursorLocked() {
			ctx.Window.SetCursorLocked(true)
			ctx.Input.ResetMouseDelta()
		}
		if cam := ctx.Scene.ActiveCamera(); cam != nil {
			cam.Look = ctx.Window.CursorLocked()
			cam.Fly = ctx.Window.CursorLocked()
		}
		return nil
	}
	if err := s.Add("controls", controls); err != nil {
		slog.Warn("controls node not added", "error", err)
	}
}
