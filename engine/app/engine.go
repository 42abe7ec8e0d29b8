package app

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/larch3d/larch/engine/core"
	glbackend "github.com/larch3d/larch/engine/gfx/gl"
	"github.com/larch3d/larch/engine/platform"
	"github.com/larch3d/larch/engine/profiler"
	"github.com/larch3d/larch/engine/render"
	"github.com/larch3d/larch/engine/scene"
)

// Engine owns the window, the render pipeline and the active scene, and
// drives the per-frame loop: poll, dispatch behaviors, propagate
// transforms, render, present.
type Engine struct {
	cfg      core.Config
	window   *platform.GLFWWindow
	input    *core.Input
	clock    *core.FrameClock
	pipeline *render.Pipeline
	scene    *scene.Scene
}

// New creates the window and GL state. Must be called on the main thread;
// the run loop stays locked to it for the context's sake.
func New(cfg core.Config) (*Engine, error) {
	runtime.LockOSThread()

	input := core.NewInput()
	window, err := platform.NewGLFWWindow(cfg, nil)
	if err != nil {
		return nil, fmt.Errorf("window: %w", err)
	}
	if err := glbackend.Init(); err != nil {
		window.Terminate()
		return nil, err
	}
	if cfg.GLDebug {
		glbackend.EnableDebug()
	}

	pipeline, err := render.NewPipeline(cfg)
	if err != nil {
		window.Terminate()
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	window.SetEventCallback(input.Handle)

	return &Engine{
		cfg:      cfg,
		window:   window,
		input:    input,
		clock:    core.NewFrameClock(),
		pipeline: pipeline,
	}, nil
}

func (e *Engine) Window() core.Window     { return e.window }
func (e *Engine) Input() *core.Input      { return e.input }
func (e *Engine) Scene() *scene.Scene     { return e.scene }
func (e *Engine) Config() core.Config     { return e.cfg }
func (e *Engine) Clock() *core.FrameClock { return e.clock }

// LoadScene swaps in a scene, releasing the previous one's GPU resources.
func (e *Engine) LoadScene(s *scene.Scene) {
	if e.scene != nil {
		e.scene.Release()
	}
	e.scene = s
}

// Run executes the main loop until the window closes. Behaviors run before
// rendering every frame, so a frame always draws the world it just stepped.
func (e *Engine) Run() {
	for !e.window.ShouldClose() {
		e.clock.Tick(func(fps int) {
			e.window.SetTitle(fmt.Sprintf("%s | %d fps", e.cfg.Title, fps))
		})
		e.window.PollEvents()

		ctx := &scene.Context{
			Window: e.window,
			Input:  e.input,
			Clock:  e.clock,
			Scene:  e.scene,
		}
		if e.scene != nil {
			end := profiler.Start("frame")
			e.scene.Update(ctx)
			e.pipeline.Frame(ctx)
			end()
		}

		e.input.EndFrame()
		e.window.SwapBuffers()
	}
	slog.Info("engine exit")
}

// Shutdown releases everything in reverse acquisition order.
func (e *Engine) Shutdown() {
	if e.scene != nil {
		e.scene.Release()
		e.scene = nil
	}
	e.pipeline.Release()
	e.window.Terminate()
}
