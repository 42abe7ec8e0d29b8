package scene

import (
	"github.com/larch3d/larch/engine/core"
)

// Context is the per-frame state handed to every lifecycle callback. The
// engine builds a fresh one each frame; callbacks must not retain it.
type Context struct {
	Window core.Window
	Input  *core.Input
	Clock  *core.FrameClock
	Scene  *Scene
}

// Delta is the last frame's duration in seconds.
func (c *Context) Delta() float32 {
	return c.Clock.Delta()
}

// Aspect is the current framebuffer aspect ratio, 1 when no window is
// attached (headless scene updates) or the framebuffer is degenerate.
func (c *Context) Aspect() float32 {
	if c.Window == nil {
		return 1
	}
	w, h := c.Window.FramebufferSize()
	if h == 0 {
		return 1
	}
	return float32(w) / float32(h)
}
