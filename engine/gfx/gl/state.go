package glbackend

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// Device limits for per-frame light packing. Lights beyond these are dropped
// in collection order.
const (
	MaxDirectionalLights = 4
	MaxPointLights       = 16
	MaxCascades          = 4
)

// Init loads the GL function pointers. The window context must be current.
func Init() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	slog.Info("GL ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	return nil
}

// EnableDebug installs a GL debug message callback that forwards driver
// messages to the logger. Requires a debug context.
func EnableDebug() {
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	gl.DebugMessageCallback(func(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
		switch severity {
		case gl.DEBUG_SEVERITY_HIGH:
			slog.Error("GL", "id", id, "message", message)
		case gl.DEBUG_SEVERITY_MEDIUM, gl.DEBUG_SEVERITY_LOW:
			slog.Warn("GL", "id", id, "message", message)
		default:
			slog.Debug("GL", "id", id, "message", message)
		}
	}, nil)
}

func Viewport(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}

func ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SetDepthTest toggles depth testing, off for overlay drawing.
func SetDepthTest(enabled bool) {
	if enabled {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
}

// DrawIndexed issues an indexed triangle draw from the bound vertex array
// and index buffer.
func DrawIndexed(count int32) {
	gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_INT, unsafe.Pointer(uintptr(0)))
}

// SetCullFace toggles back-face culling, off for double-sided materials.
func SetCullFace(enabled bool) {
	if enabled {
		gl.Enable(gl.CULL_FACE)
	} else {
		gl.Disable(gl.CULL_FACE)
	}
}
