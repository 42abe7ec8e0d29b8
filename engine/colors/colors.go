package colors

import "github.com/larch3d/larch/engine/math3d"

type Color [4]float32

var (
	White    = Color{1, 1, 1, 1}
	Red      = Color{1, 0, 0, 1}
	Green    = Color{0, 1, 0, 1}
	Blue     = Color{0, 0, 1, 1}
	Black    = Color{0, 0, 0, 1}
	Magenta  = Color{1, 0, 1, 1}
	Cyan     = Color{0, 1, 1, 1}
	Yellow   = Color{1, 1, 0, 1}
	Orange   = Color{1, 0.6, 0.2, 1}
	Gray     = Color{0.5, 0.5, 0.5, 1}
	DarkGray = Color{0.08, 0.10, 0.12, 1}
	Warm     = Color{1, 0.95, 0.85, 1} // sunlight
)

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Vec4 converts for shader uniforms and light colors.
func (c Color) Vec4() math3d.Vec4 { return math3d.V4(c[0], c[1], c[2], c[3]) }

// Scale multiplies the RGB channels, leaving alpha.
func (c Color) Scale(s float32) Color {
	return Color{c[0] * s, c[1] * s, c[2] * s, c[3]}
}
