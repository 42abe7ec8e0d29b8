package math3d

import (
	"fmt"

	"github.com/chewxy/math32"
)

type Vec2 struct {
	X, Y float32
}

func V2(x, y float32) Vec2 { return Vec2{x, y} }

func (v Vec2) Add(o Vec2) Vec2        { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2        { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float32) Vec2   { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Len() float32           { return math32.Sqrt(v.X*v.X + v.Y*v.Y) }
func (v Vec2) IsZero() bool           { return v.X == 0 && v.Y == 0 }
func (v Vec2) String() string         { return fmt.Sprintf("(%.3f %.3f)", v.X, v.Y) }

// Vec3 is a 3-component float32 vector, Y up.
type Vec3 struct {
	X, Y, Z float32
}

func V3(x, y, z float32) Vec3 { return Vec3{x, y, z} }

var (
	Zero3    = Vec3{}
	One3     = Vec3{1, 1, 1}
	Up       = Vec3{0, 1, 0}
	Right3   = Vec3{1, 0, 0}
	Forward3 = Vec3{0, 0, 1}
)

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Mul(o Vec3) Vec3      { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }
func (v Vec3) Scale(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Neg() Vec3            { return Vec3{-v.X, -v.Y, -v.Z} }

func (v Vec3) Dot(o Vec3) float32 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Len() float32 { return math32.Sqrt(v.Dot(v)) }

func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

func (v Vec3) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }

// NearEq compares componentwise with tolerance eps.
func (v Vec3) NearEq(o Vec3, eps float32) bool {
	return math32.Abs(v.X-o.X) < eps &&
		math32.Abs(v.Y-o.Y) < eps &&
		math32.Abs(v.Z-o.Z) < eps
}

func (v Vec3) Vec4(w float32) Vec4 { return Vec4{v.X, v.Y, v.Z, w} }

func (v Vec3) String() string { return fmt.Sprintf("(%.3f %.3f %.3f)", v.X, v.Y, v.Z) }

type Vec4 struct {
	X, Y, Z, W float32
}

func V4(x, y, z, w float32) Vec4 { return Vec4{x, y, z, w} }

func (v Vec4) Vec3() Vec3            { return Vec3{v.X, v.Y, v.Z} }
func (v Vec4) Scale(s float32) Vec4  { return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s} }
func (v Vec4) Array() [4]float32     { return [4]float32{v.X, v.Y, v.Z, v.W} }
func (v Vec4) String() string        { return fmt.Sprintf("(%.3f %.3f %.3f %.3f)", v.X, v.Y, v.Z, v.W) }

func Radians(degrees float32) float32 { return degrees * math32.Pi / 180 }
func Degrees(radians float32) float32 { return radians * 180 / math32.Pi }

func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Mix is the GLSL linear blend: a*(1-t) + b*t.
func Mix(a, b, t float32) float32 { return a + (b-a)*t }
