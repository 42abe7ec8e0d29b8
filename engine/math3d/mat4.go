package math3d

import (
	"fmt"

	"github.com/chewxy/math32"
)

/*	column-major, GLSL convention
	+-          -+
	| 0  4  8 12 |
	| 1  5  9 13 |
	| 2  6 10 14 |
	| 3  7 11 15 |
	+-          -+
*/
type Mat4 [16]float32

func Ident() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func Translate(v Vec3) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		v.X, v.Y, v.Z, 1,
	}
}

func Scale(v Vec3) Mat4 {
	return Mat4{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}
}

func (a Mat4) Mul(b Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[col*4+row] = a[0*4+row]*b[col*4+0] +
				a[1*4+row]*b[col*4+1] +
				a[2*4+row]*b[col*4+2] +
				a[3*4+row]*b[col*4+3]
		}
	}
	return out
}

// MulVec4 transforms v by the matrix (column vector convention).
func (a Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		a[0]*v.X + a[4]*v.Y + a[8]*v.Z + a[12]*v.W,
		a[1]*v.X + a[5]*v.Y + a[9]*v.Z + a[13]*v.W,
		a[2]*v.X + a[6]*v.Y + a[10]*v.Z + a[14]*v.W,
		a[3]*v.X + a[7]*v.Y + a[11]*v.Z + a[15]*v.W,
	}
}

// MulPoint transforms a position (w=1), dropping the resulting w.
func (a Mat4) MulPoint(v Vec3) Vec3 {
	return a.MulVec4(v.Vec4(1)).Vec3()
}

// Translation returns the translation column.
func (a Mat4) Translation() Vec3 { return Vec3{a[12], a[13], a[14]} }

func (a Mat4) NearEq(b Mat4, eps float32) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) >= eps {
			return false
		}
	}
	return true
}

func (a Mat4) String() string {
	r := ""
	for i, n := range a {
		if i > 0 && i%4 == 0 {
			r += "\n"
		}
		r += fmt.Sprintf("%6.3f ", n)
	}
	return r
}

// Perspective builds a right-handed perspective projection with a [-1,1]
// clip-space depth range. fovy is the vertical field of view in radians.
func Perspective(fovy, aspect, near, far float32) Mat4 {
	f := 1 / math32.Tan(fovy/2)
	fn := 1 / (far - near)
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, -(far + near) * fn, -1,
		0, 0, -2 * far * near * fn, 0,
	}
}

// Ortho builds a right-handed orthographic projection in the GL convention.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	rl := 1 / (right - left)
	tb := 1 / (top - bottom)
	fn := 1 / (far - near)
	return Mat4{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, -2 * fn, 0,
		-(right + left) * rl, -(top + bottom) * tb, -(far + near) * fn, 1,
	}
}

// LookAt builds a view matrix for an eye looking at center with the given up.
func LookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

// TRS composes translation, rotation and scale into a model matrix.
func TRS(t Vec3, r Quat, s Vec3) Mat4 {
	return Translate(t).Mul(r.Mat4()).Mul(Scale(s))
}
