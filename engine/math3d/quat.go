package math3d

import "github.com/chewxy/math32"

// Quat is a rotation quaternion (W scalar part).
type Quat struct {
	W, X, Y, Z float32
}

func QuatIdent() Quat { return Quat{W: 1} }

// QuatAxisAngle builds a rotation of angle radians about axis.
// The axis must be normalized.
func QuatAxisAngle(axis Vec3, angle float32) Quat {
	s := math32.Sin(angle / 2)
	return Quat{
		W: math32.Cos(angle / 2),
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
	}
}

// QuatBetween returns the rotation carrying the +Z reference direction onto
// dir. Parallel and anti-parallel directions are handled explicitly since the
// cross product degenerates there.
func QuatBetween(dir Vec3) Quat {
	dir = dir.Normalize()
	ref := Forward3
	d := ref.Dot(dir)
	if math32.Abs(d) > 0.9999 {
		if d > 0 {
			return QuatIdent()
		}
		return QuatAxisAngle(Right3, math32.Pi)
	}
	axis := ref.Cross(dir).Normalize()
	return QuatAxisAngle(axis, math32.Acos(d))
}

// QuatEulerXYZ builds a rotation from euler angles in radians applied in
// X, then Y, then Z order.
func QuatEulerXYZ(x, y, z float32) Quat {
	qx := QuatAxisAngle(Right3, x)
	qy := QuatAxisAngle(Up, y)
	qz := QuatAxisAngle(Forward3, z)
	return qx.Mul(qy).Mul(qz)
}

func (q Quat) Mul(o Quat) Quat {
	return Quat{
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
	}
}

func (q Quat) Len() float32 {
	return math32.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

func (q Quat) Normalize() Quat {
	l := q.Len()
	if l == 0 {
		return QuatIdent()
	}
	return Quat{q.W / l, q.X / l, q.Y / l, q.Z / l}
}

func (q Quat) Conjugate() Quat { return Quat{q.W, -q.X, -q.Y, -q.Z} }

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	// v' = v + 2*cross(q.xyz, cross(q.xyz, v) + q.w*v)
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Add(v.Scale(q.W))
	return v.Add(u.Cross(t).Scale(2))
}

func (q Quat) NearEq(o Quat, eps float32) bool {
	return math32.Abs(q.W-o.W) < eps &&
		math32.Abs(q.X-o.X) < eps &&
		math32.Abs(q.Y-o.Y) < eps &&
		math32.Abs(q.Z-o.Z) < eps
}

// Mat4 expands the quaternion to a rotation matrix.
func (q Quat) Mat4() Mat4 {
	x2, y2, z2 := q.X+q.X, q.Y+q.Y, q.Z+q.Z
	xx, yy, zz := q.X*x2, q.Y*y2, q.Z*z2
	xy, xz, yz := q.X*y2, q.X*z2, q.Y*z2
	wx, wy, wz := q.W*x2, q.W*y2, q.W*z2

	return Mat4{
		1 - (yy + zz), xy + wz, xz - wy, 0,
		xy - wz, 1 - (xx + zz), yz + wx, 0,
		xz + wy, yz - wx, 1 - (xx + yy), 0,
		0, 0, 0, 1,
	}
}
