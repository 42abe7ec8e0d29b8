package math3d

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-5

func TestVec3Ops(t *testing.T) {
	tests := []struct {
		a, b  Vec3
		cross Vec3
		dot   float32
	}{
		{V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1), 0},
		{V3(0, 1, 0), V3(0, 0, 1), V3(1, 0, 0), 0},
		{V3(2, 0, 0), V3(2, 0, 0), V3(0, 0, 0), 4},
	}
	for _, c := range tests {
		assert.True(t, c.a.Cross(c.b).NearEq(c.cross, tol), "cross %v x %v", c.a, c.b)
		assert.InDelta(t, c.dot, c.a.Dot(c.b), tol)
	}
}

func TestVec3Normalize(t *testing.T) {
	assert.InDelta(t, 1.0, V3(3, 4, 0).Normalize().Len(), tol)
	// normalizing the zero vector must not NaN
	assert.True(t, Zero3.Normalize().IsZero())
}

func TestQuatRotate(t *testing.T) {
	// 90 degrees about Y carries +Z onto +X
	q := QuatAxisAngle(Up, Radians(90))
	assert.True(t, q.Rotate(Forward3).NearEq(Right3, 1e-4))

	// rotating by the conjugate undoes the rotation
	v := V3(0.3, -1.2, 2.5)
	assert.True(t, q.Conjugate().Rotate(q.Rotate(v)).NearEq(v, 1e-4))
}

func TestQuatBetween(t *testing.T) {
	dirs := []Vec3{
		V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, -1),
		V3(1, 1, 1).Normalize(), V3(-0.2, 0.9, 0.1).Normalize(),
	}
	for _, d := range dirs {
		q := QuatBetween(d)
		assert.True(t, q.Rotate(Forward3).NearEq(d, 1e-4), "dir %v", d)
	}
	// anti-parallel case must still be a pure 180 degree turn
	q := QuatBetween(V3(0, 0, -1))
	assert.True(t, q.Rotate(Forward3).NearEq(V3(0, 0, -1), 1e-4))
}

func TestQuatMat4MatchesRotate(t *testing.T) {
	q := QuatEulerXYZ(Radians(30), Radians(45), Radians(10))
	v := V3(1, 2, 3)
	assert.True(t, q.Mat4().MulPoint(v).NearEq(q.Rotate(v), 1e-4))
}

func TestMat4MulIdentity(t *testing.T) {
	m := TRS(V3(1, 2, 3), QuatAxisAngle(Up, 0.7), V3(2, 2, 2))
	assert.True(t, m.Mul(Ident()).NearEq(m, tol))
	assert.True(t, Ident().Mul(m).NearEq(m, tol))
}

func TestTRSOrder(t *testing.T) {
	// scale applies before rotation before translation
	m := TRS(V3(5, 0, 0), QuatAxisAngle(Up, Radians(90)), V3(2, 1, 1))
	// unit +X scales to (2,0,0), rotates to (0,0,-2), translates to (5,0,-2)
	assert.True(t, m.MulPoint(Right3).NearEq(V3(5, 0, -2), 1e-4))
}

func TestLookAt(t *testing.T) {
	view := LookAt(V3(0, 0, 5), Zero3, Up)
	// a point at the origin ends up 5 units in front of the camera (-Z)
	assert.True(t, view.MulPoint(Zero3).NearEq(V3(0, 0, -5), tol))
}

func TestPerspectiveDepthRange(t *testing.T) {
	p := Perspective(Radians(60), 1, 0.1, 100)
	// near plane maps to -1, far plane to +1 after perspective divide
	near := p.MulVec4(V4(0, 0, -0.1, 1))
	far := p.MulVec4(V4(0, 0, -100, 1))
	assert.InDelta(t, -1.0, near.Z/near.W, 1e-3)
	assert.InDelta(t, 1.0, far.Z/far.W, 1e-3)
}

func TestOrthoCenterMapsToOrigin(t *testing.T) {
	o := Ortho(-10, 10, -10, 10, 0.1, 100)
	mid := o.MulPoint(V3(0, 0, -50.05))
	assert.InDelta(t, 0, mid.X, tol)
	assert.InDelta(t, 0, mid.Y, tol)
}

func TestMixClamp(t *testing.T) {
	assert.InDelta(t, 2.5, Mix(2, 3, 0.5), tol)
	assert.Equal(t, float32(1), Clamp(5, 0, 1))
	assert.Equal(t, float32(0), Clamp(-5, 0, 1))
	assert.InDelta(t, math32.Pi, Radians(180), tol)
}
