package scene

import (
	"testing"

	"github.com/larch3d/larch/engine/math3d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-4

func buildChain(t *testing.T) (*Scene, *Group, *Group, *Group) {
	t.Helper()
	s := NewScene()
	parent := NewGroup()
	child := NewGroup()
	grandchild := NewGroup()
	require.NoError(t, s.Add("parent", parent))
	require.NoError(t, parent.Children().Add("child", child))
	require.NoError(t, child.Children().Add("grandchild", grandchild))
	return s, parent, child, grandchild
}

func TestWorldMatrixComposition(t *testing.T) {
	s, parent, child, _ := buildChain(t)
	parent.Transform().SetPosition(math3d.V3(1, 0, 0))
	child.Transform().SetPosition(math3d.V3(0, 2, 0))

	s.Update(&Context{Scene: s})

	want := parent.Transform().World().Mul(child.Transform().Local())
	assert.True(t, child.Transform().World().NearEq(want, eps))
	assert.Equal(t, math3d.V3(1, 2, 0), child.Transform().WorldPosition())
}

func TestAncestorChangePropagates(t *testing.T) {
	s, parent, _, grandchild := buildChain(t)
	grandchild.Transform().SetPosition(math3d.V3(0, 0, 3))
	s.Update(&Context{Scene: s})

	parent.Transform().SetPosition(math3d.V3(5, 0, 0))
	s.Update(&Context{Scene: s})

	assert.True(t, grandchild.Transform().WorldPosition().NearEq(math3d.V3(5, 0, 3), eps))
}

func TestCleanNodesAreIdempotent(t *testing.T) {
	s, parent, child, _ := buildChain(t)
	parent.Transform().SetPosition(math3d.V3(1, 2, 3))
	s.Update(&Context{Scene: s})

	world := child.Transform().World()
	assert.False(t, child.Transform().Dirty())

	// nothing changed, another walk must leave the matrix alone
	s.Update(&Context{Scene: s})
	assert.Equal(t, world, child.Transform().World())
}

func TestApplyTransformIsRigid(t *testing.T) {
	s, parent, child, grandchild := buildChain(t)
	child.Transform().SetPosition(math3d.V3(0, 1, 0))
	grandchild.Transform().SetPosition(math3d.V3(2, 0, 0))
	s.Update(&Context{Scene: s})

	before := grandchild.Transform().WorldPosition().Sub(child.Transform().WorldPosition())

	ApplyTransform(parent, func(tr *Transform) {
		tr.Translate(math3d.V3(7, -2, 4))
	})
	s.Update(&Context{Scene: s})

	after := grandchild.Transform().WorldPosition().Sub(child.Transform().WorldPosition())
	assert.True(t, after.NearEq(before, eps))
	assert.True(t, parent.Transform().WorldPosition().NearEq(math3d.V3(7, -2, 4), eps))
}

func TestComposeFlattens(t *testing.T) {
	parent := NewTransform()
	parent.SetPosition(math3d.V3(1, 0, 0))
	parent.SetRotation(math3d.QuatAxisAngle(math3d.Up, math3d.Radians(90)))
	parent.SetScale(math3d.V3(2, 2, 2))

	child := NewTransform()
	child.SetPosition(math3d.V3(0, 3, 0))
	child.SetScale(math3d.V3(1, 0.5, 1))

	flat := child.Compose(&parent)
	assert.True(t, flat.Position().NearEq(math3d.V3(1, 3, 0), eps))
	assert.True(t, flat.Scale().NearEq(math3d.V3(2, 1, 2), eps))

	// rotation carries the parent's yaw since the child adds none
	assert.True(t, flat.Forward().NearEq(math3d.Right3, eps))
}

func TestLocalMatrixIsTRS(t *testing.T) {
	tr := NewTransform()
	tr.SetPosition(math3d.V3(1, 2, 3))
	tr.SetRotation(math3d.QuatAxisAngle(math3d.Up, math3d.Radians(90)))
	tr.SetScale(math3d.V3(2, 2, 2))

	want := math3d.TRS(tr.Position(), tr.Rotation(), tr.Scale())
	assert.True(t, tr.Local().NearEq(want, eps))
}

func TestTranslateLocalFollowsRotation(t *testing.T) {
	tr := NewTransform()
	// face +X, so local forward motion moves along world +X
	tr.SetRotation(math3d.QuatBetween(math3d.Right3))
	tr.TranslateLocal(math3d.V3(0, 0, 1))
	assert.True(t, tr.Position().NearEq(math3d.Right3, eps))
}

func TestBasisVectors(t *testing.T) {
	tr := NewTransform()
	assert.True(t, tr.Forward().NearEq(math3d.Forward3, eps))
	assert.True(t, tr.Up().NearEq(math3d.Up, eps))
	assert.True(t, tr.Right().NearEq(math3d.Right3, eps))

	tr.SetRotation(math3d.QuatAxisAngle(math3d.Up, math3d.Radians(90)))
	assert.True(t, tr.Forward().NearEq(math3d.Right3, eps))
}
