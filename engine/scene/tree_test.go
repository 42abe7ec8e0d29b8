package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeAddDuplicateName(t *testing.T) {
	var tree Tree
	first := NewGroup()
	require.NoError(t, tree.Add("camera", first))

	err := tree.Add("camera", NewGroup())
	require.ErrorIs(t, err, ErrDuplicateName)

	// tree unchanged, original still retrievable
	assert.Equal(t, 1, tree.Len())
	assert.Same(t, Node(first), tree.Get("camera"))
}

func TestTreeRejectsBadNames(t *testing.T) {
	var tree Tree
	assert.Error(t, tree.Add("", NewGroup()))
	assert.Error(t, tree.Add("a/b", NewGroup()))
	assert.Equal(t, 0, tree.Len())
}

func TestTreePathLookup(t *testing.T) {
	var tree Tree
	player := NewGroup()
	arm := NewGroup()
	hand := NewGroup()
	require.NoError(t, tree.Add("player", player))
	require.NoError(t, player.Children().Add("arm", arm))
	require.NoError(t, arm.Children().Add("hand", hand))

	assert.Same(t, Node(hand), tree.Get("player/arm/hand"))
	assert.Nil(t, tree.Get("player/leg"))
	assert.Nil(t, tree.Get("missing"))
}

func TestTreeTypedGet(t *testing.T) {
	var tree Tree
	require.NoError(t, tree.Add("model", NewModel()))

	m, ok := Get[*Model](&tree, "model")
	require.True(t, ok)
	assert.NotNil(t, m)

	_, ok = Get[*Camera3D](&tree, "model")
	assert.False(t, ok)
}

func TestTreeWalkOrder(t *testing.T) {
	var tree Tree
	a := NewGroup()
	b := NewGroup()
	require.NoError(t, tree.Add("a", a))
	require.NoError(t, tree.Add("b", b))
	require.NoError(t, a.Children().Add("a1", NewGroup()))
	require.NoError(t, a.Children().Add("a2", NewGroup()))
	require.NoError(t, b.Children().Add("b1", NewGroup()))

	var visited []string
	tree.Walk(func(name string, n Node) {
		visited = append(visited, name)
	})
	assert.Equal(t, []string{"a", "a1", "a2", "b", "b1"}, visited)
}

func TestTreeCollect(t *testing.T) {
	var tree Tree
	group := NewGroup()
	inner := NewModel()
	require.NoError(t, tree.Add("group", group))
	require.NoError(t, group.Children().Add("inner", inner))
	require.NoError(t, tree.Add("outer", NewModel()))
	require.NoError(t, tree.Add("plain", NewGroup()))

	models := Collect[*Model](&tree)
	require.Len(t, models, 2)
	assert.Same(t, inner, models[0]) // pre-order: group subtree first

	assert.Empty(t, Collect[*Camera3D](&tree))
}

func TestTreeRemove(t *testing.T) {
	var tree Tree
	n := NewGroup()
	require.NoError(t, tree.Add("n", n))

	removed := tree.Remove("n")
	assert.Same(t, Node(n), removed)
	assert.Nil(t, tree.Get("n"))
	assert.Nil(t, tree.Remove("n"))

	// name is reusable after removal
	assert.NoError(t, tree.Add("n", NewGroup()))
}
