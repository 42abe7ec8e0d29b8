package scene

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recorder(log *[]string, name string) *Scripted {
	n := NewScripted()
	n.OnReady = func(_ *Scripted, _ *Context) error {
		*log = append(*log, "ready:"+name)
		return nil
	}
	n.OnBehavior = func(_ *Scripted, _ *Context) error {
		*log = append(*log, "behavior:"+name)
		return nil
	}
	return n
}

func TestReadyFiresOnceBeforeBehavior(t *testing.T) {
	var log []string
	s := NewScene()
	n := recorder(&log, "n")
	require.NoError(t, s.Add("n", n))

	ctx := &Context{Scene: s}
	s.Update(ctx)
	s.Update(ctx)
	s.Update(ctx)

	assert.Equal(t, []string{
		"ready:n", "behavior:n",
		"behavior:n",
		"behavior:n",
	}, log)
}

func TestParentDispatchesBeforeChildren(t *testing.T) {
	var log []string
	s := NewScene()
	parent := recorder(&log, "parent")
	child := recorder(&log, "child")
	require.NoError(t, s.Add("parent", parent))
	require.NoError(t, parent.Children().Add("child", child))

	s.Update(&Context{Scene: s})

	assert.Equal(t, []string{
		"ready:parent", "behavior:parent",
		"ready:child", "behavior:child",
	}, log)
}

func TestLateAddedNodeGetsReady(t *testing.T) {
	var log []string
	s := NewScene()
	first := recorder(&log, "first")
	require.NoError(t, s.Add("first", first))

	ctx := &Context{Scene: s}
	s.Update(ctx)

	// node added after some frames still gets its one ready call
	late := recorder(&log, "late")
	require.NoError(t, s.Add("late", late))
	s.Update(ctx)
	s.Update(ctx)

	assert.Equal(t, []string{
		"ready:first", "behavior:first",
		"behavior:first", "ready:late", "behavior:late",
		"behavior:first", "behavior:late",
	}, log)
}

func TestReadyNotRefiredAfterReadd(t *testing.T) {
	var log []string
	s := NewScene()
	n := recorder(&log, "n")
	require.NoError(t, s.Add("n", n))

	ctx := &Context{Scene: s}
	s.Update(ctx)

	// removing and re-adding the same node resumes behavior without a
	// second ready call
	s.Root().Children().Remove("n")
	s.Update(ctx)
	require.NoError(t, s.Add("n", n))
	s.Update(ctx)

	assert.Equal(t, []string{
		"ready:n", "behavior:n",
		"behavior:n",
	}, log)
}

func TestCallbackFailureDoesNotAbortFrame(t *testing.T) {
	var log []string
	s := NewScene()

	failing := NewScripted()
	failing.OnBehavior = func(_ *Scripted, _ *Context) error {
		return fmt.Errorf("boom")
	}
	require.NoError(t, s.Add("failing", failing))
	require.NoError(t, failing.Children().Add("child", recorder(&log, "child")))
	require.NoError(t, s.Add("sibling", recorder(&log, "sibling")))

	s.Update(&Context{Scene: s})

	// descendants and siblings of the failing node still ran
	assert.Contains(t, log, "behavior:child")
	assert.Contains(t, log, "behavior:sibling")
}

func TestNodesWithoutCapabilitiesAreSkipped(t *testing.T) {
	s := NewScene()
	require.NoError(t, s.Add("plain", NewGroup()))

	// a bare group must not blow up the walk
	assert.NotPanics(t, func() {
		s.Update(&Context{Scene: s})
	})
}

func TestDeterministicTraversalOrder(t *testing.T) {
	var log []string
	s := NewScene()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, s.Add(name, recorder(&log, name)))
	}

	s.Update(&Context{Scene: s})

	// insertion order, not lexical order
	assert.Equal(t, []string{
		"ready:zeta", "behavior:zeta",
		"ready:alpha", "behavior:alpha",
		"ready:mid", "behavior:mid",
	}, log)
}
