package scene

import (
	"fmt"
	"strings"
)

// ErrDuplicateName is returned by Tree.Add when a sibling already holds
// the requested name. The tree is left unmodified.
var ErrDuplicateName = fmt.Errorf("scene: duplicate node name")

// Tree is an ordered, name-keyed child collection. Insertion order is
// preserved so traversal is deterministic; names are unique per parent.
// A tree exclusively owns its nodes, which makes cycles impossible to
// build through the public API.
type Tree struct {
	order []string
	nodes map[string]Node
}

func (t *Tree) Len() int { return len(t.order) }

// Add inserts child under name. The name must be non-empty and must not
// contain '/', which is reserved for path lookup.
func (t *Tree) Add(name string, child Node) error {
	if name == "" {
		return fmt.Errorf("scene: empty node name")
	}
	if strings.ContainsRune(name, '/') {
		return fmt.Errorf("scene: node name %q contains '/'", name)
	}
	if _, exists := t.nodes[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	if t.nodes == nil {
		t.nodes = make(map[string]Node)
	}
	t.order = append(t.order, name)
	t.nodes[name] = child
	return nil
}

// Remove detaches the named child and returns it, or nil if absent.
func (t *Tree) Remove(name string) Node {
	child, ok := t.nodes[name]
	if !ok {
		return nil
	}
	delete(t.nodes, name)
	for i, n := range t.order {
		if n == name {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return child
}

// Get resolves a '/'-separated path relative to this tree, e.g.
// "player/arm/hand". Returns nil if any segment is missing.
func (t *Tree) Get(path string) Node {
	cur := t
	var node Node
	for _, seg := range strings.Split(path, "/") {
		if cur == nil {
			return nil
		}
		n, ok := cur.nodes[seg]
		if !ok {
			return nil
		}
		node = n
		cur = n.Children()
	}
	return node
}

// Get returns the node at path asserted to type T, or the zero value and
// false when the path is missing or the node has a different type.
func Get[T Node](t *Tree, path string) (T, bool) {
	var zero T
	n := t.Get(path)
	if n == nil {
		return zero, false
	}
	typed, ok := n.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Each calls fn for every direct child in insertion order. Returning
// false stops the iteration.
func (t *Tree) Each(fn func(name string, n Node) bool) {
	for _, name := range t.order {
		if !fn(name, t.nodes[name]) {
			return
		}
	}
}

// Walk visits every node in the tree pre-order, depth-first.
func (t *Tree) Walk(fn func(name string, n Node)) {
	for _, name := range t.order {
		n := t.nodes[name]
		fn(name, n)
		n.Children().Walk(fn)
	}
}

// Collect gathers every node of type T in the subtree, pre-order. The
// render pipeline uses this shape to partition drawables and lights.
func Collect[T Node](t *Tree) []T {
	var out []T
	t.Walk(func(name string, n Node) {
		if typed, ok := n.(T); ok {
			out = append(out, typed)
		}
	})
	return out
}
