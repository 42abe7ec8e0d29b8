package scene

import (
	"fmt"

	"github.com/larch3d/larch/engine/math3d"
)

// NodeBuilder accumulates configuration for a node and its children, then
// hands the finished node back from Build. Child insertion errors are
// deferred to Build so call sites can chain without per-call checks.
type NodeBuilder[T Node] struct {
	node T
	errs []error
}

// Build wraps an existing node for fluent configuration:
//
//	cube, err := scene.Build(scene.NewModel(mesh)).
//		Position(math3d.V3(0, 1, 0)).
//		Child("marker", marker).
//		Done()
func Build[T Node](n T) *NodeBuilder[T] {
	return &NodeBuilder[T]{node: n}
}

func (b *NodeBuilder[T]) Position(p math3d.Vec3) *NodeBuilder[T] {
	b.node.Transform().SetPosition(p)
	return b
}

func (b *NodeBuilder[T]) Rotation(q math3d.Quat) *NodeBuilder[T] {
	b.node.Transform().SetRotation(q)
	return b
}

// RotationEuler sets the rotation from XYZ euler angles in radians.
func (b *NodeBuilder[T]) RotationEuler(x, y, z float32) *NodeBuilder[T] {
	b.node.Transform().SetRotation(math3d.QuatEulerXYZ(x, y, z))
	return b
}

func (b *NodeBuilder[T]) Scale(s math3d.Vec3) *NodeBuilder[T] {
	b.node.Transform().SetScale(s)
	return b
}

func (b *NodeBuilder[T]) UniformScale(s float32) *NodeBuilder[T] {
	b.node.Transform().SetUniformScale(s)
	return b
}

func (b *NodeBuilder[T]) Child(name string, child Node) *NodeBuilder[T] {
	if err := b.node.Children().Add(name, child); err != nil {
		b.errs = append(b.errs, fmt.Errorf("child %q: %w", name, err))
	}
	return b
}

// Apply runs an arbitrary configuration step on the node under
// construction, for type-specific fields the builder has no method for.
func (b *NodeBuilder[T]) Apply(fn func(n T)) *NodeBuilder[T] {
	fn(b.node)
	return b
}

// Done returns the configured node and the first deferred error, if any.
func (b *NodeBuilder[T]) Done() (T, error) {
	if len(b.errs) > 0 {
		return b.node, b.errs[0]
	}
	return b.node, nil
}

// MustDone is Done for scene-construction code where a name collision is
// a programming error.
func (b *NodeBuilder[T]) MustDone() T {
	n, err := b.Done()
	if err != nil {
		panic(err)
	}
	return n
}
