package scene

// Node is anything that can live in the scene tree. Concrete node types
// embed Base and optionally implement Ready and/or Behavior to receive
// lifecycle dispatch; types implementing neither are pure transform
// carriers and cost nothing during the walk.
type Node interface {
	Transform() *Transform
	Children() *Tree
}

// Ready receives exactly one call, on the first frame the node is
// reachable from the scene root, before any Behavior call on the node or
// its descendants.
type Ready interface {
	Ready(ctx *Context) error
}

// Behavior receives one call per frame, every frame, in pre-order.
type Behavior interface {
	Behavior(ctx *Context) error
}

// Base is the embeddable default node: a transform and a child tree.
type Base struct {
	transform Transform
	children  Tree
}

func NewBase() Base {
	return Base{transform: NewTransform()}
}

func (b *Base) Transform() *Transform { return &b.transform }
func (b *Base) Children() *Tree       { return &b.children }

// ApplyTransform applies a mutation to the node's transform. Descendants
// pick the change up through world-matrix propagation on the next walk, so
// the whole subtree moves rigidly and relative offsets between descendants
// are preserved.
func ApplyTransform(n Node, fn func(*Transform)) {
	fn(n.Transform())
}

// Group is a plain container node with no behavior of its own.
type Group struct {
	Base
}

func NewGroup() *Group {
	return &Group{Base: NewBase()}
}

// Scripted is a node driven by closures instead of a dedicated type.
// Handy for scene-local logic that does not warrant a struct.
type Scripted struct {
	Base
	OnReady    func(n *Scripted, ctx *Context) error
	OnBehavior func(n *Scripted, ctx *Context) error
}

func NewScripted() *Scripted {
	return &Scripted{Base: NewBase()}
}

func (s *Scripted) Ready(ctx *Context) error {
	if s.OnReady == nil {
		return nil
	}
	return s.OnReady(s, ctx)
}

func (s *Scripted) Behavior(ctx *Context) error {
	if s.OnBehavior == nil {
		return nil
	}
	return s.OnBehavior(s, ctx)
}
