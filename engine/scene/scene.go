package scene

import (
	"fmt"
	"log/slog"

	glbackend "github.com/larch3d/larch/engine/gfx/gl"
	"github.com/larch3d/larch/engine/math3d"
)

// Overlay is a 2D draw callback invoked after all 3D geometry, directly to
// the back buffer with depth testing off.
type Overlay struct {
	Name string
	Draw func(ctx *Context)
}

// Scene is a root node tree plus the per-scene rendering registries:
// shaders, the active camera, lighting globals and UI overlays. A scene is
// owned by the engine; replacing it via LoadScene tears down the previous
// one's GPU resources.
type Scene struct {
	root Group

	shaders      map[string]*glbackend.Program
	activeCamera string
	overlays     []Overlay

	// Lighting globals sampled by every lit shader.
	Ambient    float32
	BiasFactor float32
	BiasOffset float32

	// ready keeps its entry when a node leaves the tree, so a node that is
	// removed and re-added does not fire Ready a second time.
	ready map[Node]bool
}

func NewScene() *Scene {
	return &Scene{
		root:       *NewGroup(),
		shaders:    make(map[string]*glbackend.Program),
		Ambient:    0.3,
		BiasFactor: 0.005,
		BiasOffset: 0.0005,
		ready:      make(map[Node]bool),
	}
}

func (s *Scene) Root() *Group { return &s.root }

// Add inserts a top-level node.
func (s *Scene) Add(name string, n Node) error {
	return s.root.Children().Add(name, n)
}

// Get resolves a '/'-separated path from the root.
func (s *Scene) Get(path string) Node {
	return s.root.Children().Get(path)
}

// RegisterShader adds a compiled program under a name. Registering the
// same name twice is an error so scenes cannot silently shadow a shader.
func (s *Scene) RegisterShader(name string, p *glbackend.Program) error {
	if _, exists := s.shaders[name]; exists {
		return fmt.Errorf("scene: shader %q already registered", name)
	}
	s.shaders[name] = p
	return nil
}

func (s *Scene) Shader(name string) *glbackend.Program {
	return s.shaders[name]
}

// SetActiveCamera selects the camera node by scene path.
func (s *Scene) SetActiveCamera(path string) {
	s.activeCamera = path
}

// ActiveCamera returns the camera the pipeline renders from, or nil when
// the active path is unset or does not resolve to a camera node.
func (s *Scene) ActiveCamera() *Camera3D {
	if s.activeCamera == "" {
		return nil
	}
	cam, _ := Get[*Camera3D](s.root.Children(), s.activeCamera)
	return cam
}

// AddOverlay registers a 2D overlay callback. Overlays draw in
// registration order after the 3D passes.
func (s *Scene) AddOverlay(name string, draw func(ctx *Context)) {
	s.overlays = append(s.overlays, Overlay{Name: name, Draw: draw})
}

func (s *Scene) Overlays() []Overlay { return s.overlays }

// Update runs one frame of lifecycle dispatch and transform propagation:
// pre-order over the tree, Ready once per node on its first reachable
// frame, then Behavior, then the node's world matrix, then its children.
// A callback error is logged and traversal continues.
func (s *Scene) Update(ctx *Context) {
	s.updateTree(ctx, s.root.Children(), "", math3d.Ident(), false)
}

func (s *Scene) updateTree(ctx *Context, t *Tree, prefix string, parentWorld math3d.Mat4, parentDirty bool) {
	t.Each(func(name string, n Node) bool {
		path := prefix + name

		if r, ok := n.(Ready); ok && !s.ready[n] {
			s.ready[n] = true
			if err := r.Ready(ctx); err != nil {
				slog.Error("node ready failed", "node", path, "error", err)
			}
		}
		if b, ok := n.(Behavior); ok {
			if err := b.Behavior(ctx); err != nil {
				slog.Error("node behavior failed", "node", path, "error", err)
			}
		}

		dirty := n.Transform().updateWorld(parentWorld, parentDirty)
		s.updateTree(ctx, n.Children(), path+"/", n.Transform().World(), dirty)
		return true
	})
}

// Release frees scene-owned GPU resources: registered shaders and every
// node that holds GPU buffers. Called by the engine on scene replacement
// and shutdown.
func (s *Scene) Release() {
	s.root.Children().Walk(func(name string, n Node) {
		if r, ok := n.(interface{ Release() }); ok {
			r.Release()
		}
	})
	for _, p := range s.shaders {
		p.Release()
	}
	s.shaders = make(map[string]*glbackend.Program)
}
