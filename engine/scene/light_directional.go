package scene

import (
	"github.com/chewxy/math32"
	"github.com/larch3d/larch/engine/math3d"
)

// MaxCascades is the hard cap on shadow cascades per directional light,
// matching the layer layout of the shadow array texture.
const MaxCascades = 4

// DirectionalLight lights the scene from a single direction with no
// attenuation, sun style. Shadows use cascaded maps: the shadow frustum
// is split into up to four distance bands so nearby shadows keep
// resolution without shrinking the overall shadow distance.
type DirectionalLight struct {
	Base

	Color     math3d.Vec4
	Intensity float32

	// CastShadows excludes the light from the depth passes when false;
	// the light still contributes direct illumination.
	CastShadows bool

	direction   math3d.Vec3
	farPlane    float32
	numCascades int

	splits      [MaxCascades]float32
	projections [MaxCascades]math3d.Mat4
}

// NewDirectionalLight builds a light shining along direction (pointing
// toward the source). shadowDistance bounds how far from the camera
// shadows are rendered; cascades is clamped to [1, 4].
func NewDirectionalLight(direction math3d.Vec3, color math3d.Vec4, shadowDistance float32, cascades int) *DirectionalLight {
	if cascades < 1 {
		cascades = 1
	}
	if cascades > MaxCascades {
		cascades = MaxCascades
	}

	l := &DirectionalLight{
		Base:        NewBase(),
		Color:       color,
		Intensity:   1,
		CastShadows: true,
		farPlane:    shadowDistance,
		numCascades: cascades,
	}
	l.SetDirection(direction)
	l.recompute()
	return l
}

// SetDirection points the light along dir and keeps the node rotation in
// sync so parenting the light under a moving node behaves.
func (l *DirectionalLight) SetDirection(dir math3d.Vec3) {
	l.direction = dir.Normalize()
	l.Transform().SetRotation(math3d.QuatBetween(l.direction))
}

func (l *DirectionalLight) Direction() math3d.Vec3 { return l.direction }
func (l *DirectionalLight) FarPlane() float32      { return l.farPlane }
func (l *DirectionalLight) Cascades() int          { return l.numCascades }

// SetFarPlane changes the shadow distance and rebuilds the cascade splits
// and projections.
func (l *DirectionalLight) SetFarPlane(distance float32) {
	l.farPlane = distance
	l.recompute()
}

// CascadeSplits returns the normalized split thresholds, padded to 1.0
// past the light's cascade count.
func (l *DirectionalLight) CascadeSplits() [MaxCascades]float32 { return l.splits }

// CascadeFor maps a view-space distance to its cascade index: the first
// band whose threshold farPlane/2 * split covers the distance, falling
// back to the last cascade past the far threshold. The lit shader applies
// the same rule when sampling the shadow array.
func (l *DirectionalLight) CascadeFor(dist float32) int {
	for i := 0; i < l.numCascades; i++ {
		if dist < l.farPlane/2*l.splits[i] {
			return i
		}
	}
	return l.numCascades - 1
}

// recompute derives the cascade split fractions and the per-cascade
// orthographic projections. Splits blend uniform and logarithmic
// distributions with lambda 0.7 over [0.1, farPlane], normalized by
// farPlane. Projections are square orthos of radius farPlane/2 * split.
func (l *DirectionalLight) recompute() {
	const nearPlane float32 = 0.1
	const lambda float32 = 0.7

	for i := range l.splits {
		l.splits[i] = 1
	}
	n := float32(l.numCascades)
	for i := 0; i < l.numCascades; i++ {
		f := float32(i+1) / n
		uniform := nearPlane + (l.farPlane-nearPlane)*f
		logarithmic := nearPlane * math32.Pow(l.farPlane/nearPlane, f)
		split := lambda*logarithmic + (1-lambda)*uniform
		l.splits[i] = split / l.farPlane
	}

	for i := 0; i < l.numCascades; i++ {
		radius := l.farPlane / 2 * l.splits[i]
		l.projections[i] = math3d.Ortho(-radius, radius, -radius, radius, nearPlane, l.farPlane)
	}
}

// ViewProjections returns one light-space matrix per cascade, centered on
// center (normally the active camera's world position) so the shadow
// volume follows the viewer. The light eye sits farPlane/2 along the
// direction toward the source.
func (l *DirectionalLight) ViewProjections(center math3d.Vec3) []math3d.Mat4 {
	eye := center.Add(l.direction.Scale(l.farPlane / 2))
	view := math3d.LookAt(eye, center, math3d.Up)

	vps := make([]math3d.Mat4, l.numCascades)
	for i := 0; i < l.numCascades; i++ {
		vps[i] = l.projections[i].Mul(view)
	}
	return vps
}
