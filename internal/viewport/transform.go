package viewport

import (
	"fmt"
	"math"

	"zoomview/pkg/geometry"

	"gonum.org/v1/gonum/floats/scalar"
)

// ScaleEpsilon is the tolerance used when comparing a scale to MinScale.
const ScaleEpsilon = 1e-3

const (
	DefaultMinScale = 1.0
	DefaultMaxScale = 3.0
)

// TransformState is a uniform scale about the view centre plus a pan offset.
type TransformState struct {
	Scale   float64 `json:"scale" yaml:"scale"`
	OffsetX float64 `json:"offset_x" yaml:"offset_x"`
	OffsetY float64 `json:"offset_y" yaml:"offset_y"`
}

func (t TransformState) String() string {
	return fmt.Sprintf("scale=%.4f offset=(%.2f, %.2f)", t.Scale, t.OffsetX, t.OffsetY)
}

// Offset returns the pan offset as a vector.
func (t TransformState) Offset() geometry.Point {
	return geometry.Pt(t.OffsetX, t.OffsetY)
}

// Matrix returns the render-time transform for the given geometry, mapping
// points of the fitted content at scale 1 to view coordinates.
func (t TransformState) Matrix(g Geometry) geometry.AffineTransform {
	return geometry.ScaleAbout(g.ViewCenter(), t.Scale, t.Offset())
}

// CommittedTransform is the authoritative, clamped transform. Gesture and
// tap updates are applied to it first.
type CommittedTransform struct {
	TransformState
}

// DisplayedTransform is the interpolated transform the rendering surface
// draws. It converges on the committed transform.
type DisplayedTransform struct {
	TransformState
}

// Limits holds the scale range of a viewing session.
type Limits struct {
	MinScale float64
	MaxScale float64
}

// DefaultLimits returns the 1x..3x range.
func DefaultLimits() Limits {
	return Limits{MinScale: DefaultMinScale, MaxScale: DefaultMaxScale}
}

// Rest returns the reset state: minimum scale, centred.
func (l Limits) Rest() TransformState {
	return TransformState{Scale: l.MinScale}
}

// AtRest reports whether scale is within ScaleEpsilon of MinScale.
func (l Limits) AtRest(scale float64) bool {
	return scalar.EqualWithinAbs(scale, l.MinScale, ScaleEpsilon)
}

// ClampScale restricts scale to [MinScale, MaxScale].
func (l Limits) ClampScale(scale float64) float64 {
	if math.IsNaN(scale) {
		return l.MinScale
	}
	return math.Min(math.Max(scale, l.MinScale), l.MaxScale)
}

// MaxPan returns the largest offset magnitude per axis that keeps content of
// the given scale covering the view.
func MaxPan(scale float64, g Geometry) (x, y float64) {
	x = math.Max(0, (g.ContentWidth*scale-g.ViewWidth)/2)
	y = math.Max(0, (g.ContentHeight*scale-g.ViewHeight)/2)
	return x, y
}

// Clamp returns the closest legal state to candidate for the geometry.
// Clamping an already clamped state returns it unchanged.
func (l Limits) Clamp(candidate TransformState, g Geometry) TransformState {
	out := TransformState{Scale: l.ClampScale(candidate.Scale)}
	if !g.Valid() || l.AtRest(out.Scale) {
		return out
	}

	maxX, maxY := MaxPan(out.Scale, g)
	if g.ContentWidth*out.Scale > g.ViewWidth {
		out.OffsetX = clampAbs(candidate.OffsetX, maxX)
	}
	if g.ContentHeight*out.Scale > g.ViewHeight {
		out.OffsetY = clampAbs(candidate.OffsetY, maxY)
	}
	return out
}

func clampAbs(v, limit float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(math.Max(v, -limit), limit)
}
