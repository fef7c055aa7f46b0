package viewport

import (
	"math"

	"zoomview/pkg/geometry"
)

// GeometryEpsilon is the content-size change, in view units, beyond which a
// new geometry invalidates the current transform.
const GeometryEpsilon = 0.1

// Geometry describes the view and the footprint of the content inside it at
// scale 1, after aspect fitting.
type Geometry struct {
	ViewWidth     float64
	ViewHeight    float64
	ContentWidth  float64
	ContentHeight float64
}

// Fit computes the on-screen footprint of content with the given natural size
// inside a view. Wide content is letterboxed (full view width), tall content
// is pillarboxed (full view height). Any non-positive input yields zero
// content dimensions, meaning there is nothing to transform.
func Fit(naturalW, naturalH int, viewW, viewH float64) Geometry {
	g := Geometry{ViewWidth: math.Max(viewW, 0), ViewHeight: math.Max(viewH, 0)}
	if naturalW <= 0 || naturalH <= 0 || viewW <= 0 || viewH <= 0 {
		return g
	}

	contentAspect := geometry.NewSize(float64(naturalW), float64(naturalH)).Aspect()
	viewAspect := geometry.NewSize(viewW, viewH).Aspect()
	if contentAspect > viewAspect {
		g.ContentWidth = viewW
		g.ContentHeight = viewW / contentAspect
	} else {
		g.ContentHeight = viewH
		g.ContentWidth = viewH * contentAspect
	}
	return g
}

// Valid reports whether the geometry has a usable view and content.
func (g Geometry) Valid() bool {
	return g.ViewWidth > 0 && g.ViewHeight > 0 && g.ContentWidth > 0 && g.ContentHeight > 0
}

// ViewCenter returns the centre of the view, the origin of scaling.
func (g Geometry) ViewCenter() geometry.Point {
	return geometry.NewSize(g.ViewWidth, g.ViewHeight).Center()
}

// ContentSize returns the fitted content size at scale 1.
func (g Geometry) ContentSize() geometry.Size {
	return geometry.NewSize(g.ContentWidth, g.ContentHeight)
}

// ContentChanged reports whether the fitted content size differs from prev by
// more than GeometryEpsilon on either axis.
func (g Geometry) ContentChanged(prev Geometry) bool {
	return math.Abs(g.ContentWidth-prev.ContentWidth) > GeometryEpsilon ||
		math.Abs(g.ContentHeight-prev.ContentHeight) > GeometryEpsilon
}

// ContentRect returns the rectangle covered by the content in view
// coordinates under the given transform.
func (g Geometry) ContentRect(t TransformState) geometry.Rect {
	c := g.ViewCenter()
	return geometry.CenteredRect(
		geometry.Pt(c.X+t.OffsetX, c.Y+t.OffsetY),
		geometry.NewSize(g.ContentWidth*t.Scale, g.ContentHeight*t.Scale),
	)
}

// NaturalFromView returns the mapping from view coordinates to natural
// content pixels under transform t. ok is false when the geometry is invalid.
func (g Geometry) NaturalFromView(t TransformState, naturalW, naturalH int) (m geometry.AffineTransform, ok bool) {
	if !g.Valid() || naturalW <= 0 || naturalH <= 0 {
		return geometry.AffineTransform{}, false
	}
	inv, ok := t.Matrix(g).Inverse()
	if !ok {
		return geometry.AffineTransform{}, false
	}
	origin := geometry.CenteredRect(g.ViewCenter(), g.ContentSize()).TopLeft()
	toNatural := geometry.Scaling(float64(naturalW)/g.ContentWidth, float64(naturalH)/g.ContentHeight).
		Compose(geometry.Translation(-origin.X, -origin.Y))
	return toNatural.Compose(inv), true
}

// VisibleRegion returns the part of the content visible in the view under t,
// normalized so the whole content is {0, 0, 1, 1}.
func (g Geometry) VisibleRegion(t TransformState) geometry.Rect {
	if !g.Valid() || t.Scale <= 0 {
		return geometry.Rect{}
	}
	content := g.ContentRect(t)
	x0 := math.Max(0, -content.X) / content.Width
	y0 := math.Max(0, -content.Y) / content.Height
	x1 := math.Min(content.Width, g.ViewWidth-content.X) / content.Width
	y1 := math.Min(content.Height, g.ViewHeight-content.Y) / content.Height
	return geometry.Rect{X: x0, Y: y0, Width: math.Max(0, x1-x0), Height: math.Max(0, y1-y0)}
}
