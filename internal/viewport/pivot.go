package viewport

import (
	"zoomview/pkg/geometry"
)

// ZoomPivotRequest describes a scale change that keeps Pivot, a view
// coordinate, visually stationary.
type ZoomPivotRequest struct {
	Pivot     geometry.Point
	FromScale float64
	ToScale   float64
}

// Apply returns the offset that keeps the pivot fixed when current is
// rescaled from FromScale to ToScale, with pan added afterwards. Each axis is
// handled independently:
//
//	new = cur*r - (pivot - centre)*(r - 1) + pan,  r = ToScale/FromScale
func (r ZoomPivotRequest) Apply(current geometry.Point, g Geometry, pan geometry.Point) geometry.Point {
	if r.FromScale <= 0 {
		return current.Add(pan)
	}
	ratio := r.ToScale / r.FromScale
	rel := r.Pivot.Sub(g.ViewCenter())
	return current.Scale(ratio).Sub(rel.Scale(ratio - 1)).Add(pan)
}

// Target returns the unclamped transform produced by the request.
func (r ZoomPivotRequest) Target(current TransformState, g Geometry, pan geometry.Point) TransformState {
	off := r.Apply(current.Offset(), g, pan)
	return TransformState{Scale: r.ToScale, OffsetX: off.X, OffsetY: off.Y}
}
