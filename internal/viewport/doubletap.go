package viewport

import (
	"math"

	"zoomview/pkg/geometry"
)

// DefaultIntermediateFactor is the double-tap zoom-in multiple of MinScale.
const DefaultIntermediateFactor = 2.0

// DoubleTapZoomController toggles between the rest state and an
// intermediate zoom anchored at the tap.
type DoubleTapZoomController struct {
	limits Limits
	factor float64
}

// NewDoubleTapZoomController creates a controller.
func NewDoubleTapZoomController(limits Limits, factor float64) *DoubleTapZoomController {
	return &DoubleTapZoomController{limits: limits, factor: factor}
}

// Target returns the clamped transform a double tap at pivot leads to.
func (c *DoubleTapZoomController) Target(pivot geometry.Point, current TransformState, g Geometry) TransformState {
	if !c.limits.AtRest(current.Scale) {
		return c.limits.Rest()
	}
	req := ZoomPivotRequest{
		Pivot:     pivot,
		FromScale: current.Scale,
		ToScale:   math.Min(c.limits.MinScale*c.factor, c.limits.MaxScale),
	}
	return c.limits.Clamp(req.Target(current, g, geometry.Point{}), g)
}
