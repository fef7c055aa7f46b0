package viewport

import (
	"math"

	"zoomview/pkg/geometry"
)

const (
	// DefaultTouchSlop is the pan distance, in view units, a single pointer
	// must move before a zoomed-in drag is treated as a gesture.
	DefaultTouchSlop = 8.0

	// ZoomSlop is the deviation of a zoom ratio from 1 that counts as movement.
	ZoomSlop = 0.001
)

// Pointer is one tracked pointer in a gesture sample.
type Pointer struct {
	ID       int64          `yaml:"id"`
	Position geometry.Point `yaml:"position"`
	Pressed  bool           `yaml:"pressed"`
}

// GestureSample is one aggregated pointer-input tick.
type GestureSample struct {
	Pointers []Pointer `yaml:"pointers"`

	// Zoom is the scale ratio since the previous sample. Zero means 1.
	Zoom float64 `yaml:"zoom"`

	// Pan is the centroid movement since the previous sample.
	Pan geometry.Point `yaml:"pan"`

	// Centroid is the zoom pivot. Nil falls back to the view centre.
	Centroid *geometry.Point `yaml:"centroid"`
}

// Pressed returns the number of pressed pointers.
func (s GestureSample) Pressed() int {
	n := 0
	for _, p := range s.Pointers {
		if p.Pressed {
			n++
		}
	}
	return n
}

// ZoomRatio returns the sample's zoom ratio with the zero value mapped to 1.
func (s GestureSample) ZoomRatio() float64 {
	if s.Zoom == 0 || math.IsNaN(s.Zoom) || math.IsInf(s.Zoom, 0) {
		return 1
	}
	return s.Zoom
}

// GestureProcessor turns a stream of samples into snap targets. An
// interaction, once claimed, consumes every sample until all pointers lift.
type GestureProcessor struct {
	limits Limits
	slop   float64
	active bool

	// Movement since the pointers went down, while not yet claimed.
	pendingPan  geometry.Point
	pendingZoom float64
}

// NewGestureProcessor creates a processor for the given limits and touch slop.
func NewGestureProcessor(limits Limits, slop float64) *GestureProcessor {
	return &GestureProcessor{limits: limits, slop: slop, pendingZoom: 1}
}

// Active reports whether an interaction is in progress.
func (p *GestureProcessor) Active() bool {
	return p.active
}

// End terminates the current interaction.
func (p *GestureProcessor) End() {
	if p.active {
		Logger().Debug("gesture released")
	}
	p.active = false
	p.pendingPan = geometry.Point{}
	p.pendingZoom = 1
}

// moved reports whether the movement since the pointers went down exceeds
// the slop.
func (p *GestureProcessor) moved() bool {
	return p.pendingPan.Len() > p.slop || math.Abs(p.pendingZoom-1) > ZoomSlop
}

// claims reports whether an idle processor should start an interaction.
func (p *GestureProcessor) claims(s GestureSample, scale float64) bool {
	if s.Pressed() > 1 {
		return true
	}
	return scale > p.limits.MinScale+ScaleEpsilon && p.moved()
}

// Process applies the sample to current and returns the clamped result.
// consumed is false when the sample is not part of a gesture and should fall
// through to tap handling; current is then returned unchanged.
func (p *GestureProcessor) Process(s GestureSample, current TransformState, g Geometry) (next TransformState, consumed bool) {
	if s.Pressed() == 0 {
		p.End()
		return current, false
	}
	if !g.Valid() {
		return current, false
	}
	if !p.active {
		p.pendingPan = p.pendingPan.Add(s.Pan)
		p.pendingZoom *= s.ZoomRatio()
		if !p.claims(s, current.Scale) {
			return current, false
		}
		p.active = true
		Logger().Debug("gesture claimed", "pointers", s.Pressed(), "scale", current.Scale)

		// A single pointer claims by crossing the slop; apply everything it
		// moved since touch-down so the content stays under it.
		if s.Pressed() == 1 {
			s.Pan = p.pendingPan
			s.Zoom = p.pendingZoom
		}
		p.pendingPan = geometry.Point{}
		p.pendingZoom = 1
	}

	pivot := g.ViewCenter()
	if s.Centroid != nil {
		pivot = *s.Centroid
	}
	req := ZoomPivotRequest{
		Pivot:     pivot,
		FromScale: current.Scale,
		ToScale:   p.limits.ClampScale(current.Scale * s.ZoomRatio()),
	}
	return p.limits.Clamp(req.Target(current, g, s.Pan), g), true
}
