// Package viewport implements the transform engine behind a zoomable image
// view: aspect fitting, pan-bounds clamping, pinch/drag gestures, double-tap
// zoom and animated transitions.
//
// The engine is single-threaded and synchronous. Hosts feed it geometry,
// gesture samples and taps from their input loop, call Tick from their
// refresh loop, and read Displayed (or subscribe with OnChange) to render.
package viewport

import (
	"time"

	"zoomview/pkg/geometry"
)

// ChangeListener is called with the displayed transform whenever it or the
// viewport geometry changes.
type ChangeListener func(DisplayedTransform)

// Engine owns the viewport geometry and both transform layers.
type Engine struct {
	limits Limits

	naturalW, naturalH int
	viewW, viewH       float64
	geom               Geometry

	committed CommittedTransform
	gestures  *GestureProcessor
	doubleTap *DoubleTapZoomController
	anim      *AnimationDriver

	listeners []ChangeListener
}

// New creates an engine with no content and an empty view.
func New(opts ...Option) *Engine {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	s.normalize()

	rest := s.limits.Rest()
	return &Engine{
		limits:    s.limits,
		committed: CommittedTransform{rest},
		gestures:  NewGestureProcessor(s.limits, s.slop),
		doubleTap: NewDoubleTapZoomController(s.limits, s.factor),
		anim:      NewAnimationDriver(s.duration, s.easing, rest),
	}
}

// OnChange registers a listener for displayed-transform and geometry
// changes.
func (e *Engine) OnChange(listener ChangeListener) {
	e.listeners = append(e.listeners, listener)
}

func (e *Engine) emit() {
	d := e.anim.Displayed()
	for _, listener := range e.listeners {
		listener(d)
	}
}

// Limits returns the session scale range.
func (e *Engine) Limits() Limits {
	return e.limits
}

// Geometry returns the current viewport geometry.
func (e *Engine) Geometry() Geometry {
	return e.geom
}

// Committed returns the authoritative transform.
func (e *Engine) Committed() CommittedTransform {
	return e.committed
}

// Displayed returns the transform the rendering surface should draw.
func (e *Engine) Displayed() DisplayedTransform {
	return e.anim.Displayed()
}

// Scale returns the committed scale, the value exposed to accessibility.
func (e *Engine) Scale() float64 {
	return e.committed.Scale
}

// Animating reports whether Tick still has work to do.
func (e *Engine) Animating() bool {
	return e.anim.Running()
}

// Gesturing reports whether a gesture interaction is in progress.
func (e *Engine) Gesturing() bool {
	return e.gestures.Active()
}

// SetContentSize installs new content with the given natural size. The
// transform is reset. Non-positive dimensions mean the size is unknown.
func (e *Engine) SetContentSize(width, height int) {
	e.naturalW, e.naturalH = width, height
	e.updateGeometry(true)
}

// ClearContent removes the content and resets the transform.
func (e *Engine) ClearContent() {
	e.SetContentSize(0, 0)
}

// SetViewSize updates the view bounds. The transform is reset if the fitted
// content size changes, otherwise it is re-clamped to the new bounds.
func (e *Engine) SetViewSize(width, height float64) {
	if width == e.viewW && height == e.viewH {
		return
	}
	e.viewW, e.viewH = width, height
	e.updateGeometry(false)
}

func (e *Engine) updateGeometry(newContent bool) {
	prev := e.geom
	e.geom = Fit(e.naturalW, e.naturalH, e.viewW, e.viewH)

	emitted := false
	if newContent || !e.geom.Valid() || e.geom.ContentChanged(prev) {
		Logger().Debug("viewport reset",
			"new_content", newContent,
			"content_w", e.geom.ContentWidth,
			"content_h", e.geom.ContentHeight)
		e.gestures.End()
		emitted = e.commit(e.limits.Rest(), false)
	} else if clamped := e.limits.Clamp(e.committed.TransformState, e.geom); clamped != e.committed.TransformState {
		emitted = e.commit(clamped, e.anim.Running())
	}

	// Listeners read the geometry alongside the transform.
	if !emitted && e.geom != prev {
		e.emit()
	}
}

// commit stores t as the committed transform and forwards it to the
// animation driver, either as a jump or as an animated target. It reports
// whether listeners were notified.
func (e *Engine) commit(t TransformState, animated bool) bool {
	e.committed = CommittedTransform{t}
	if animated {
		e.anim.AnimateTo(t)
		return false
	}
	before := e.anim.Displayed()
	e.anim.Snap(t)
	if e.anim.Displayed() == before {
		return false
	}
	e.emit()
	return true
}

// ProcessSample applies one gesture sample. It returns false when the
// sample was not consumed as part of a gesture and may be treated as a tap.
// A sample with no pressed pointers ends the current interaction.
func (e *Engine) ProcessSample(s GestureSample) bool {
	next, consumed := e.gestures.Process(s, e.committed.TransformState, e.geom)
	if !consumed {
		return false
	}
	e.commit(next, false)
	return true
}

// EndGesture ends the current interaction, as when all pointers lift.
func (e *Engine) EndGesture() {
	e.gestures.End()
}

// DoubleTap toggles between rest and the intermediate zoom, anchored at
// pivot. Ignored while geometry is invalid or a gesture is in progress.
func (e *Engine) DoubleTap(pivot geometry.Point) {
	if !e.geom.Valid() {
		Logger().Debug("double tap ignored: no geometry")
		return
	}
	if e.gestures.Active() {
		return
	}
	e.commit(e.doubleTap.Target(pivot, e.committed.TransformState, e.geom), true)
}

// ZoomTo animates to scale, keeping pivot stationary.
func (e *Engine) ZoomTo(pivot geometry.Point, scale float64) {
	if !e.geom.Valid() || e.gestures.Active() {
		return
	}
	req := ZoomPivotRequest{
		Pivot:     pivot,
		FromScale: e.committed.Scale,
		ToScale:   e.limits.ClampScale(scale),
	}
	e.commit(e.limits.Clamp(req.Target(e.committed.TransformState, e.geom, geometry.Point{}), e.geom), true)
}

// ZoomBy animates to the committed scale multiplied by ratio.
func (e *Engine) ZoomBy(pivot geometry.Point, ratio float64) {
	e.ZoomTo(pivot, e.committed.Scale*ratio)
}

// Reset returns to the rest state.
func (e *Engine) Reset(animated bool) {
	e.gestures.End()
	e.commit(e.limits.Rest(), animated && e.geom.Valid())
}

// Restore applies a previously saved transform, clamped to the current
// geometry. Ignored while geometry is invalid.
func (e *Engine) Restore(t TransformState) {
	if !e.geom.Valid() {
		return
	}
	e.commit(e.limits.Clamp(t, e.geom), false)
}

// Tick advances animations to frameTime, a monotonic host clock reading.
// It returns the displayed transform and whether further ticks are needed.
func (e *Engine) Tick(frameTime time.Duration) (DisplayedTransform, bool) {
	before := e.anim.Displayed()
	d, running := e.anim.Tick(frameTime)
	if d != before {
		e.emit()
	}
	return d, running
}
