package viewport

import (
	"time"
)

// DefaultDuration is the length of discrete (animated) transitions.
const DefaultDuration = 300 * time.Millisecond

// AnimationDriver interpolates the displayed transform towards the latest
// target. Scale and both offsets are independent channels sharing one clock.
//
// The driver owns no timer: the host calls Tick from its refresh loop with a
// monotonic frame time. The first tick after a retarget anchors the start.
type AnimationDriver struct {
	duration time.Duration
	easing   Easing

	from    TransformState
	to      TransformState
	current TransformState

	start   time.Duration
	started bool
	running bool
}

// NewAnimationDriver creates a driver resting at initial.
func NewAnimationDriver(duration time.Duration, easing Easing, initial TransformState) *AnimationDriver {
	if easing == nil {
		easing = FastOutSlowIn
	}
	return &AnimationDriver{
		duration: duration,
		easing:   easing,
		from:     initial,
		to:       initial,
		current:  initial,
	}
}

// Snap jumps to target immediately, cancelling any running animation.
func (a *AnimationDriver) Snap(target TransformState) {
	a.from, a.to, a.current = target, target, target
	a.running = false
	a.started = false
}

// AnimateTo starts an interpolation from the currently displayed value to
// target. A running animation is retargeted, not restarted from its old
// target.
func (a *AnimationDriver) AnimateTo(target TransformState) {
	if a.duration <= 0 {
		a.Snap(target)
		return
	}
	a.from = a.current
	a.to = target
	a.started = false
	a.running = a.from != a.to
}

// Running reports whether an animation is in flight.
func (a *AnimationDriver) Running() bool {
	return a.running
}

// Displayed returns the last emitted value.
func (a *AnimationDriver) Displayed() DisplayedTransform {
	return DisplayedTransform{a.current}
}

// Tick advances the animation to frameTime and returns the displayed value
// and whether the animation is still running.
func (a *AnimationDriver) Tick(frameTime time.Duration) (DisplayedTransform, bool) {
	if !a.running {
		return a.Displayed(), false
	}
	if !a.started {
		a.start = frameTime
		a.started = true
	}

	elapsed := frameTime - a.start
	if elapsed >= a.duration {
		a.current = a.to
		a.running = false
		return a.Displayed(), false
	}

	f := 0.0
	if elapsed > 0 {
		f = a.easing(float64(elapsed) / float64(a.duration))
	}
	a.current = TransformState{
		Scale:   lerp(a.from.Scale, a.to.Scale, f),
		OffsetX: lerp(a.from.OffsetX, a.to.OffsetX, f),
		OffsetY: lerp(a.from.OffsetY, a.to.OffsetY, f),
	}
	return a.Displayed(), true
}

func lerp(a, b, f float64) float64 {
	return a + (b-a)*f
}
