package viewport

import (
	"time"
)

// Option configures an Engine at construction time.
type Option func(*settings)

type settings struct {
	limits   Limits
	factor   float64
	duration time.Duration
	easing   Easing
	slop     float64
}

func defaultSettings() settings {
	return settings{
		limits:   DefaultLimits(),
		factor:   DefaultIntermediateFactor,
		duration: DefaultDuration,
		easing:   FastOutSlowIn,
		slop:     DefaultTouchSlop,
	}
}

// normalize repairs values that would break the scale invariants.
func (s *settings) normalize() {
	if s.limits.MinScale <= 0 {
		s.limits.MinScale = DefaultMinScale
	}
	if s.limits.MaxScale < s.limits.MinScale {
		s.limits.MaxScale = s.limits.MinScale
	}
	if s.factor < 1 {
		s.factor = DefaultIntermediateFactor
	}
	if s.duration < 0 {
		s.duration = 0
	}
	if s.easing == nil {
		s.easing = FastOutSlowIn
	}
	if s.slop < 0 {
		s.slop = 0
	}
}

// WithLimits sets the scale range.
func WithLimits(minScale, maxScale float64) Option {
	return func(s *settings) {
		s.limits = Limits{MinScale: minScale, MaxScale: maxScale}
	}
}

// WithIntermediateFactor sets the double-tap zoom multiple.
func WithIntermediateFactor(f float64) Option {
	return func(s *settings) { s.factor = f }
}

// WithDuration sets the duration of animated transitions. Zero disables
// animation.
func WithDuration(d time.Duration) Option {
	return func(s *settings) { s.duration = d }
}

// WithEasing sets the animation curve.
func WithEasing(e Easing) Option {
	return func(s *settings) { s.easing = e }
}

// WithTouchSlop sets the single-pointer movement threshold in view units.
func WithTouchSlop(px float64) Option {
	return func(s *settings) { s.slop = px }
}
