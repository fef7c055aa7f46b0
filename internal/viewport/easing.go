package viewport

import (
	"fmt"
	"math"
	"strings"
)

// Easing maps linear animation progress in [0,1] to eased progress.
type Easing func(fraction float64) float64

var (
	// Linear applies no easing.
	Linear Easing = func(f float64) float64 { return f }

	// EaseInOut is the CSS ease-in-out curve.
	EaseInOut = CubicBezier(0.42, 0, 0.58, 1)

	// FastOutSlowIn is the Material standard curve, the default.
	FastOutSlowIn = CubicBezier(0.4, 0, 0.2, 1)
)

// EasingByName resolves a configured easing name.
func EasingByName(name string) (Easing, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "fast-out-slow-in", "standard":
		return FastOutSlowIn, nil
	case "ease-in-out":
		return EaseInOut, nil
	case "linear":
		return Linear, nil
	}
	return nil, fmt.Errorf("unknown easing %q", name)
}

// CubicBezier returns a unit cubic Bezier easing with control points
// (x1,y1) and (x2,y2); the end points are (0,0) and (1,1).
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	bezier := func(t, p1, p2 float64) float64 {
		u := 1 - t
		return 3*u*u*t*p1 + 3*u*t*t*p2 + t*t*t
	}
	slope := func(t, p1, p2 float64) float64 {
		u := 1 - t
		return 3*u*u*p1 + 6*u*t*(p2-p1) + 3*t*t*(1-p2)
	}

	return func(x float64) float64 {
		if x <= 0 {
			return 0
		}
		if x >= 1 {
			return 1
		}

		// Newton first, bisection if the slope flattens out.
		t := x
		for i := 0; i < 8; i++ {
			err := bezier(t, x1, x2) - x
			if math.Abs(err) < 1e-7 {
				return bezier(t, y1, y2)
			}
			d := slope(t, x1, x2)
			if math.Abs(d) < 1e-6 {
				break
			}
			t -= err / d
		}

		lo, hi := 0.0, 1.0
		t = x
		for i := 0; i < 40; i++ {
			v := bezier(t, x1, x2)
			if math.Abs(v-x) < 1e-7 {
				break
			}
			if v < x {
				lo = t
			} else {
				hi = t
			}
			t = (lo + hi) / 2
		}
		return bezier(t, y1, y2)
	}
}
