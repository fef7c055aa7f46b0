package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func candidates() []TransformState {
	var out []TransformState
	for _, s := range []float64{-1, 0, 0.5, 1, 1.0005, 1.2, 2, 2.99, 3, 4, 100} {
		for _, o := range []float64{-5000, -450, -120, -1, 0, 3, 99.5, 700, 1e6} {
			out = append(out, TransformState{Scale: s, OffsetX: o, OffsetY: -o / 2})
		}
	}
	return out
}

func geometries() []Geometry {
	return []Geometry{
		Fit(4000, 3000, 1000, 800),
		Fit(3000, 4000, 1000, 800),
		Fit(1000, 800, 1000, 800),
		Fit(100, 4000, 1000, 800),
	}
}

func TestClampRange(t *testing.T) {
	l := DefaultLimits()
	for _, g := range geometries() {
		for _, c := range candidates() {
			got := l.Clamp(c, g)
			assert.GreaterOrEqual(t, got.Scale, l.MinScale)
			assert.LessOrEqual(t, got.Scale, l.MaxScale)
		}
	}
}

func TestClampContainment(t *testing.T) {
	l := DefaultLimits()
	for _, g := range geometries() {
		for _, c := range candidates() {
			got := l.Clamp(c, g)
			r := g.ContentRect(got)

			if r.Width > g.ViewWidth {
				assert.LessOrEqual(t, r.X, 1e-9, "left edge receded: %v", got)
				assert.GreaterOrEqual(t, r.X+r.Width, g.ViewWidth-1e-9, "right edge receded: %v", got)
			} else {
				assert.Zero(t, got.OffsetX)
			}
			if r.Height > g.ViewHeight {
				assert.LessOrEqual(t, r.Y, 1e-9, "top edge receded: %v", got)
				assert.GreaterOrEqual(t, r.Y+r.Height, g.ViewHeight-1e-9, "bottom edge receded: %v", got)
			} else {
				assert.Zero(t, got.OffsetY)
			}
		}
	}
}

func TestClampIdempotent(t *testing.T) {
	l := Limits{MinScale: 0.5, MaxScale: 4}
	for _, g := range geometries() {
		for _, c := range candidates() {
			once := l.Clamp(c, g)
			assert.Equal(t, once, l.Clamp(once, g))
		}
	}
}

func TestClampRestIsCentred(t *testing.T) {
	l := DefaultLimits()
	g := Fit(100, 4000, 1000, 800)

	got := l.Clamp(TransformState{Scale: 1.0004, OffsetX: 30, OffsetY: 30}, g)
	assert.Equal(t, 1.0004, got.Scale)
	assert.Zero(t, got.OffsetX)
	assert.Zero(t, got.OffsetY)

	assert.Equal(t, TransformState{Scale: 1}, l.Rest())
}

func TestMaxPan(t *testing.T) {
	g := Fit(1000, 800, 1000, 800)
	x, y := MaxPan(2, g)
	assert.Equal(t, 500.0, x)
	assert.Equal(t, 400.0, y)

	x, y = MaxPan(1, Fit(4000, 3000, 1000, 800))
	assert.Zero(t, x)
	assert.Zero(t, y)
}
