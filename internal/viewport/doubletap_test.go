package viewport

import (
	"testing"

	"zoomview/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoubleTapZoomsInAtPivot(t *testing.T) {
	g := Fit(1000, 800, 1000, 800)
	c := NewDoubleTapZoomController(DefaultLimits(), DefaultIntermediateFactor)
	rest := TransformState{Scale: 1}
	pivot := geometry.Pt(250, 300)

	got := c.Target(pivot, rest, g)
	assert.Equal(t, 2.0, got.Scale)

	inv, ok := rest.Matrix(g).Inverse()
	require.True(t, ok)
	moved := got.Matrix(g).Apply(inv.Apply(pivot))
	assert.InDelta(t, pivot.X, moved.X, 0.5)
	assert.InDelta(t, pivot.Y, moved.Y, 0.5)
}

func TestDoubleTapClampsNearEdges(t *testing.T) {
	g := Fit(1000, 800, 1000, 800)
	c := NewDoubleTapZoomController(DefaultLimits(), DefaultIntermediateFactor)

	got := c.Target(geometry.Pt(0, 0), TransformState{Scale: 1}, g)
	assert.Equal(t, TransformState{Scale: 2, OffsetX: 500, OffsetY: 400}, got)
}

func TestDoubleTapFactorCappedAtMax(t *testing.T) {
	g := Fit(1000, 800, 1000, 800)
	c := NewDoubleTapZoomController(DefaultLimits(), 5)

	got := c.Target(g.ViewCenter(), TransformState{Scale: 1}, g)
	assert.Equal(t, 3.0, got.Scale)
}

func TestDoubleTapZoomsOutFromAnyScale(t *testing.T) {
	g := Fit(1000, 800, 1000, 800)
	c := NewDoubleTapZoomController(DefaultLimits(), DefaultIntermediateFactor)

	for _, s := range []TransformState{
		{Scale: 1.1, OffsetX: 10},
		{Scale: 2, OffsetX: -300, OffsetY: 100},
		{Scale: 3, OffsetX: 900},
	} {
		assert.Equal(t, TransformState{Scale: 1}, c.Target(geometry.Pt(900, 10), s, g))
	}
}

func TestDoubleTapRoundTrip(t *testing.T) {
	c := NewDoubleTapZoomController(DefaultLimits(), DefaultIntermediateFactor)
	for _, g := range geometries() {
		for _, pivot := range []geometry.Point{{X: 0, Y: 0}, {X: 500, Y: 400}, {X: 999, Y: 1}, {X: 123.4, Y: 777}} {
			in := c.Target(pivot, TransformState{Scale: 1}, g)
			require.Greater(t, in.Scale, 1.0)
			assert.Equal(t, TransformState{Scale: 1}, c.Target(pivot, in, g))
		}
	}
}
