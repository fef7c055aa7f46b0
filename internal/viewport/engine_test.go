package viewport

import (
	"testing"
	"time"

	"zoomview/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *[]DisplayedTransform) {
	t.Helper()
	e := New(append([]Option{WithEasing(Linear)}, opts...)...)
	e.SetViewSize(1000, 800)
	e.SetContentSize(1000, 800)
	var seen []DisplayedTransform
	e.OnChange(func(d DisplayedTransform) { seen = append(seen, d) })
	return e, &seen
}

func settle(e *Engine, start time.Duration) time.Duration {
	now := start
	for i := 0; i < 100; i++ {
		if _, running := e.Tick(now); !running {
			break
		}
		now += 16 * time.Millisecond
	}
	return now
}

func TestEngineStartsAtRest(t *testing.T) {
	e, _ := newTestEngine(t)
	assert.Equal(t, TransformState{Scale: 1}, e.Committed().TransformState)
	assert.Equal(t, TransformState{Scale: 1}, e.Displayed().TransformState)
	assert.True(t, e.Geometry().Valid())
	assert.Equal(t, 1.0, e.Scale())
}

func TestEngineGestureSnaps(t *testing.T) {
	e, seen := newTestEngine(t)

	c := geometry.Pt(700, 600)
	require.True(t, e.ProcessSample(GestureSample{Pointers: pressed(c, c), Zoom: 2, Centroid: &c}))
	assert.False(t, e.Animating())
	assert.Equal(t, TransformState{Scale: 2, OffsetX: -200, OffsetY: -200}, e.Displayed().TransformState)
	require.Len(t, *seen, 1)
	assert.Equal(t, 2.0, (*seen)[0].Scale)

	assert.False(t, e.ProcessSample(GestureSample{}))
	assert.False(t, e.Gesturing())
}

func TestEngineDoubleTapAnimatesAndRoundTrips(t *testing.T) {
	e, _ := newTestEngine(t)

	e.DoubleTap(geometry.Pt(300, 200))
	assert.Equal(t, 2.0, e.Committed().Scale)
	assert.True(t, e.Animating())
	assert.Equal(t, 1.0, e.Displayed().Scale, "animated, not snapped")

	now := settle(e, 0)
	assert.Equal(t, e.Committed().TransformState, e.Displayed().TransformState)

	e.DoubleTap(geometry.Pt(300, 200))
	assert.Equal(t, TransformState{Scale: 1}, e.Committed().TransformState)
	settle(e, now)
	assert.Equal(t, TransformState{Scale: 1}, e.Displayed().TransformState)
}

func TestEngineDoubleTapRetargetsMidFlight(t *testing.T) {
	e, _ := newTestEngine(t, WithDuration(300*time.Millisecond))

	e.DoubleTap(geometry.Pt(500, 400))
	e.Tick(0)
	mid, _ := e.Tick(150 * time.Millisecond)
	require.InDelta(t, 1.5, mid.Scale, 1e-9)

	e.DoubleTap(geometry.Pt(500, 400))
	d, running := e.Tick(151 * time.Millisecond)
	assert.True(t, running)
	assert.InDelta(t, 1.5, d.Scale, 1e-9)
}

func TestEngineResetOnGeometryChange(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Restore(TransformState{Scale: 2.5, OffsetX: 40})
	require.Equal(t, TransformState{Scale: 2.5, OffsetX: 40}, e.Committed().TransformState)

	e.SetViewSize(1000, 700)
	assert.Greater(t, 800-e.Geometry().ContentHeight, GeometryEpsilon)
	assert.Equal(t, TransformState{Scale: 1}, e.Committed().TransformState)
	assert.Equal(t, TransformState{Scale: 1}, e.Displayed().TransformState)
}

func TestEngineViewChangeWithoutContentChangeReclamps(t *testing.T) {
	e := New()
	e.SetViewSize(1000, 800)
	e.SetContentSize(4000, 3000)
	e.Restore(TransformState{Scale: 3, OffsetX: 1000, OffsetY: 1000})
	require.Equal(t, TransformState{Scale: 3, OffsetX: 1000, OffsetY: 725}, e.Committed().TransformState)

	// Content stays 1000x750; the taller view shrinks the vertical pan range.
	e.SetViewSize(1000, 1000)
	assert.Equal(t, TransformState{Scale: 3, OffsetX: 1000, OffsetY: 625}, e.Committed().TransformState)
}

func TestEngineNewContentResets(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Restore(TransformState{Scale: 2, OffsetX: 100})

	e.SetContentSize(1000, 800)
	assert.Equal(t, TransformState{Scale: 1}, e.Committed().TransformState)
}

func TestEngineGeometryChangeAtRestNotifies(t *testing.T) {
	e := New()
	var geoms []Geometry
	e.OnChange(func(DisplayedTransform) { geoms = append(geoms, e.Geometry()) })

	e.SetViewSize(1000, 800)
	require.Len(t, geoms, 1)
	assert.False(t, geoms[0].Valid(), "no content yet")

	e.SetContentSize(400, 300)
	require.Len(t, geoms, 2)
	assert.Equal(t, Geometry{ViewWidth: 1000, ViewHeight: 800, ContentWidth: 1000, ContentHeight: 750}, geoms[1])

	e.SetViewSize(600, 600)
	require.Len(t, geoms, 3)
	assert.Equal(t, Geometry{ViewWidth: 600, ViewHeight: 600, ContentWidth: 600, ContentHeight: 450}, geoms[2])

	// Same content size again: nothing changed.
	e.SetContentSize(400, 300)
	assert.Len(t, geoms, 3)

	e.ClearContent()
	require.Len(t, geoms, 4)
	assert.False(t, geoms[3].Valid())
	assert.Equal(t, TransformState{Scale: 1}, e.Displayed().TransformState)
}

func TestEngineContentChangeCancelsAnimation(t *testing.T) {
	tests := []struct {
		name   string
		change func(e *Engine)
	}{
		{"new content", func(e *Engine) { e.SetContentSize(1000, 800) }},
		{"view resize", func(e *Engine) { e.SetViewSize(1000, 700) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t)
			e.DoubleTap(geometry.Pt(700, 600))
			e.Tick(0)
			mid, running := e.Tick(100 * time.Millisecond)
			require.True(t, running)
			require.Greater(t, mid.Scale, 1.0)

			tt.change(e)
			assert.False(t, e.Animating())
			assert.Equal(t, TransformState{Scale: 1}, e.Committed().TransformState)
			assert.Equal(t, TransformState{Scale: 1}, e.Displayed().TransformState)

			d, running := e.Tick(200 * time.Millisecond)
			assert.False(t, running)
			assert.Equal(t, TransformState{Scale: 1}, d.TransformState)
		})
	}
}

func TestEngineIgnoresUpdatesWithoutGeometry(t *testing.T) {
	e := New()
	e.SetViewSize(1000, 800)

	c := geometry.Pt(10, 10)
	assert.False(t, e.ProcessSample(GestureSample{Pointers: pressed(c, c), Zoom: 2, Centroid: &c}))
	e.DoubleTap(c)
	e.ZoomTo(c, 3)
	e.Restore(TransformState{Scale: 2})
	assert.Equal(t, TransformState{Scale: 1}, e.Committed().TransformState)
	assert.False(t, e.Animating())

	e.SetContentSize(100, 100)
	e.Restore(TransformState{Scale: 2})
	e.ClearContent()
	assert.False(t, e.Geometry().Valid())
	assert.Equal(t, TransformState{Scale: 1}, e.Committed().TransformState)
}

func TestEngineDoubleTapIgnoredDuringGesture(t *testing.T) {
	e, _ := newTestEngine(t)
	c := geometry.Pt(500, 400)
	require.True(t, e.ProcessSample(GestureSample{Pointers: pressed(c, c), Zoom: 1.5, Centroid: &c}))

	e.DoubleTap(c)
	assert.Equal(t, 1.5, e.Committed().Scale)

	e.EndGesture()
	e.DoubleTap(c)
	assert.Equal(t, 1.0, e.Committed().Scale)
}

func TestEngineZoomBy(t *testing.T) {
	e, _ := newTestEngine(t)
	e.ZoomBy(geometry.Pt(500, 400), 1.25)
	e.ZoomBy(geometry.Pt(500, 400), 1.25)
	assert.InDelta(t, 1.5625, e.Committed().Scale, 1e-9)

	e.ZoomBy(geometry.Pt(500, 400), 100)
	assert.Equal(t, 3.0, e.Committed().Scale)
}

func TestEngineReset(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Restore(TransformState{Scale: 2})

	e.Reset(true)
	assert.True(t, e.Animating())
	settle(e, 0)
	assert.Equal(t, TransformState{Scale: 1}, e.Displayed().TransformState)
}

func TestEngineOptionsNormalized(t *testing.T) {
	e := New(WithLimits(0, -1), WithIntermediateFactor(0.5), WithDuration(-time.Second))
	assert.Equal(t, Limits{MinScale: 1, MaxScale: 1}, e.Limits())
}
