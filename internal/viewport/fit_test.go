package viewport

import (
	"testing"

	"zoomview/pkg/geometry"

	"github.com/stretchr/testify/assert"
)

func TestFit(t *testing.T) {
	tests := []struct {
		name         string
		natW, natH   int
		viewW, viewH float64
		wantW, wantH float64
		wantValid    bool
	}{
		{"letterbox", 4000, 3000, 1000, 800, 1000, 750, true},
		{"pillarbox", 3000, 4000, 1000, 800, 600, 800, true},
		{"exact", 1000, 800, 1000, 800, 1000, 800, true},
		{"upscale small content", 100, 50, 1000, 800, 1000, 500, true},
		{"zero natural width", 0, 3000, 1000, 800, 0, 0, false},
		{"negative natural height", 4000, -1, 1000, 800, 0, 0, false},
		{"zero view", 4000, 3000, 0, 800, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Fit(tt.natW, tt.natH, tt.viewW, tt.viewH)
			assert.InDelta(t, tt.wantW, g.ContentWidth, 1e-9)
			assert.InDelta(t, tt.wantH, g.ContentHeight, 1e-9)
			assert.Equal(t, tt.wantValid, g.Valid())
		})
	}
}

func TestContentChanged(t *testing.T) {
	base := Fit(4000, 3000, 1000, 800)

	assert.False(t, base.ContentChanged(base))
	assert.False(t, Geometry{ContentWidth: 1000.05, ContentHeight: 750}.ContentChanged(base))
	assert.True(t, Fit(4000, 3000, 900, 800).ContentChanged(base))

	// Taller view keeps a letterboxed width-bound fit unchanged.
	assert.False(t, Fit(4000, 3000, 1000, 900).ContentChanged(base))
}

func TestContentRect(t *testing.T) {
	g := Fit(1000, 800, 1000, 800)
	r := g.ContentRect(TransformState{Scale: 2, OffsetX: 100, OffsetY: -50})
	assert.InDelta(t, -400, r.X, 1e-9)
	assert.InDelta(t, -450, r.Y, 1e-9)
	assert.InDelta(t, 2000, r.Width, 1e-9)
	assert.InDelta(t, 1600, r.Height, 1e-9)
}

func TestNaturalFromView(t *testing.T) {
	g := Fit(4000, 3000, 1000, 800)

	m, ok := g.NaturalFromView(TransformState{Scale: 1}, 4000, 3000)
	assert.True(t, ok)
	// Letterbox bars are 25 units tall; the top-left content pixel sits below them.
	p := m.Apply(geometry.Pt(0, 25))
	assert.InDelta(t, 0, p.X, 1e-9)
	assert.InDelta(t, 0, p.Y, 1e-9)
	p = m.Apply(geometry.Pt(500, 400))
	assert.InDelta(t, 2000, p.X, 1e-9)
	assert.InDelta(t, 1500, p.Y, 1e-9)

	m, _ = g.NaturalFromView(TransformState{Scale: 2, OffsetX: 500}, 4000, 3000)
	p = m.Apply(geometry.Pt(0, 400))
	assert.InDelta(t, 0, p.X, 1e-9, "left edge pinned at max pan")
	assert.InDelta(t, 1500, p.Y, 1e-9)

	_, ok = Fit(0, 0, 10, 10).NaturalFromView(TransformState{Scale: 1}, 0, 0)
	assert.False(t, ok)
}

func TestVisibleRegion(t *testing.T) {
	g := Fit(1000, 800, 1000, 800)

	assert.Equal(t, geometry.Rect{Width: 1, Height: 1}, g.VisibleRegion(TransformState{Scale: 1}))

	r := g.VisibleRegion(TransformState{Scale: 2})
	assert.InDelta(t, 0.25, r.X, 1e-9)
	assert.InDelta(t, 0.25, r.Y, 1e-9)
	assert.InDelta(t, 0.5, r.Width, 1e-9)
	assert.InDelta(t, 0.5, r.Height, 1e-9)

	r = g.VisibleRegion(TransformState{Scale: 2, OffsetX: 500})
	assert.InDelta(t, 0, r.X, 1e-9)
	assert.InDelta(t, 0.5, r.Width, 1e-9)

	assert.Equal(t, geometry.Rect{}, Fit(0, 0, 1, 1).VisibleRegion(TransformState{Scale: 1}))
}
