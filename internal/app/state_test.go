package app

import (
	goimage "image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"zoomview/internal/config"
	"zoomview/internal/viewport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, goimage.NewGray(goimage.Rect(0, 0, w, h))))
	require.NoError(t, f.Close())
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.WatchContent = false
	return &cfg
}

func committed(s *State) viewport.TransformState {
	var t viewport.TransformState
	s.WithEngine(func(e *viewport.Engine) { t = e.Committed().TransformState })
	return t
}

func TestOpenImageSetsGeometry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.png")
	writePNG(t, path, 400, 300)

	s := NewState(testConfig())
	var loaded int
	s.On(EventContentLoaded, func(interface{}) { loaded++ })

	s.SetViewSize(1000, 800)
	require.NoError(t, s.OpenImage(path))
	assert.Equal(t, 1, loaded)
	assert.Equal(t, 400, s.CurrentContent().Width)

	s.WithEngine(func(e *viewport.Engine) {
		g := e.Geometry()
		assert.Equal(t, 1000.0, g.ContentWidth)
		assert.Equal(t, 750.0, g.ContentHeight)
	})

	s.CloseImage()
	assert.Nil(t, s.CurrentContent())
	s.WithEngine(func(e *viewport.Engine) { assert.False(t, e.Geometry().Valid()) })
}

func TestOpenImageErrors(t *testing.T) {
	s := NewState(testConfig())
	assert.Error(t, s.OpenImage(filepath.Join(t.TempDir(), "nope.png")))
	assert.NoError(t, s.SaveSession())
	assert.NoError(t, s.ReloadContent())
}

func TestSessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.png")
	writePNG(t, path, 1000, 800)

	s := NewState(testConfig())
	s.SetViewSize(1000, 800)
	require.NoError(t, s.OpenImage(path))
	s.WithEngine(func(e *viewport.Engine) {
		e.Restore(viewport.TransformState{Scale: 2, OffsetX: -120, OffsetY: 60})
	})
	require.NoError(t, s.SaveSession())
	s.CloseImage()

	// The saved transform waits for the view to be sized.
	s2 := NewState(testConfig())
	require.NoError(t, s2.OpenImage(path))
	assert.Equal(t, viewport.TransformState{Scale: 1}, committed(s2))

	var changes []TransformEvent
	s2.On(EventTransformChanged, func(data interface{}) { changes = append(changes, data.(TransformEvent)) })
	s2.SetViewSize(1000, 800)
	assert.Equal(t, viewport.TransformState{Scale: 2, OffsetX: -120, OffsetY: 60}, committed(s2))
	require.NotEmpty(t, changes)
	assert.Equal(t, 2.0, changes[len(changes)-1].Displayed.Scale)
}

func TestReloadResetsTransform(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.png")
	writePNG(t, path, 1000, 800)

	s := NewState(testConfig())
	s.SetViewSize(1000, 800)
	require.NoError(t, s.OpenImage(path))
	s.WithEngine(func(e *viewport.Engine) { e.Restore(viewport.TransformState{Scale: 3}) })

	writePNG(t, path, 500, 800)
	require.NoError(t, s.ReloadContent())
	assert.Equal(t, 500, s.CurrentContent().Width)
	assert.Equal(t, viewport.TransformState{Scale: 1}, committed(s))
}

func TestRestoreTransformClamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.png")
	writePNG(t, path, 1000, 800)

	s := NewState(testConfig())
	s.SetViewSize(1000, 800)
	require.NoError(t, s.OpenImage(path))

	s.RestoreTransform(viewport.TransformState{Scale: 2, OffsetX: 900, OffsetY: -50})
	assert.Equal(t, viewport.TransformState{Scale: 2, OffsetX: 500, OffsetY: -50}, committed(s))

	s.CloseImage()
	s.RestoreTransform(viewport.TransformState{Scale: 2})
	assert.Equal(t, viewport.TransformState{Scale: 1}, committed(s))
}

func TestTransformEventsCarryGeometryAtRest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.png")
	writePNG(t, path, 400, 300)

	s := NewState(testConfig())
	var events []TransformEvent
	s.On(EventTransformChanged, func(data interface{}) { events = append(events, data.(TransformEvent)) })

	s.SetViewSize(1000, 800)
	require.NoError(t, s.OpenImage(path))
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, viewport.Geometry{ViewWidth: 1000, ViewHeight: 800, ContentWidth: 1000, ContentHeight: 750}, last.Geometry)
	assert.Equal(t, 1.0, last.Displayed.Scale)

	n := len(events)
	s.SetViewSize(600, 600)
	require.Len(t, events, n+1)
	assert.Equal(t, viewport.Geometry{ViewWidth: 600, ViewHeight: 600, ContentWidth: 600, ContentHeight: 450}, events[n].Geometry)
}
