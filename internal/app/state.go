// Package app provides viewer session state: the open image, the transform
// engine that displays it, persistence of the session and change events.
package app

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"zoomview/internal/config"
	"zoomview/internal/image"
	"zoomview/internal/project"
	"zoomview/internal/viewport"
)

// reloadDebounce collapses bursts of file events into one reload.
const reloadDebounce = 250 * time.Millisecond

// EventType identifies different session events.
type EventType int

const (
	EventContentLoaded EventType = iota
	EventContentReloaded
	EventContentCleared
	EventTransformChanged
	EventSessionSaved
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// TransformEvent is the payload of EventTransformChanged.
type TransformEvent struct {
	Displayed viewport.DisplayedTransform
	Geometry  viewport.Geometry
}

// State holds the viewer session.
type State struct {
	mu sync.RWMutex

	Config  *config.Config
	Content *image.Content

	// pendingRestore is applied once the view has a size.
	pendingRestore *viewport.TransformState
	watcher        *ContentWatcher

	// engineMu serializes all engine access; the engine itself is
	// single-threaded.
	engineMu sync.Mutex
	engine   *viewport.Engine

	listeners map[EventType][]EventListener
}

// NewState creates a session with an engine configured from cfg.
func NewState(cfg *config.Config) *State {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	s := &State{
		Config:    cfg,
		engine:    viewport.New(cfg.EngineOptions()...),
		listeners: make(map[EventType][]EventListener),
	}
	s.engine.OnChange(func(d viewport.DisplayedTransform) {
		s.Emit(EventTransformChanged, TransformEvent{Displayed: d, Geometry: s.engine.Geometry()})
	})
	return s
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// WithEngine runs fn with exclusive access to the engine. EventTransformChanged
// listeners run inside fn's critical section and must not call WithEngine.
func (s *State) WithEngine(fn func(e *viewport.Engine)) {
	s.engineMu.Lock()
	defer s.engineMu.Unlock()
	fn(s.engine)
}

// CurrentContent returns the open image, or nil.
func (s *State) CurrentContent() *image.Content {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Content
}

// OpenImage loads an image, installs it in the engine and restores its saved
// session if one exists for the same natural size.
func (s *State) OpenImage(path string) error {
	content, err := image.Load(path)
	if err != nil {
		return err
	}

	var restore *viewport.TransformState
	if sess, err := project.Load(project.SidecarPath(path)); err == nil {
		if sess.Matches(content.Width, content.Height) {
			t := sess.Transform
			restore = &t
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		log.Printf("Ignoring session for %s: %v", path, err)
	}

	s.stopWatcher()
	s.mu.Lock()
	s.Content = content
	s.pendingRestore = restore
	s.mu.Unlock()

	s.WithEngine(func(e *viewport.Engine) {
		e.SetContentSize(content.Width, content.Height)
		s.applyPendingRestore(e)
	})

	if s.Config.WatchContent {
		s.startWatcher(path)
	}

	log.Printf("Opened %s (%dx%d %s)", content.Name(), content.Width, content.Height, content.Format)
	s.Emit(EventContentLoaded, content)
	return nil
}

// ReloadContent re-reads the open image from disk. The transform is reset.
func (s *State) ReloadContent() error {
	current := s.CurrentContent()
	if current == nil {
		return nil
	}

	content, err := image.Load(current.Path)
	if err != nil {
		return fmt.Errorf("failed to reload %s: %w", current.Name(), err)
	}

	s.mu.Lock()
	s.Content = content
	s.pendingRestore = nil
	s.mu.Unlock()

	s.WithEngine(func(e *viewport.Engine) {
		e.SetContentSize(content.Width, content.Height)
	})

	s.Emit(EventContentReloaded, content)
	return nil
}

// CloseImage removes the content and resets the transform.
func (s *State) CloseImage() {
	s.stopWatcher()
	s.mu.Lock()
	s.Content = nil
	s.pendingRestore = nil
	s.mu.Unlock()

	s.WithEngine(func(e *viewport.Engine) {
		e.ClearContent()
	})
	s.Emit(EventContentCleared, nil)
}

// SetViewSize forwards a view resize to the engine.
func (s *State) SetViewSize(width, height float64) {
	s.WithEngine(func(e *viewport.Engine) {
		e.SetViewSize(width, height)
		s.applyPendingRestore(e)
	})
}

// RestoreTransform jumps to t, clamped to the current geometry.
func (s *State) RestoreTransform(t viewport.TransformState) {
	s.WithEngine(func(e *viewport.Engine) {
		e.Restore(t)
	})
}

// applyPendingRestore must be called with engineMu held.
func (s *State) applyPendingRestore(e *viewport.Engine) {
	if !e.Geometry().Valid() {
		return
	}
	s.mu.Lock()
	t := s.pendingRestore
	s.pendingRestore = nil
	s.mu.Unlock()
	if t != nil {
		e.Restore(*t)
	}
}

// SaveSession writes the current transform to the image's sidecar file.
func (s *State) SaveSession() error {
	content := s.CurrentContent()
	if content == nil {
		return nil
	}

	path := project.SidecarPath(content.Path)
	sess := project.New(path, content.Path)
	sess.Width, sess.Height = content.Width, content.Height
	s.WithEngine(func(e *viewport.Engine) {
		sess.Transform = e.Committed().TransformState
	})

	if err := sess.Save(path); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	s.Emit(EventSessionSaved, path)
	return nil
}

func (s *State) startWatcher(path string) {
	w, err := NewContentWatcher(path, reloadDebounce)
	if err != nil {
		log.Printf("Content watcher: unable to watch %s: %v", path, err)
		return
	}
	w.OnChange(func() {
		log.Printf("Content watcher: %s changed, reloading", w.Path())
		if err := s.ReloadContent(); err != nil {
			log.Printf("Content watcher: %v", err)
		}
	})
	w.Start()

	s.mu.Lock()
	s.watcher = w
	s.mu.Unlock()
}

func (s *State) stopWatcher() {
	s.mu.Lock()
	w := s.watcher
	s.watcher = nil
	s.mu.Unlock()
	if w != nil {
		w.Stop()
	}
}

// Close releases background resources.
func (s *State) Close() {
	s.stopWatcher()
}
