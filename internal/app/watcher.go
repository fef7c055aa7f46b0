package app

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ContentWatcher watches an image file and reports when it has been
// rewritten. Bursts of events (editors often write, chmod and rename in
// quick succession) are collapsed into one callback.
type ContentWatcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher

	mu       sync.Mutex
	onChange func() // Called from the watcher goroutine
	stopCh   chan struct{}
	stopped  bool
}

// NewContentWatcher creates a watcher for path. The parent directory is
// watched so that files replaced by rename are still seen.
func NewContentWatcher(path string, debounce time.Duration) (*ContentWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}

	return &ContentWatcher{
		path:     abs,
		debounce: debounce,
		watcher:  w,
		stopCh:   make(chan struct{}),
	}, nil
}

// OnChange sets the callback to invoke when the file changes.
// The callback is called from a background goroutine.
func (w *ContentWatcher) OnChange(callback func()) {
	w.mu.Lock()
	w.onChange = callback
	w.mu.Unlock()
}

// Path returns the absolute path being watched.
func (w *ContentWatcher) Path() string {
	return w.path
}

// Start begins watching in a background goroutine.
func (w *ContentWatcher) Start() {
	go w.watchLoop()
}

// Stop stops the watcher goroutine and releases the OS watch.
func (w *ContentWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	w.stopped = true
	close(w.stopCh)
	w.watcher.Close()
}

func (w *ContentWatcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

// watchLoop forwards debounced change notifications.
func (w *ContentWatcher) watchLoop() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.stopCh:
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Content watcher: %v", err)
		case <-fire:
			fire = nil
			w.mu.Lock()
			cb := w.onChange
			w.mu.Unlock()
			if cb != nil {
				cb()
			}
		}
	}
}
