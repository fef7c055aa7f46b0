// Package prefs provides JSON-based viewer preferences.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const prefsFile = "preferences.json"

const (
	keyWindowWidth  = "window_width"
	keyWindowHeight = "window_height"
	keyLastImage    = "last_image"
	keyLastDir      = "last_directory"
)

const (
	defaultWindowWidth  = 1024
	defaultWindowHeight = 768
)

// Prefs stores viewer preferences as a key-value map.
type Prefs struct {
	mu     sync.RWMutex
	values map[string]interface{}
	path   string
}

// Load reads preferences from ~/.config/zoomview/preferences.json.
// Returns empty Prefs if the file doesn't exist.
func Load() *Prefs {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return LoadFrom(filepath.Join(configDir, "zoomview", prefsFile))
}

// LoadFrom reads preferences from path.
func LoadFrom(path string) *Prefs {
	p := &Prefs{
		values: make(map[string]interface{}),
		path:   path,
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		return p
	}
	_ = json.Unmarshal(data, &p.values)
	return p
}

// Save writes preferences to disk.
func (p *Prefs) Save() error {
	p.mu.RLock()
	data, err := json.MarshalIndent(p.values, "", "  ")
	p.mu.RUnlock()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o644)
}

// floatWithFallback returns a numeric preference, or fallback if not set.
func (p *Prefs) floatWithFallback(key string, fallback float64) float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if v, ok := p.values[key]; ok {
		switch n := v.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		}
	}
	return fallback
}

func (p *Prefs) string(key string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if s, ok := p.values[key].(string); ok {
		return s
	}
	return ""
}

func (p *Prefs) set(key string, val interface{}) {
	p.mu.Lock()
	p.values[key] = val
	p.mu.Unlock()
}

// WindowSize returns the saved window size, or the default.
func (p *Prefs) WindowSize() (width, height float32) {
	w := p.floatWithFallback(keyWindowWidth, defaultWindowWidth)
	h := p.floatWithFallback(keyWindowHeight, defaultWindowHeight)
	if w <= 0 || h <= 0 {
		return defaultWindowWidth, defaultWindowHeight
	}
	return float32(w), float32(h)
}

// SetWindowSize stores the window size.
func (p *Prefs) SetWindowSize(width, height float32) {
	p.set(keyWindowWidth, float64(width))
	p.set(keyWindowHeight, float64(height))
}

// LastImage returns the image shown when the viewer last exited.
func (p *Prefs) LastImage() string {
	return p.string(keyLastImage)
}

// SetLastImage stores the current image path.
func (p *Prefs) SetLastImage(path string) {
	p.set(keyLastImage, path)
}

// LastDir returns the directory last browsed in the open dialog.
func (p *Prefs) LastDir() string {
	return p.string(keyLastDir)
}

// SetLastDir stores the directory last browsed in the open dialog.
func (p *Prefs) SetLastDir(dir string) {
	p.set(keyLastDir, dir)
}
