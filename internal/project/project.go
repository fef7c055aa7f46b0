// Package project provides persistence of a viewing session: which image was
// open and the transform it was left at.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"zoomview/internal/viewport"
)

// Extension is appended to an image path to form its session sidecar.
const Extension = ".zoomview.json"

// CurrentVersion is the session file format version.
const CurrentVersion = 1

// File represents a saved viewing session.
type File struct {
	Version  int       `json:"version"`
	Modified time.Time `json:"modified"`

	// Image path, relative to the session file when possible.
	ImagePath string `json:"image"`

	// Natural size at save time; a mismatch on load means the image changed.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	Transform viewport.TransformState `json:"transform"`
}

// New creates a session for an image.
func New(sessionPath, imagePath string) *File {
	f := &File{Version: CurrentVersion, Transform: viewport.TransformState{Scale: viewport.DefaultMinScale}}
	f.SetImage(sessionPath, imagePath)
	return f
}

// SidecarPath returns the session path used for an image.
func SidecarPath(imagePath string) string {
	return imagePath + Extension
}

// Load loads a session file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse session %s: %w", path, err)
	}
	if f.Version > CurrentVersion {
		return nil, fmt.Errorf("session %s has unsupported version %d", path, f.Version)
	}
	return &f, nil
}

// Save writes the session to a file.
func (f *File) Save(path string) error {
	f.Version = CurrentVersion
	f.Modified = time.Now()

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SetImage sets the image path (relative to the session file).
func (f *File) SetImage(sessionPath, imagePath string) {
	rel, err := filepath.Rel(filepath.Dir(sessionPath), imagePath)
	if err != nil {
		f.ImagePath = imagePath
	} else {
		f.ImagePath = rel
	}
}

// GetImagePath returns the absolute path to the image.
func (f *File) GetImagePath(sessionPath string) string {
	if f.ImagePath == "" {
		return ""
	}
	if filepath.IsAbs(f.ImagePath) {
		return f.ImagePath
	}
	return filepath.Join(filepath.Dir(sessionPath), f.ImagePath)
}

// Matches reports whether the saved natural size equals width x height.
// Sessions saved without a size match anything.
func (f *File) Matches(width, height int) bool {
	if f.Width == 0 && f.Height == 0 {
		return true
	}
	return f.Width == width && f.Height == height
}
