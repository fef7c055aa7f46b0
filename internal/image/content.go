// Package image provides the content side of the viewer: probing the natural
// size of image files and decoding them for display.
package image

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"zoomview/pkg/geometry"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Content describes one image shown by the viewer.
type Content struct {
	Path   string      // Original file path
	Format string      // Registered decoder name, e.g. "png"
	Width  int         // Natural width in pixels
	Height int         // Natural height in pixels
	Image  image.Image // Decoded pixels; nil after ReadHeader
}

// ReadHeader reads only the header of an image file and reports its natural size.
func ReadHeader(path string) (*Content, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	cfg, format, err := image.DecodeConfig(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read image header: %w", err)
	}

	return &Content{
		Path:   path,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}

// Load decodes an image file.
func Load(path string) (*Content, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	b := img.Bounds()
	return &Content{
		Path:   path,
		Format: format,
		Width:  b.Dx(),
		Height: b.Dy(),
		Image:  img,
	}, nil
}

// Size returns the natural dimensions.
func (c *Content) Size() geometry.Size {
	if c == nil {
		return geometry.Size{}
	}
	return geometry.NewSize(float64(c.Width), float64(c.Height))
}

// Name returns the file name without directories.
func (c *Content) Name() string {
	if c == nil {
		return ""
	}
	return filepath.Base(c.Path)
}

// SupportedFormats returns the list of supported image extensions.
func SupportedFormats() []string {
	return []string{".png", ".jpg", ".jpeg", ".gif", ".tiff", ".tif", ".bmp", ".webp"}
}

// IsSupportedFormat checks if the given path has a supported image extension.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}
