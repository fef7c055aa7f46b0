package canvas

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func gradient(img settable, b image.Rectangle) {
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := uint8((x*37 + y*91) % 256)
			img.Set(x, y, color.NRGBA{R: v, G: 255 - v, B: uint8(x * 13), A: uint8(y * 29)})
		}
	}
}

type settable interface {
	image.Image
	Set(x, y int, c color.Color)
}

func TestPixelCopierMatchesColorModel(t *testing.T) {
	// Non-zero origin so PixOffset is exercised with absolute coordinates.
	b := image.Rect(3, 5, 11, 14)
	tests := []struct {
		name string
		img  settable
	}{
		{"rgba", image.NewRGBA(b)},
		{"nrgba", image.NewNRGBA(b)},
		{"gray", image.NewGray(b)},
		{"rgba64", image.NewRGBA64(b)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gradient(tt.img, b)
			sample := pixelCopier(tt.img)
			dst := make([]uint8, 4)
			for y := b.Min.Y; y < b.Max.Y; y++ {
				for x := b.Min.X; x < b.Max.X; x++ {
					sample(dst, x, y)
					want := color.RGBAModel.Convert(tt.img.At(x, y)).(color.RGBA)
					assert.Equal(t, []uint8{want.R, want.G, want.B, want.A}, dst, "pixel %d,%d", x, y)
				}
			}
		})
	}
}

func TestPremultiplyBounds(t *testing.T) {
	assert.Equal(t, uint8(0), premultiply(255, 0))
	assert.Equal(t, uint8(255), premultiply(255, 255))
	assert.Equal(t, uint8(200), premultiply(200, 255))
	for v := 0; v < 256; v++ {
		for a := 0; a < 256; a += 17 {
			r, _, _, _ := color.NRGBA{R: uint8(v), A: uint8(a)}.RGBA()
			assert.Equal(t, uint8(r>>8), premultiply(uint8(v), uint32(a)))
		}
	}
}
