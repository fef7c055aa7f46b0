// Package colorutil provides shared colour utilities for the viewer overlays.
package colorutil

import "image/color"

// Overlay colours used by the canvas.
var (
	Letterbox = color.RGBA{R: 0x12, G: 0x12, B: 0x12, A: 0xFF}
	Frame     = color.RGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
	Shade     = color.RGBA{A: 0xA0}
	Highlight = color.RGBA{R: 0xFF, G: 0xD5, B: 0x00, A: 0xFF}
)

// BlendChannel mixes src over dst with alpha a (0-255).
func BlendChannel(dst, src, a uint8) uint8 {
	return uint8((uint32(dst)*(255-uint32(a)) + uint32(src)*uint32(a)) / 255)
}

// Over blends col over the RGB pixel at pix[0:3] using col's alpha.
// The destination alpha is left unchanged.
func Over(pix []uint8, col color.RGBA) {
	pix[0] = BlendChannel(pix[0], col.R, col.A)
	pix[1] = BlendChannel(pix[1], col.G, col.A)
	pix[2] = BlendChannel(pix[2], col.B, col.A)
}

// Luminance returns the Rec. 601 luma of c in 0-255.
func Luminance(c color.RGBA) float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// Contrasting returns Black or White, whichever reads better on c.
func Contrasting(c color.RGBA) color.RGBA {
	if Luminance(c) > 128 {
		return color.RGBA{A: 0xFF}
	}
	return color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
}
