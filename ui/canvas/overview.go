// Overview minimap and scale readout drawn over the zoom canvas.
package canvas

import (
	"fmt"
	"image"
	"image/color"

	"zoomview/internal/viewport"
	"zoomview/pkg/colorutil"
)

const (
	overviewMax    = 120 // Longest side of the overview box, in pixels
	overviewMargin = 12
)

// glyphPatterns contains 3x5 pixel patterns for the scale readout.
// Each glyph is represented as 5 rows of 3 bits.
var glyphPatterns = map[rune][5]uint8{
	'0': {0b111, 0b101, 0b101, 0b101, 0b111},
	'1': {0b010, 0b110, 0b010, 0b010, 0b111},
	'2': {0b111, 0b001, 0b111, 0b100, 0b111},
	'3': {0b111, 0b001, 0b111, 0b001, 0b111},
	'4': {0b101, 0b101, 0b111, 0b001, 0b001},
	'5': {0b111, 0b100, 0b111, 0b001, 0b111},
	'6': {0b111, 0b100, 0b111, 0b101, 0b111},
	'7': {0b111, 0b001, 0b001, 0b001, 0b001},
	'8': {0b111, 0b101, 0b111, 0b101, 0b111},
	'9': {0b111, 0b101, 0b111, 0b001, 0b111},
	'.': {0b000, 0b000, 0b000, 0b000, 0b010},
	'X': {0b101, 0b101, 0b010, 0b101, 0b101},
}

// drawOverview draws a thumbnail frame in the bottom-right corner with the
// visible part of the content highlighted, plus the current scale. Nothing
// is drawn at rest scale.
func drawOverview(output *image.RGBA, g viewport.Geometry, t viewport.TransformState, limits viewport.Limits) {
	if !g.Valid() || limits.AtRest(t.Scale) {
		return
	}

	bw, bh := overviewMax, overviewMax
	if g.ContentWidth >= g.ContentHeight {
		bh = int(float64(overviewMax) * g.ContentHeight / g.ContentWidth)
	} else {
		bw = int(float64(overviewMax) * g.ContentWidth / g.ContentHeight)
	}
	b := output.Bounds()
	box := image.Rect(b.Max.X-overviewMargin-bw, b.Max.Y-overviewMargin-bh, b.Max.X-overviewMargin, b.Max.Y-overviewMargin)
	if box.Min.X < b.Min.X || box.Min.Y < b.Min.Y {
		return
	}

	fillRect(output, box, colorutil.Shade)
	drawRectOutline(output, box, colorutil.Frame)

	v := g.VisibleRegion(t)
	visible := image.Rect(
		box.Min.X+int(v.X*float64(bw)),
		box.Min.Y+int(v.Y*float64(bh)),
		box.Min.X+int((v.X+v.Width)*float64(bw)),
		box.Min.Y+int((v.Y+v.Height)*float64(bh)),
	)
	drawRectOutline(output, visible, colorutil.Highlight)

	drawText(output, fmt.Sprintf("%.1fX", t.Scale), box.Min.X, box.Min.Y-14, 2, colorutil.Frame)
}

// fillRect blends col over the rectangle.
func fillRect(output *image.RGBA, r image.Rectangle, col color.RGBA) {
	r = r.Intersect(output.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			i := output.PixOffset(x, y)
			colorutil.Over(output.Pix[i:i+4], col)
		}
	}
}

// drawRectOutline draws a one pixel frame just inside r.
func drawRectOutline(output *image.RGBA, r image.Rectangle, col color.RGBA) {
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		output.SetRGBA(x, r.Min.Y, col)
		output.SetRGBA(x, r.Max.Y-1, col)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		output.SetRGBA(r.Min.X, y, col)
		output.SetRGBA(r.Max.X-1, y, col)
	}
}

// drawText draws text with the 3x5 glyph set, top-left anchored.
// Unsupported characters are skipped but keep their advance.
func drawText(output *image.RGBA, text string, x, y, scale int, col color.RGBA) {
	if scale < 1 {
		scale = 1
	}
	advance := 4 * scale
	for i, ch := range []rune(text) {
		pattern, ok := glyphPatterns[ch]
		if !ok {
			continue
		}
		charX := x + i*advance
		for row := 0; row < 5; row++ {
			for c := 0; c < 3; c++ {
				if pattern[row]&(1<<(2-c)) == 0 {
					continue
				}
				fillRect(output, image.Rect(charX+c*scale, y+row*scale, charX+(c+1)*scale, y+(row+1)*scale), col)
			}
		}
	}
}
