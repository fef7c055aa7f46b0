// Package canvas provides a fyne image view with pinch, drag, wheel and
// double-tap zoom driven by the viewport engine.
package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"sync"
	"time"

	"zoomview/internal/app"
	"zoomview/internal/viewport"
	"zoomview/pkg/colorutil"
	"zoomview/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// ZoomCanvas is the rendering surface and pointer source for a session.
//
// Desktop input has a single pointer: drags become one-pointer samples,
// the wheel becomes animated ZoomBy steps.
type ZoomCanvas struct {
	widget.BaseWidget

	state     *app.State
	raster    *fynecanvas.Raster
	limits    viewport.Limits
	wheelStep float64

	// Last transform reported by the engine, read by draw.
	mu        sync.Mutex
	displayed viewport.DisplayedTransform
	geom      viewport.Geometry

	// Animation ticking
	clock   time.Time
	ticker  *fyne.Animation
	ticking bool

	// Callbacks
	onZoomChange func(scale float64)
}

// NewZoomCanvas creates a canvas bound to state.
func NewZoomCanvas(state *app.State) *ZoomCanvas {
	zc := &ZoomCanvas{
		state:     state,
		wheelStep: state.Config.WheelStep,
		clock:     time.Now(),
	}
	state.WithEngine(func(e *viewport.Engine) {
		zc.limits = e.Limits()
		zc.displayed = e.Displayed()
		zc.geom = e.Geometry()
	})

	zc.raster = fynecanvas.NewRaster(zc.draw)
	zc.raster.ScaleMode = fynecanvas.ImageScalePixels

	zc.ticker = fyne.NewAnimation(time.Second, zc.tick)
	zc.ticker.Curve = fyne.AnimationLinear
	zc.ticker.RepeatCount = fyne.AnimationRepeatForever

	state.On(app.EventTransformChanged, func(data interface{}) {
		ev, ok := data.(app.TransformEvent)
		if !ok {
			return
		}
		zc.mu.Lock()
		zc.displayed = ev.Displayed
		zc.geom = ev.Geometry
		cb := zc.onZoomChange
		zc.mu.Unlock()

		zc.raster.Refresh()
		if cb != nil {
			cb(ev.Displayed.Scale)
		}
	})
	refresh := func(interface{}) { zc.raster.Refresh() }
	state.On(app.EventContentLoaded, refresh)
	state.On(app.EventContentReloaded, refresh)
	state.On(app.EventContentCleared, refresh)

	zc.ExtendBaseWidget(zc)
	return zc
}

// OnZoomChange sets a callback for displayed scale changes.
func (zc *ZoomCanvas) OnZoomChange(callback func(scale float64)) {
	zc.mu.Lock()
	zc.onZoomChange = callback
	zc.mu.Unlock()
}

// CreateRenderer implements fyne.Widget.
func (zc *ZoomCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &zoomCanvasRenderer{canvas: zc}
}

// Dragged handles single-pointer drags. At rest scale the engine declines
// them, so dragging only pans once zoomed in.
func (zc *ZoomCanvas) Dragged(ev *fyne.DragEvent) {
	pos := toPoint(ev.Position)
	sample := viewport.GestureSample{
		Pointers: []viewport.Pointer{{Position: pos, Pressed: true}},
		Pan:      geometry.Pt(float64(ev.Dragged.DX), float64(ev.Dragged.DY)),
		Centroid: &pos,
	}
	zc.state.WithEngine(func(e *viewport.Engine) {
		e.ProcessSample(sample)
	})
}

// DragEnd ends the interaction.
func (zc *ZoomCanvas) DragEnd() {
	zc.state.WithEngine(func(e *viewport.Engine) {
		e.ProcessSample(viewport.GestureSample{})
	})
}

// DoubleTapped toggles zoom at the tap position.
func (zc *ZoomCanvas) DoubleTapped(ev *fyne.PointEvent) {
	zc.state.WithEngine(func(e *viewport.Engine) {
		e.DoubleTap(toPoint(ev.Position))
	})
	zc.startTicking()
}

// Scrolled zooms one wheel step about the pointer.
func (zc *ZoomCanvas) Scrolled(ev *fyne.ScrollEvent) {
	ratio := 1.0
	if ev.Scrolled.DY > 0 {
		ratio = zc.wheelStep
	} else if ev.Scrolled.DY < 0 {
		ratio = 1 / zc.wheelStep
	}
	if ratio == 1 {
		return
	}
	zc.state.WithEngine(func(e *viewport.Engine) {
		e.ZoomBy(toPoint(ev.Position), ratio)
	})
	zc.startTicking()
}

// ResetZoom animates back to the rest state.
func (zc *ZoomCanvas) ResetZoom() {
	zc.state.WithEngine(func(e *viewport.Engine) {
		e.Reset(true)
	})
	zc.startTicking()
}

// startTicking runs the animation clock until the engine settles.
func (zc *ZoomCanvas) startTicking() {
	zc.mu.Lock()
	defer zc.mu.Unlock()
	if zc.ticking {
		return
	}
	zc.ticking = true
	zc.ticker.Start()
}

// tick is the fyne animation callback; progress is ignored in favour of the
// canvas clock.
func (zc *ZoomCanvas) tick(float32) {
	running := false
	frame := time.Since(zc.clock)
	zc.state.WithEngine(func(e *viewport.Engine) {
		_, running = e.Tick(frame)
	})
	if running {
		return
	}

	zc.mu.Lock()
	defer zc.mu.Unlock()
	if zc.ticking {
		zc.ticking = false
		zc.ticker.Stop()
	}
}

// draw renders the content under the displayed transform, sampling the
// source image with nearest-neighbour lookup.
func (zc *ZoomCanvas) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(output, output.Bounds(), image.NewUniform(colorutil.Letterbox), image.Point{}, draw.Src)

	content := zc.state.CurrentContent()
	if content == nil || content.Image == nil || w == 0 || h == 0 {
		return output
	}

	zc.mu.Lock()
	t := zc.displayed.TransformState
	g := zc.geom
	zc.mu.Unlock()

	toNatural, ok := g.NaturalFromView(t, content.Width, content.Height)
	if !ok {
		return output
	}
	// Raster pixels may be denser than view units on HiDPI screens.
	m := toNatural.Compose(geometry.Scaling(g.ViewWidth/float64(w), g.ViewHeight/float64(h)))

	sb := content.Image.Bounds()
	sample := pixelCopier(content.Image)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := m.Apply(geometry.Pt(float64(x)+0.5, float64(y)+0.5))
			sx, sy := int(p.X), int(p.Y)
			if p.X < 0 || p.Y < 0 || sx >= content.Width || sy >= content.Height {
				continue
			}
			i := output.PixOffset(x, y)
			sample(output.Pix[i:i+4], sb.Min.X+sx, sb.Min.Y+sy)
		}
	}

	drawOverview(output, g, t, zc.limits)
	return output
}

// pixelCopier returns a function writing the premultiplied RGBA value of the
// source pixel at (x, y) into dst. RGBA and NRGBA sources are read straight
// from Pix; anything else goes through the colour model.
func pixelCopier(src image.Image) func(dst []uint8, x, y int) {
	switch s := src.(type) {
	case *image.RGBA:
		return func(dst []uint8, x, y int) {
			i := s.PixOffset(x, y)
			copy(dst[:4], s.Pix[i:i+4])
		}
	case *image.NRGBA:
		return func(dst []uint8, x, y int) {
			i := s.PixOffset(x, y)
			a := uint32(s.Pix[i+3])
			dst[0] = premultiply(s.Pix[i], a)
			dst[1] = premultiply(s.Pix[i+1], a)
			dst[2] = premultiply(s.Pix[i+2], a)
			dst[3] = uint8(a)
		}
	default:
		return func(dst []uint8, x, y int) {
			c := color.RGBAModel.Convert(src.At(x, y)).(color.RGBA)
			dst[0], dst[1], dst[2], dst[3] = c.R, c.G, c.B, c.A
		}
	}
}

// premultiply matches color.NRGBA.RGBA followed by a shift to 8 bits.
func premultiply(v uint8, a uint32) uint8 {
	c := uint32(v)
	c |= c << 8
	return uint8(c * a / 0xff >> 8)
}

func toPoint(p fyne.Position) geometry.Point {
	return geometry.Pt(float64(p.X), float64(p.Y))
}

type zoomCanvasRenderer struct {
	canvas *ZoomCanvas
}

func (r *zoomCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.raster.Resize(size)
	r.canvas.state.SetViewSize(float64(size.Width), float64(size.Height))
}

func (r *zoomCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(200, 150)
}

func (r *zoomCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *zoomCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.raster}
}

func (r *zoomCanvasRenderer) Destroy() {
	r.canvas.ticker.Stop()
}
