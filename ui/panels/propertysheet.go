// Package panels provides side panels for the main window.
package panels

import (
	"fmt"
	"strconv"

	"zoomview/internal/app"
	"zoomview/internal/image"
	"zoomview/internal/viewport"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// PropertySheet displays the open image, the viewport geometry and the live
// transform, and allows jumping to an exact transform.
type PropertySheet struct {
	state *app.State
	win   fyne.Window
	box   *fyne.Container

	fileLabel    *widget.Label
	naturalLabel *widget.Label
	formatLabel  *widget.Label

	viewLabel    *widget.Label
	fittedLabel  *widget.Label
	visibleLabel *widget.Label
	scaleLabel   *widget.Label

	scaleEntry   *widget.Entry
	offsetXEntry *widget.Entry
	offsetYEntry *widget.Entry
}

// NewPropertySheet creates a new property sheet panel.
func NewPropertySheet(state *app.State, win fyne.Window) *PropertySheet {
	ps := &PropertySheet{
		state: state,
		win:   win,
	}

	ps.buildUI()
	ps.refreshContent(state.CurrentContent())
	ps.loadCommitted()

	state.On(app.EventContentLoaded, func(data interface{}) {
		c, _ := data.(*image.Content)
		ps.refreshContent(c)
		ps.loadCommitted()
	})
	state.On(app.EventContentReloaded, func(data interface{}) {
		c, _ := data.(*image.Content)
		ps.refreshContent(c)
		ps.loadCommitted()
	})
	state.On(app.EventContentCleared, func(interface{}) {
		ps.refreshContent(nil)
	})
	state.On(app.EventTransformChanged, func(data interface{}) {
		if ev, ok := data.(app.TransformEvent); ok {
			ps.refreshTransform(ev)
		}
	})

	return ps
}

// Widget returns the panel widget for embedding.
func (ps *PropertySheet) Widget() fyne.CanvasObject {
	return ps.box
}

func (ps *PropertySheet) buildUI() {
	ps.fileLabel = widget.NewLabel("-")
	ps.fileLabel.Truncation = fyne.TextTruncateEllipsis
	ps.naturalLabel = widget.NewLabel("-")
	ps.formatLabel = widget.NewLabel("-")

	ps.viewLabel = widget.NewLabel("-")
	ps.fittedLabel = widget.NewLabel("-")
	ps.visibleLabel = widget.NewLabel("-")
	ps.scaleLabel = widget.NewLabel("-")

	ps.scaleEntry = widget.NewEntry()
	ps.offsetXEntry = widget.NewEntry()
	ps.offsetYEntry = widget.NewEntry()

	imageForm := widget.NewForm(
		widget.NewFormItem("File", ps.fileLabel),
		widget.NewFormItem("Size", ps.naturalLabel),
		widget.NewFormItem("Format", ps.formatLabel),
	)
	viewForm := widget.NewForm(
		widget.NewFormItem("View", ps.viewLabel),
		widget.NewFormItem("Fitted", ps.fittedLabel),
		widget.NewFormItem("Visible", ps.visibleLabel),
		widget.NewFormItem("Scale", ps.scaleLabel),
	)
	gotoForm := widget.NewForm(
		widget.NewFormItem("Scale", ps.scaleEntry),
		widget.NewFormItem("Offset X", ps.offsetXEntry),
		widget.NewFormItem("Offset Y", ps.offsetYEntry),
	)
	gotoForm.SubmitText = "Apply"
	gotoForm.OnSubmit = ps.applyEntries

	ps.box = container.NewVBox(
		widget.NewCard("Image", "", imageForm),
		widget.NewCard("Viewport", "", viewForm),
		widget.NewCard("Go To", "", gotoForm),
	)
}

func (ps *PropertySheet) refreshContent(c *image.Content) {
	if c == nil {
		ps.fileLabel.SetText("-")
		ps.naturalLabel.SetText("-")
		ps.formatLabel.SetText("-")
		return
	}
	ps.fileLabel.SetText(c.Name())
	ps.naturalLabel.SetText(fmt.Sprintf("%d x %d", c.Width, c.Height))
	ps.formatLabel.SetText(c.Format)
}

func (ps *PropertySheet) refreshTransform(ev app.TransformEvent) {
	g := ev.Geometry
	t := ev.Displayed.TransformState

	ps.scaleLabel.SetText(fmt.Sprintf("%.0f%%", t.Scale*100))
	if !g.Valid() {
		ps.viewLabel.SetText("-")
		ps.fittedLabel.SetText("-")
		ps.visibleLabel.SetText("-")
		return
	}
	ps.viewLabel.SetText(fmt.Sprintf("%.0f x %.0f", g.ViewWidth, g.ViewHeight))
	ps.fittedLabel.SetText(fmt.Sprintf("%.1f x %.1f", g.ContentWidth, g.ContentHeight))
	v := g.VisibleRegion(t)
	ps.visibleLabel.SetText(fmt.Sprintf("%.0f%% x %.0f%% at (%.2f, %.2f)",
		v.Width*100, v.Height*100, v.X, v.Y))
}

// loadCommitted fills the entries from the committed transform.
func (ps *PropertySheet) loadCommitted() {
	var t viewport.TransformState
	ps.state.WithEngine(func(e *viewport.Engine) {
		t = e.Committed().TransformState
	})
	ps.scaleEntry.SetText(strconv.FormatFloat(t.Scale, 'f', 3, 64))
	ps.offsetXEntry.SetText(strconv.FormatFloat(t.OffsetX, 'f', 1, 64))
	ps.offsetYEntry.SetText(strconv.FormatFloat(t.OffsetY, 'f', 1, 64))
}

func (ps *PropertySheet) applyEntries() {
	t, err := parseTransform(ps.scaleEntry.Text, ps.offsetXEntry.Text, ps.offsetYEntry.Text)
	if err != nil {
		dialog.ShowError(err, ps.win)
		return
	}
	ps.state.RestoreTransform(t)
	ps.loadCommitted()
}

// parseTransform reads a transform typed into the Go To form.
func parseTransform(scale, offsetX, offsetY string) (viewport.TransformState, error) {
	var t viewport.TransformState
	var err error
	if t.Scale, err = strconv.ParseFloat(scale, 64); err != nil {
		return t, fmt.Errorf("invalid scale %q", scale)
	}
	if t.Scale <= 0 {
		return t, fmt.Errorf("scale must be positive, got %g", t.Scale)
	}
	if t.OffsetX, err = strconv.ParseFloat(offsetX, 64); err != nil {
		return t, fmt.Errorf("invalid offset X %q", offsetX)
	}
	if t.OffsetY, err = strconv.ParseFloat(offsetY, 64); err != nil {
		return t, fmt.Errorf("invalid offset Y %q", offsetY)
	}
	return t, nil
}
