// Package dialogs provides application dialogs.
package dialogs

import (
	"fmt"
	"strconv"

	"zoomview/internal/config"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// EasingNames lists the easing curves offered in the settings dialog.
var EasingNames = []string{"fast-out-slow-in", "ease-in-out", "linear"}

// SettingsDialog provides a property sheet for editing the viewer
// configuration. Scale limits apply from the next session.
type SettingsDialog struct {
	cfg    config.Config
	window fyne.Window

	// Zoom
	minScaleEntry *widget.Entry
	maxScaleEntry *widget.Entry
	factorEntry   *widget.Entry
	wheelEntry    *widget.Entry

	// Animation
	durationEntry *widget.Entry
	easingSelect  *widget.Select

	// Input
	slopEntry  *widget.Entry
	watchCheck *widget.Check
	debugCheck *widget.Check

	// Callback
	onSave func(config.Config)
}

// NewSettingsDialog creates a settings dialog editing a copy of cfg.
func NewSettingsDialog(cfg config.Config, window fyne.Window, onSave func(config.Config)) *SettingsDialog {
	return &SettingsDialog{
		cfg:    cfg,
		window: window,
		onSave: onSave,
	}
}

// Show displays the dialog.
func (d *SettingsDialog) Show() {
	content := d.createContent()

	dlg := dialog.NewCustomConfirm(
		"Settings",
		"Save",
		"Cancel",
		content,
		func(save bool) {
			if !save {
				return
			}
			cfg, err := d.collect()
			if err != nil {
				dialog.ShowError(err, d.window)
				return
			}
			d.cfg = cfg
			if d.onSave != nil {
				d.onSave(cfg)
			}
		},
		d.window,
	)
	dlg.Resize(fyne.NewSize(420, 520))
	dlg.Show()
}

func (d *SettingsDialog) createContent() fyne.CanvasObject {
	d.minScaleEntry = floatEntry(d.cfg.MinScale)
	d.maxScaleEntry = floatEntry(d.cfg.MaxScale)
	d.factorEntry = floatEntry(d.cfg.IntermediateFactor)
	d.wheelEntry = floatEntry(d.cfg.WheelStep)

	zoomForm := widget.NewForm(
		widget.NewFormItem("Minimum scale", d.minScaleEntry),
		widget.NewFormItem("Maximum scale", d.maxScaleEntry),
		widget.NewFormItem("Double-tap factor", d.factorEntry),
		widget.NewFormItem("Wheel step", d.wheelEntry),
	)

	d.durationEntry = widget.NewEntry()
	d.durationEntry.SetText(strconv.Itoa(d.cfg.AnimationMillis))
	d.easingSelect = widget.NewSelect(EasingNames, nil)
	d.easingSelect.SetSelected(d.cfg.Easing)
	if d.easingSelect.Selected == "" {
		d.easingSelect.SetSelected(EasingNames[0])
	}

	animForm := widget.NewForm(
		widget.NewFormItem("Duration (ms)", d.durationEntry),
		widget.NewFormItem("Easing", d.easingSelect),
	)

	d.slopEntry = floatEntry(d.cfg.TouchSlop)
	d.watchCheck = widget.NewCheck("Reload when the file changes", nil)
	d.watchCheck.SetChecked(d.cfg.WatchContent)
	d.debugCheck = widget.NewCheck("Debug logging", nil)
	d.debugCheck.SetChecked(d.cfg.Debug)

	inputForm := widget.NewForm(
		widget.NewFormItem("Touch slop (px)", d.slopEntry),
	)

	return container.NewVBox(
		widget.NewCard("Zoom", "", zoomForm),
		widget.NewCard("Animation", "", animForm),
		widget.NewCard("Input", "", container.NewVBox(inputForm, d.watchCheck, d.debugCheck)),
	)
}

// collect reads the form into a validated configuration.
func (d *SettingsDialog) collect() (config.Config, error) {
	cfg := d.cfg
	fields := []struct {
		name   string
		text   string
		target *float64
	}{
		{"minimum scale", d.minScaleEntry.Text, &cfg.MinScale},
		{"maximum scale", d.maxScaleEntry.Text, &cfg.MaxScale},
		{"double-tap factor", d.factorEntry.Text, &cfg.IntermediateFactor},
		{"wheel step", d.wheelEntry.Text, &cfg.WheelStep},
		{"touch slop", d.slopEntry.Text, &cfg.TouchSlop},
	}
	for _, f := range fields {
		v, err := strconv.ParseFloat(f.text, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q", f.name, f.text)
		}
		*f.target = v
	}

	ms, err := strconv.Atoi(d.durationEntry.Text)
	if err != nil {
		return cfg, fmt.Errorf("invalid duration %q", d.durationEntry.Text)
	}
	cfg.AnimationMillis = ms
	cfg.Easing = d.easingSelect.Selected
	cfg.WatchContent = d.watchCheck.Checked
	cfg.Debug = d.debugCheck.Checked

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func floatEntry(v float64) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(strconv.FormatFloat(v, 'g', -1, 64))
	return e
}
