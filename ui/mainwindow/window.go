// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log"
	"path/filepath"

	"zoomview/internal/app"
	"zoomview/internal/config"
	"zoomview/internal/image"
	"zoomview/internal/version"
	"zoomview/ui/canvas"
	"zoomview/ui/dialogs"
	"zoomview/ui/panels"
	"zoomview/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const appTitle = "ZoomView"

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	canvas    *canvas.ZoomCanvas
	props     *panels.PropertySheet
	split     *container.Split
	zoomLabel *widget.Label
	statusBar *widget.Label

	// configPath is where the settings dialog saves.
	configPath string
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow(appTitle)

	mw := &MainWindow{
		Window:     win,
		app:        fyneApp,
		state:      state,
		prefs:      p,
		configPath: config.Find(),
	}
	if mw.configPath == "" {
		mw.configPath = config.DefaultPath()
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupShortcuts()
	mw.setupEventHandlers()

	w, h := p.WindowSize()
	mw.Resize(fyne.NewSize(w, h))
	return mw
}

// SetConfigPath sets the file the settings dialog writes.
func (mw *MainWindow) SetConfigPath(path string) {
	mw.configPath = path
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewZoomCanvas(mw.state)
	mw.zoomLabel = widget.NewLabel(formatScale(1))
	mw.statusBar = widget.NewLabel("Ready")

	mw.canvas.OnZoomChange(func(scale float64) {
		mw.zoomLabel.SetText(formatScale(scale))
	})

	toolbar := container.NewHBox(
		widget.NewButton("Open...", mw.onOpen),
		widget.NewButton("Reset", mw.canvas.ResetZoom),
		widget.NewLabel("Zoom:"),
		mw.zoomLabel,
	)

	mw.props = panels.NewPropertySheet(mw.state, mw.Window)
	mw.split = container.NewHSplit(mw.canvas, container.NewVScroll(mw.props.Widget()))
	mw.split.Offset = 0.75

	content := container.NewBorder(
		toolbar,                           // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		mw.split,                          // center
	)
	mw.SetContent(content)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mw.onOpen),
		fyne.NewMenuItem("Save View", mw.onSaveSession),
		fyne.NewMenuItem("Close Image", mw.state.CloseImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings...", mw.onSettings),
	)
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Reset Zoom", mw.canvas.ResetZoom),
		fyne.NewMenuItem("Toggle Properties", mw.toggleProperties),
	)
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)
	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, helpMenu))
}

// setupShortcuts binds keyboard keys.
func (mw *MainWindow) setupShortcuts() {
	mw.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyEscape, fyne.Key0:
			mw.canvas.ResetZoom()
		}
	})
}

// setupEventHandlers registers for session events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventContentLoaded, func(data interface{}) {
		if c, ok := data.(*image.Content); ok {
			mw.SetTitle(appTitle + " - " + c.Name())
			mw.updateStatus(fmt.Sprintf("%s  %d x %d", c.Name(), c.Width, c.Height))
		}
	})
	mw.state.On(app.EventContentReloaded, func(data interface{}) {
		if c, ok := data.(*image.Content); ok {
			mw.updateStatus("Reloaded " + c.Name())
		}
	})
	mw.state.On(app.EventContentCleared, func(interface{}) {
		mw.SetTitle(appTitle)
		mw.updateStatus("Ready")
	})
	mw.state.On(app.EventSessionSaved, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.updateStatus("View saved to " + filepath.Base(path))
		}
	})
}

// RestoreLastImage reopens the image shown in the previous run, if any.
func (mw *MainWindow) RestoreLastImage() {
	path := mw.prefs.LastImage()
	if path == "" {
		return
	}
	if err := mw.state.OpenImage(path); err != nil {
		log.Printf("Failed to restore last image %s: %v", path, err)
	}
}

// OpenImage opens path and records it in the preferences.
func (mw *MainWindow) OpenImage(path string) error {
	if err := mw.state.OpenImage(path); err != nil {
		return err
	}
	mw.prefs.SetLastImage(path)
	return nil
}

// SavePreferences stores the window size and writes preferences to disk.
func (mw *MainWindow) SavePreferences() {
	size := mw.Canvas().Size()
	mw.prefs.SetWindowSize(size.Width, size.Height)
	if err := mw.prefs.Save(); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.LastDir()
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

func (mw *MainWindow) onOpen() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()

		path := reader.URI().Path()
		mw.prefs.SetLastDir(filepath.Dir(path))
		if err := mw.OpenImage(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(image.SupportedFormats()))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveSession() {
	if err := mw.state.SaveSession(); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSettings() {
	dialogs.NewSettingsDialog(*mw.state.Config, mw.Window, func(cfg config.Config) {
		if err := cfg.Save(mw.configPath); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Settings saved to " + mw.configPath + "; restart to apply")
	}).Show()
}

// toggleProperties collapses or restores the property panel.
func (mw *MainWindow) toggleProperties() {
	if mw.split.Offset < 0.99 {
		mw.split.SetOffset(1)
	} else {
		mw.split.SetOffset(0.75)
	}
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About "+appTitle,
		fmt.Sprintf("%s %s\nPinch, drag, scroll or double-click to zoom.",
			appTitle, version.String()),
		mw.Window)
}

func formatScale(scale float64) string {
	return fmt.Sprintf("%.0f%%", scale*100)
}
