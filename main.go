// Package main provides the entry point for the ZoomView image viewer.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"zoomview/internal/app"
	"zoomview/internal/config"
	"zoomview/internal/version"
	"zoomview/internal/viewport"
	"zoomview/ui/mainwindow"
	"zoomview/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
)

const appID = "com.zoomview.viewer"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	configPath := flag.String("config", "", "TOML configuration file (default $ZOOMVIEW_CONFIG)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: zoomview [-config file.toml] [image]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	log.Printf("Starting ZoomView %s", version.String())

	path := *configPath
	if path == "" {
		path = config.Find()
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Configuration: %v", err)
	}
	if cfg.Debug {
		viewport.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.Settings().SetTheme(&ViewerTheme{})

	appState := app.NewState(cfg)
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, appState, appPrefs)
	if path != "" {
		win.SetConfigPath(path)
	}

	if flag.NArg() > 0 {
		path := flag.Arg(0)
		if err := win.OpenImage(path); err != nil {
			log.Printf("Failed to open %s: %v", path, err)
		}
	} else {
		win.RestoreLastImage()
	}

	win.SetCloseIntercept(func() {
		win.SavePreferences()
		appState.Close()
		win.Close()
	})

	win.ShowAndRun()
}
