// Command gesturereplay replays a YAML gesture script through the viewport
// engine and prints the transform after every step.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"zoomview/internal/config"
	"zoomview/internal/image"
	"zoomview/internal/replay"
	"zoomview/internal/viewport"
)

func main() {
	scriptPath := flag.String("s", "", "Path to gesture script (YAML)")
	configPath := flag.String("config", "", "TOML configuration file")
	imagePath := flag.String("image", "", "Take the content size from this image instead of the script")
	asJSON := flag.Bool("json", false, "Print one JSON record per step")
	verbose := flag.Bool("v", false, "Log engine decisions to stderr")
	flag.Parse()

	if *scriptPath == "" {
		fmt.Println("Usage: gesturereplay -s <script.yaml> [-image <file>] [-config <file.toml>] [-json] [-v]")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration: %v\n", err)
		os.Exit(1)
	}
	if *verbose || cfg.Debug {
		viewport.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	script, err := replay.ParseFile(*scriptPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load script: %v\n", err)
		os.Exit(1)
	}

	if *imagePath != "" {
		content, err := image.ReadHeader(*imagePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read image header: %v\n", err)
			os.Exit(1)
		}
		script.Content = replay.Dimensions{Width: content.Width, Height: content.Height}
	}

	engine := viewport.New(cfg.EngineOptions()...)
	records := replay.NewRunner(engine).Run(script)

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		for _, r := range records {
			if err := enc.Encode(r); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to write record: %v\n", err)
				os.Exit(1)
			}
		}
		return
	}

	g := engine.Geometry()
	fmt.Printf("=== Content %dx%d, final view %.0fx%.0f (fitted %.1fx%.1f) ===\n",
		script.Content.Width, script.Content.Height,
		g.ViewWidth, g.ViewHeight, g.ContentWidth, g.ContentHeight)
	for _, r := range records {
		flags := ""
		if r.Consumed {
			flags += " consumed"
		}
		if r.Gesturing {
			flags += " gesturing"
		}
		if r.Animating {
			flags += " animating"
		}
		fmt.Printf("%3d %-10s t=%-8v committed[%s] displayed[%s]%s\n",
			r.Step, r.Op, r.Clock, r.Committed, r.Displayed, flags)
	}
}
