package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"sphere-viewer/internal/config"
	"sphere-viewer/internal/frame"
	"sphere-viewer/internal/logging"
	"sphere-viewer/internal/scene"
	"sphere-viewer/internal/stream"
)

func main() {
	configFile := flag.String("config", "", "Path to config file (.json, .toml, .yaml)")
	scenePath := flag.String("scene", "", "Scene point file (default: sphere_sample_points.txt)")
	sceneFormat := flag.String("scene-format", "", "Scene framing: auto, text or xml")
	addr := flag.String("addr", "", "Listen address (default: :8080)")
	size := flag.Int("size", 0, "Frame width and height in pixels (default: 1024)")
	workers := flag.Int("workers", 0, "Render workers, 1 for serial (default: NumCPU)")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	logging.SetLogger(logging.Stderr(*verbose))

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		ScenePath:   *scenePath,
		SceneFormat: *sceneFormat,
		Addr:        *addr,
		Width:       *size,
		Height:      *size,
		Workers:     *workers,
	})

	sc, err := scene.Load(cfg.ScenePath, scene.Format(cfg.SceneFormat), scene.NewRand(cfg.Seed))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
		os.Exit(1)
	}

	d := frame.New(sc, cfg.Width, cfg.Height, frame.Options{
		RotationSpeed: cfg.RotationSpeed,
		ColorSpeed:    cfg.ColorSpeed,
		Light:         cfg.LightDir(),
		Workers:       cfg.Workers,
		TileSize:      cfg.TileSize,
	})
	defer d.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Streaming %d spheres at %dx%d, %d fps on http://%s/\n", sc.Len(), cfg.Width, cfg.Height, cfg.StreamFPS, cfg.Addr)
	if err := stream.Serve(ctx, cfg.Addr, stream.NewHub(), d, cfg.StreamFPS); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
