package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sphere-viewer/internal/batch"
	"sphere-viewer/internal/config"
	"sphere-viewer/internal/logging"
	"sphere-viewer/internal/mathutil"
	"sphere-viewer/internal/scene"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config file (.json, .toml, .yaml)")
	scenePath := flag.String("scene", "", "Scene point file (default: sphere_sample_points.txt)")
	sceneFormat := flag.String("scene-format", "", "Scene framing: auto, text or xml")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	format := flag.String("format", "", "Image format: webp, tga or png (default: webp)")
	frames := flag.Int("frames", 0, "Number of frames to render (default: 60)")
	size := flag.Int("size", 0, "Output width and height in pixels (default: 1024)")
	startDeg := flag.Float64("angle", 0, "Rotation of the first frame in degrees")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	stamp := flag.Bool("stamp", false, "Draw frame number and pixel counts onto each image")
	verbose := flag.Bool("v", false, "Verbose logging")

	flag.Parse()

	logging.SetLogger(logging.Stderr(*verbose))

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		ScenePath:   *scenePath,
		SceneFormat: *sceneFormat,
		OutputDir:   *outputDir,
		Format:      *format,
		Width:       *size,
		Height:      *size,
		Workers:     *workers,
		Frames:      *frames,
	})

	imgFormat, err := batch.ParseFormat(cfg.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sc, err := scene.Load(cfg.ScenePath, scene.Format(cfg.SceneFormat), scene.NewRand(cfg.Seed))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Sphere field renderer → %s\n", imgFormat)
	fmt.Printf("Spheres: %d, Frames: %d, Size: %dx%d, Workers: %d\n", sc.Len(), cfg.Frames, cfg.Width, cfg.Height, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		Scene:         sc,
		OutputDir:     cfg.OutputDir,
		Format:        imgFormat,
		Width:         cfg.Width,
		Height:        cfg.Height,
		Supersample:   cfg.Supersample,
		Workers:       cfg.Workers,
		Frames:        cfg.Frames,
		FrameStep:     cfg.FrameStep,
		StartAngle:    mathutil.Deg2Rad(float32(*startDeg)),
		RotationSpeed: cfg.RotationSpeed,
		ColorSpeed:    cfg.ColorSpeed,
		Light:         cfg.LightDir(),
		Stamp:         *stamp,
	})

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(results))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(20, len(errors))
		for _, e := range errors[:limit] {
			fmt.Printf("  frame %d: %s\n", e.Frame, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
