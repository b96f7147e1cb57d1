package batch

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"sphere-viewer/internal/frame"
	"sphere-viewer/internal/logging"
	"sphere-viewer/internal/overlay"
	"sphere-viewer/internal/postprocess"
	"sphere-viewer/internal/raster"
	"sphere-viewer/internal/scene"
)

// Config holds all shared resources for a batch run.
type Config struct {
	Scene     *scene.Scene
	OutputDir string
	Format    Format

	Width       int
	Height      int
	Supersample int
	Workers     int

	Frames        int
	FrameStep     float32 // seconds between frames
	StartAngle    float32 // radians
	RotationSpeed float32
	ColorSpeed    float32
	Light         raster.Light

	// Stamp draws the frame number and pixel counts onto each image.
	Stamp bool
}

// Result holds the outcome of rendering one frame.
type Result struct {
	Frame   int
	Angle   float32
	Image   string // path relative to OutputDir
	Stats   raster.Stats
	Success bool
	Error   string
}

// Angle returns the rotation of frame i.
func (c *Config) Angle(i int) float32 {
	return c.StartAngle + c.RotationSpeed*c.FrameStep*float32(i)
}

// Run renders all frames using a worker pool. Frames are independent, so
// each worker owns a serial driver and its own framebuffer.
func Run(cfg Config) []Result {
	total := cfg.Frames
	results := make([]Result, total)
	var processed atomic.Int64

	if cfg.Supersample < 1 {
		cfg.Supersample = 1
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	start := time.Now()
	log := logging.Logger()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					log.Info("batch: progress", "done", p, "total", total, "fps", float64(p)/elapsed)
				}
			}
		}
	}()

	// Worker pool
	frameChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d := frame.New(cfg.Scene, cfg.Width*cfg.Supersample, cfg.Height*cfg.Supersample, frame.Options{
				ColorSpeed: cfg.ColorSpeed,
				Light:      cfg.Light,
				Workers:    1,
			})
			defer d.Close()
			var rgba *image.RGBA
			for idx := range frameChan {
				results[idx], rgba = renderFrame(cfg, d, idx, rgba)
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := 0; i < total; i++ {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	return results
}

func renderFrame(cfg Config, d *frame.Driver, idx int, rgba *image.RGBA) (Result, *image.RGBA) {
	res := Result{
		Frame: idx,
		Angle: cfg.Angle(idx),
		Image: fmt.Sprintf("frame_%04d.%s", idx, cfg.Format.Ext()),
	}

	res.Stats = d.RenderAt(res.Angle)
	rgba = d.FrameBuffer().ToRGBA(rgba)

	img := rgba
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(rgba, cfg.Width, cfg.Height)
	}
	if cfg.Stamp {
		overlay.Text(img,
			fmt.Sprintf("frame %d angle %.3f", idx, res.Angle),
			fmt.Sprintf("rendered pixels: %d culled pixels: %d", res.Stats.Rendered, res.Stats.Culled))
	}

	outPath := filepath.Join(cfg.OutputDir, res.Image)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		res.Error = err.Error()
		return res, rgba
	}

	f, err := os.Create(outPath)
	if err != nil {
		res.Error = err.Error()
		return res, rgba
	}
	defer f.Close()

	if err := Encode(f, img, cfg.Format); err != nil {
		res.Error = err.Error()
		return res, rgba
	}

	res.Success = true
	return res, rgba
}
