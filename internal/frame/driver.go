// Package frame drives the per-tick rendering pass: it owns the rotation
// state, clears the framebuffer, projects the scene and joins the parallel
// draws before the buffer is presented.
package frame

import (
	"sphere-viewer/internal/mathutil"
	"sphere-viewer/internal/raster"
	"sphere-viewer/internal/scene"
	"sphere-viewer/internal/workpool"
)

// Presenter consumes a finished frame. pix holds B,G,R,A rows of stride bytes
// and is only valid until Present returns.
type Presenter interface {
	Present(pix []byte, stride, width, height int) error
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(pix []byte, stride, width, height int) error

func (f PresenterFunc) Present(pix []byte, stride, width, height int) error {
	return f(pix, stride, width, height)
}

// Options configures a Driver.
type Options struct {
	RotationSpeed float32 // radians per second
	ColorSpeed    float32 // color phase cycles per radian of rotation
	Light         raster.Light
	Workers       int // 1 renders serially; <= 0 uses GOMAXPROCS
	TileSize      int
}

// Driver renders one frame per Tick. It is not safe for concurrent use.
type Driver struct {
	scene    *scene.Scene
	fb       *raster.FrameBuffer
	pool     *workpool.Pool
	renderer *raster.Renderer
	opts     Options
	rotation float32
	draws    []raster.Draw
	stats    raster.Stats
}

// New returns a driver rendering sc into a width×height buffer.
func New(sc *scene.Scene, width, height int, opts Options) *Driver {
	var pool *workpool.Pool
	if opts.Workers != 1 {
		pool = workpool.New(opts.Workers)
	}
	return &Driver{
		scene:    sc,
		fb:       raster.NewFrameBuffer(width, height),
		pool:     pool,
		renderer: raster.NewRenderer(opts.Light, pool, opts.TileSize),
		opts:     opts,
	}
}

// Phase maps a rotation angle to the color interpolation factor in [0, 1].
func Phase(angle, colorSpeed float32) float32 {
	return mathutil.PingPong(angle*colorSpeed, 1)
}

// Tick advances the rotation by dt seconds and renders the frame.
func (d *Driver) Tick(dt float32) raster.Stats {
	d.rotation += d.opts.RotationSpeed * dt
	return d.RenderAt(d.rotation)
}

// RenderAt renders the scene at the given angle without touching the
// driver's rotation. It returns after every draw has been written.
func (d *Driver) RenderAt(angle float32) raster.Stats {
	d.fb.Clear()
	d.draws = d.scene.Transform(angle, Phase(angle, d.opts.ColorSpeed), d.pool, d.draws)
	d.stats = d.renderer.Render(d.fb, d.draws)
	return d.stats
}

// Step ticks and hands the finished buffer to p.
func (d *Driver) Step(dt float32, p Presenter) (raster.Stats, error) {
	st := d.Tick(dt)
	return st, p.Present(d.fb.Pix, d.fb.Stride, d.fb.Width, d.fb.Height)
}

func (d *Driver) Rotation() float32 { return d.rotation }

// FrameBuffer returns the buffer of the last rendered frame.
func (d *Driver) FrameBuffer() *raster.FrameBuffer { return d.fb }

// Stats returns the counters of the last rendered frame.
func (d *Driver) Stats() raster.Stats { return d.stats }

// Close stops the worker pool.
func (d *Driver) Close() {
	if d.pool != nil {
		d.pool.Close()
	}
}
