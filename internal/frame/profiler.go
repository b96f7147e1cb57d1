package frame

import (
	"fmt"
	"time"

	"sphere-viewer/internal/raster"
)

// Profiler tracks frame timing: the last frame time, frames counted over the
// previous full window and the running total.
type Profiler struct {
	Window time.Duration

	now       func() time.Time
	last      time.Time
	accum     time.Duration
	frameTime time.Duration
	frames    int
	avgFrames int
	total     int64
}

// NewProfiler returns a profiler averaging over one second.
func NewProfiler() *Profiler {
	return &Profiler{Window: time.Second, now: time.Now}
}

// Frame records the end of a frame.
func (p *Profiler) Frame() {
	now := p.now()
	if p.last.IsZero() {
		p.last = now
	}
	dt := now.Sub(p.last)
	p.last = now
	p.frameTime = dt

	p.accum += dt
	if p.accum >= p.Window {
		p.avgFrames = p.frames
		p.frames = 0
		p.accum -= p.Window
	}
	p.frames++
	p.total++
}

// FPS is the instantaneous rate derived from the last frame time.
func (p *Profiler) FPS() float64 {
	return 1 / max(p.frameTime.Seconds(), 0.000001)
}

// AvgFPS is the number of frames in the last complete window.
func (p *Profiler) AvgFPS() int { return p.avgFrames }

func (p *Profiler) FrameTime() time.Duration { return p.frameTime }

func (p *Profiler) Total() int64 { return p.total }

// Status formats one status line for an overlay.
func (p *Profiler) Status(st raster.Stats, width, height int) string {
	return fmt.Sprintf("FPS: %.2f Avg FPS: %d Frametime: %.3f Total frames: %d Render size: %dx%d rendered pixels: %d culled pixels: %d",
		p.FPS(), p.avgFrames, p.frameTime.Seconds(), p.total, width, height, st.Rendered, st.Culled)
}
