package raster

import (
	"sphere-viewer/internal/logging"
	"sphere-viewer/internal/workpool"
)

// Renderer draws a frame's spheres into a FrameBuffer.
//
// With a pool of more than one worker, the framebuffer is split into tiles
// and each non-empty tile is rendered by one task: every draw is routed to
// the tiles its scan box touches and clipped to them. Tiles never overlap,
// so the depth test-and-set needs no locking and the result is identical to
// drawing serially in slice order.
//
// A Renderer is not safe for concurrent Render calls.
type Renderer struct {
	Light Light

	pool     *workpool.Pool
	tileSize int
	grid     tileGrid
	fps      []footprint
	stats    []Stats
}

// NewRenderer returns a renderer. A nil pool renders serially on the caller.
func NewRenderer(light Light, pool *workpool.Pool, tileSize int) *Renderer {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	return &Renderer{Light: light, pool: pool, tileSize: tileSize}
}

// Render draws every sphere and blocks until all pixels are written.
// The caller clears fb beforehand.
func (r *Renderer) Render(fb *FrameBuffer, draws []Draw) Stats {
	var st Stats
	if r.pool == nil || r.pool.Workers() == 1 {
		clip := fb.Bounds()
		for _, d := range draws {
			st.Add(DrawSphere(fb, d, r.Light, clip))
		}
		st.Draws = len(draws)
		return st
	}

	r.grid.reset(fb.Width, fb.Height, r.tileSize)
	r.fps = r.fps[:0]
	for i, d := range draws {
		fp := d.footprint(fb.Width, fb.Height)
		r.fps = append(r.fps, fp)
		r.grid.bin(i, fp.box)
	}

	active := r.grid.active
	if cap(r.stats) < len(active) {
		r.stats = make([]Stats, len(active))
	}
	r.stats = r.stats[:len(active)]

	light := r.Light
	r.pool.Run(len(active), func(i int) {
		t := active[i]
		clip := r.grid.rect(t)
		var ts Stats
		for _, di := range r.grid.bins[t] {
			ts.Add(drawFootprint(fb, draws[di], r.fps[di], light, clip))
		}
		r.stats[i] = ts
	})

	for _, ts := range r.stats {
		st.Add(ts)
	}
	st.Draws = len(draws)
	logging.Logger().Debug("raster: frame",
		"draws", st.Draws, "tiles", len(active), "rendered", st.Rendered, "culled", st.Culled)
	return st
}
