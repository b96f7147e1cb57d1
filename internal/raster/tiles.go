package raster

import "image"

// DefaultTileSize is the edge length of a square tile in pixels.
const DefaultTileSize = 64

// tileGrid partitions the framebuffer into square tiles. During a frame each
// tile is owned by exactly one task, which runs every draw binned to it.
type tileGrid struct {
	size   int
	cols   int
	rows   int
	width  int
	height int
	bins   [][]int32 // draw indices per tile, row-major
	active []int     // tiles with at least one draw
}

// reset resizes the grid if needed and empties every bin, keeping capacity.
func (g *tileGrid) reset(w, h, size int) {
	if g.width != w || g.height != h || g.size != size {
		g.size = size
		g.width = w
		g.height = h
		g.cols = (w + size - 1) / size
		g.rows = (h + size - 1) / size
		g.bins = make([][]int32, g.cols*g.rows)
	}
	for i := range g.bins {
		g.bins[i] = g.bins[i][:0]
	}
	g.active = g.active[:0]
}

// bin appends draw index i to every tile intersecting box.
func (g *tileGrid) bin(i int, box image.Rectangle) {
	if box.Empty() {
		return
	}
	tx0, ty0 := box.Min.X/g.size, box.Min.Y/g.size
	tx1, ty1 := (box.Max.X-1)/g.size, (box.Max.Y-1)/g.size
	for ty := ty0; ty <= ty1; ty++ {
		for tx := tx0; tx <= tx1; tx++ {
			t := ty*g.cols + tx
			if len(g.bins[t]) == 0 {
				g.active = append(g.active, t)
			}
			g.bins[t] = append(g.bins[t], int32(i))
		}
	}
}

// rect returns the pixel rectangle of tile t.
func (g *tileGrid) rect(t int) image.Rectangle {
	tx, ty := t%g.cols, t/g.cols
	return image.Rect(tx*g.size, ty*g.size, (tx+1)*g.size, (ty+1)*g.size).
		Intersect(image.Rect(0, 0, g.width, g.height))
}
