package raster

import (
	"image"
	"math"
)

// BytesPerPixel is the size of one B,G,R,A pixel in FrameBuffer.Pix.
const BytesPerPixel = 4

// FrameBuffer holds the rendering target as flat slices for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Stride int       // bytes per row, Width*BytesPerPixel
	Pix    []uint8   // B,G,R,A interleaved, len = Stride*Height
	Depth  []float32 // nearest depth per pixel, len = W*H, MaxFloat32 when empty
}

// NewFrameBuffer allocates a cleared framebuffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	fb := &FrameBuffer{
		Width:  w,
		Height: h,
		Stride: w * BytesPerPixel,
		Pix:    make([]uint8, w*h*BytesPerPixel),
		Depth:  make([]float32, w*h),
	}
	fb.Clear()
	return fb
}

// Clear zeroes every pixel byte and resets every depth cell to MaxFloat32.
func (fb *FrameBuffer) Clear() {
	clear(fb.Pix)
	for i := range fb.Depth {
		fb.Depth[i] = math.MaxFloat32
	}
}

func (fb *FrameBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.Width, fb.Height)
}

// PixOffset returns the index of the blue byte of pixel (x, y) in Pix.
func (fb *FrameBuffer) PixOffset(x, y int) int {
	return x*BytesPerPixel + y*fb.Stride
}

// DepthAt returns the stored depth of pixel (x, y).
func (fb *FrameBuffer) DepthAt(x, y int) float32 {
	return fb.Depth[y*fb.Width+x]
}

// BGRA returns the four stored bytes of pixel (x, y).
func (fb *FrameBuffer) BGRA(x, y int) [4]uint8 {
	i := fb.PixOffset(x, y)
	return [4]uint8{fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2], fb.Pix[i+3]}
}

func (fb *FrameBuffer) setPixel(off int, r, g, b uint8) {
	fb.Pix[off] = b
	fb.Pix[off+1] = g
	fb.Pix[off+2] = r
	fb.Pix[off+3] = 255
}
