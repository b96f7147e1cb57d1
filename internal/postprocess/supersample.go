package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample scales a supersampled frame down to w×h with CatmullRom
// filtering. Frames are opaque, so no alpha premultiplication is needed.
func Downsample(img *image.RGBA, w, h int) *image.RGBA {
	b := img.Bounds()
	if b.Dx() <= w && b.Dy() <= h {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
