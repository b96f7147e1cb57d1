package raster

import "image"

// ToRGBA copies the framebuffer into dst, swapping B and R. Alpha is forced
// to 255, so undrawn pixels come out opaque black. dst is reallocated when nil
// or of a different size.
func (fb *FrameBuffer) ToRGBA(dst *image.RGBA) *image.RGBA {
	if dst == nil || dst.Rect.Dx() != fb.Width || dst.Rect.Dy() != fb.Height {
		dst = image.NewRGBA(fb.Bounds())
	}
	for y := 0; y < fb.Height; y++ {
		src := fb.Pix[y*fb.Stride : y*fb.Stride+fb.Width*BytesPerPixel]
		row := dst.Pix[y*dst.Stride : y*dst.Stride+fb.Width*4]
		for i := 0; i < len(src); i += BytesPerPixel {
			row[i] = src[i+2]
			row[i+1] = src[i+1]
			row[i+2] = src[i]
			row[i+3] = 255
		}
	}
	return dst
}
