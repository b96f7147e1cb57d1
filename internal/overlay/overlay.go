// Package overlay draws status text onto rendered frames.
package overlay

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const padding = 2

// LineHeight is the pixel height of one overlay line.
var LineHeight = basicfont.Face7x13.Metrics().Height.Ceil() + padding

// Text writes lines in white over a dark band at the top-left of dst.
func Text(dst draw.Image, lines ...string) {
	if len(lines) == 0 {
		return
	}
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(color.White), Face: face}

	width := 0
	for _, l := range lines {
		width = max(width, d.MeasureString(l).Ceil())
	}
	band := image.Rect(0, 0, width+2*padding, len(lines)*LineHeight+padding).Intersect(dst.Bounds())
	draw.Draw(dst, band, image.NewUniform(color.RGBA{0, 0, 0, 160}), image.Point{}, draw.Over)

	ascent := face.Metrics().Ascent.Ceil()
	for i, l := range lines {
		d.Dot = fixed.P(padding, padding+ascent+i*LineHeight)
		d.DrawString(l)
	}
}
