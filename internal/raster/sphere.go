package raster

import (
	"image"

	"github.com/chewxy/math32"

	"sphere-viewer/internal/mathutil"
)

// Draw is one screen-space sphere produced by the scene transform.
// X and Y are roughly in [-1, 1]; Depth is the camera-space distance used
// for the depth test; Color is the already interpolated RGB color.
type Draw struct {
	X, Y   float32
	Depth  float32
	Radius float32
	Color  mathutil.Vec3Byte
}

// Projections further than this many pixels from the origin cannot touch the
// buffer and would overflow the int conversion.
const maxPixelCoord = 1 << 24

// footprint is a draw mapped to pixel space.
type footprint struct {
	cx, cy int
	r      int
	box    image.Rectangle // clipped scan box, empty for no-op draws
}

// footprint maps the draw onto a w×h buffer. Both axes use w/2 as the scale.
// The scan box spans 2r on each side of the center.
func (d Draw) footprint(w, h int) footprint {
	half := float32(w) / 2
	fx := d.X*half + half
	fy := d.Y*half + half
	fr := math32.Round(d.Radius * half)
	if !(math32.Abs(fx) < maxPixelCoord && math32.Abs(fy) < maxPixelCoord && fr < maxPixelCoord) || fr < 1 {
		return footprint{}
	}
	fp := footprint{
		cx: int(math32.Floor(fx)),
		cy: int(math32.Floor(fy)),
		r:  int(fr),
	}
	fp.box = image.Rect(fp.cx-2*fp.r, fp.cy-2*fp.r, fp.cx+2*fp.r+1, fp.cy+2*fp.r+1).
		Intersect(image.Rect(0, 0, w, h))
	return fp
}

// DrawSphere rasterizes d into fb, touching only pixels inside clip.
// The depth test and pixel writes are not synchronized: concurrent callers
// must pass disjoint clip rectangles.
func DrawSphere(fb *FrameBuffer, d Draw, light Light, clip image.Rectangle) Stats {
	return drawFootprint(fb, d, d.footprint(fb.Width, fb.Height), light, clip)
}

func drawFootprint(fb *FrameBuffer, d Draw, fp footprint, light Light, clip image.Rectangle) Stats {
	var st Stats
	box := fp.box.Intersect(clip)
	if box.Empty() {
		return st
	}

	half := light.HalfVector(d.X, d.Y)
	r2 := fp.r * fp.r
	cr, cg, cb := float32(d.Color[0]), float32(d.Color[1]), float32(d.Color[2])

	for y := box.Min.Y; y < box.Max.Y; y++ {
		dy := y - fp.cy
		rowOff := y * fb.Width
		for x := box.Min.X; x < box.Max.X; x++ {
			dx := x - fp.cx
			d2 := dx*dx + dy*dy
			if d2 > r2 {
				continue
			}

			zIdx := rowOff + x
			if !(d.Depth < fb.Depth[zIdx]) {
				st.Culled++
				continue
			}
			fb.Depth[zIdx] = d.Depth
			st.Rendered++

			normal := mathutil.Vec3{float32(dx), float32(dy), math32.Sqrt(float32(r2 - d2))}.Normalize()
			off := fb.PixOffset(x, y)
			alpha, lit := light.Shade(normal, half)
			if !lit {
				st.Unlit++
				fb.setPixel(off, 0, 0, 0)
				continue
			}
			fb.setPixel(off, uint8(cr*alpha), uint8(cg*alpha), uint8(cb*alpha))
		}
	}
	return st
}
