package mathutil

import "github.com/chewxy/math32"

func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PingPong maps v onto a triangle wave rising from 0 to period and back,
// repeating every 2*period.
func PingPong(v, period float32) float32 {
	l := 2 * period
	t := math32.Mod(v, l)
	if t < 0 {
		t += l
	}
	if t < period {
		return t
	}
	return l - t
}
