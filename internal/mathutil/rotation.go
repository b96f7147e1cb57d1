package mathutil

import "github.com/chewxy/math32"

// SinCos returns sin(a) and cos(a). Angle in radians.
func SinCos(a float32) (sin, cos float32) {
	return math32.Sin(a), math32.Cos(a)
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float32) float32 {
	return d * math32.Pi / 180
}
