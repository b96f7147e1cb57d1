package mathutil

import "github.com/chewxy/math32"

// Vec3 is a 3-component float32 vector (value type, stack-allocated).
type Vec3 [3]float32

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

func (a Vec3) Dot(b Vec3) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (v Vec3) Len() float32 {
	return math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Normalize divides each component by the vector length.
// The caller guarantees a non-zero vector; a zero vector yields NaN components.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	return Vec3{v[0] / l, v[1] / l, v[2] / l}
}
