package raster

import "sphere-viewer/internal/mathutil"

// Shininess is the fixed specular exponent.
const Shininess = 9

// Light is a single directional light, unit length, shared read-only by every
// draw of a frame.
type Light struct {
	Dir mathutil.Vec3
}

// NewLight returns a light pointing along (x, y, z). The direction must be non-zero.
func NewLight(x, y, z float32) Light {
	return Light{Dir: mathutil.Vec3{x, y, z}.Normalize()}
}

// DefaultLight returns the light used by the viewer.
func DefaultLight() Light {
	return NewLight(1.0, -0.5, 0.7)
}

// HalfVector approximates the Blinn-Phong half-vector for a sphere drawn at
// screen position (sx, sy): the eye term is (sx, sy, 1), not a per-pixel ray.
func (l Light) HalfVector(sx, sy float32) mathutil.Vec3 {
	return l.Dir.Add(mathutil.Vec3{sx, sy, 1}).Normalize()
}

// Shade returns the brightness in [0, 1] for a unit surface normal.
// lit is false when the normal faces away from the light.
func (l Light) Shade(normal, half mathutil.Vec3) (alpha float32, lit bool) {
	diffuse := l.Dir.Dot(normal)
	if diffuse <= 0 {
		return 0, false
	}
	spec := pow9(half.Dot(normal))
	return mathutil.Clamp(diffuse+spec, 0, 1), true
}

func pow9(s float32) float32 {
	p := float32(1)
	for range Shininess {
		p *= s
	}
	return p
}
