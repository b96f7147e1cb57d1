// Package scene holds the sphere field: loading it from a point file and
// projecting it to screen-space draws each frame.
package scene

import "sphere-viewer/internal/mathutil"

// Sphere is one primitive in model space. Immutable after load.
type Sphere struct {
	X, Y, Z float32
	R       float32 // > 0
	ColorA  mathutil.Vec3Byte
	ColorB  mathutil.Vec3Byte
}

// Scene is an ordered, fixed collection of spheres. Order carries no meaning:
// occlusion is resolved by the depth buffer.
type Scene struct {
	spheres []Sphere
}

// New returns a scene holding a copy of spheres.
func New(spheres []Sphere) *Scene {
	return &Scene{spheres: append([]Sphere(nil), spheres...)}
}

func (s *Scene) Len() int {
	return len(s.spheres)
}

// Spheres returns the underlying slice. Callers must not modify it.
func (s *Scene) Spheres() []Sphere {
	return s.spheres
}
