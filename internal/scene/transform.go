package scene

import (
	"sphere-viewer/internal/mathutil"
	"sphere-viewer/internal/raster"
	"sphere-viewer/internal/workpool"
)

const (
	// CameraOffset pushes the rotated scene in front of the fixed camera.
	CameraOffset = 1.5
	// NearPlane is the smallest depth that is still drawn.
	NearPlane = 0.001
)

// Project rotates s about the vertical axis, applies the weak perspective
// divide and resolves its color for the given phase. ok is false when the
// sphere lies at or behind the near plane.
func (s Sphere) Project(sin, cos, phase float32) (d raster.Draw, ok bool) {
	depth := s.X*cos + s.Z*sin + CameraOffset
	d.Depth = depth
	if depth < NearPlane {
		return d, false
	}
	lateral := s.X*sin - s.Z*cos
	d.X = lateral / depth
	d.Y = s.Y / depth
	d.Radius = s.R / depth
	d.Color = mathutil.Lerp(s.ColorA, s.ColorB, phase)
	return d, true
}

// Transform projects every sphere for rotation angle (radians) and color
// phase, appending the visible ones to dst[:0] in scene order. Spheres behind
// the near plane produce no draw. With a non-nil pool the projection runs in
// parallel chunks; it is a pure function of each sphere.
func (s *Scene) Transform(angle, phase float32, pool *workpool.Pool, dst []raster.Draw) []raster.Draw {
	n := len(s.spheres)
	if cap(dst) < n {
		dst = make([]raster.Draw, n)
	}
	dst = dst[:n]
	sin, cos := mathutil.SinCos(angle)

	project := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			dst[i], _ = s.spheres[i].Project(sin, cos, phase)
		}
	}
	if pool == nil {
		project(0, n)
	} else {
		pool.Chunks(n, project)
	}

	// Culled entries keep their failing depth; compact them out.
	out := dst[:0]
	for _, d := range dst {
		if d.Depth >= NearPlane {
			out = append(out, d)
		}
	}
	return out
}
