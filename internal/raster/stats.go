package raster

// Stats counts the work done while rendering a frame.
type Stats struct {
	Draws    int // draw calls issued
	Rendered int // pixels that passed the disc and depth tests
	Culled   int // disc pixels rejected by the depth test
	Unlit    int // rendered pixels facing away from the light
}

func (s *Stats) Add(o Stats) {
	s.Draws += o.Draws
	s.Rendered += o.Rendered
	s.Culled += o.Culled
	s.Unlit += o.Unlit
}
