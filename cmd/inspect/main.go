package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"sphere-viewer/internal/frame"
	"sphere-viewer/internal/raster"
	"sphere-viewer/internal/scene"
)

func main() {
	format := flag.String("format", "auto", "Scene framing: auto, text or xml")
	seed := flag.Uint64("seed", scene.DefaultSeed, "Random seed for radii and colors")
	size := flag.Int("size", 1024, "Framebuffer size for the test frame")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: inspect [flags] <scene file>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	sc, err := scene.Load(path, scene.Format(*format), scene.NewRand(*seed))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Spheres: %d\n", sc.Len())
	if sc.Len() == 0 {
		return
	}

	minX, minY, minZ := math.Inf(1), math.Inf(1), math.Inf(1)
	maxX, maxY, maxZ := math.Inf(-1), math.Inf(-1), math.Inf(-1)
	minR, maxR := math.Inf(1), math.Inf(-1)
	for _, s := range sc.Spheres() {
		x, y, z, r := float64(s.X), float64(s.Y), float64(s.Z), float64(s.R)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
		minZ, maxZ = math.Min(minZ, z), math.Max(maxZ, z)
		minR, maxR = math.Min(minR, r), math.Max(maxR, r)
	}
	fmt.Printf("  BBox: X[%.3f, %.3f] Y[%.3f, %.3f] Z[%.3f, %.3f]\n", minX, maxX, minY, maxY, minZ, maxZ)
	fmt.Printf("  Radius: [%.4f, %.4f]\n", minR, maxR)

	first := sc.Spheres()[0]
	fmt.Printf("  First: pos(%.3f, %.3f, %.3f) r=%.4f colorA=%v colorB=%v\n",
		first.X, first.Y, first.Z, first.R, first.ColorA, first.ColorB)

	// Render one frame at angle 0 and report the pixel counts
	d := frame.New(sc, *size, *size, frame.Options{Light: raster.DefaultLight(), Workers: 0})
	defer d.Close()
	st := d.RenderAt(0)
	covered := 0
	for _, z := range d.FrameBuffer().Depth {
		if z < math.MaxFloat32 {
			covered++
		}
	}
	fmt.Printf("  Frame@0: draws=%d rendered=%d culled=%d unlit=%d coverage=%.1f%%\n",
		st.Draws, st.Rendered, st.Culled, st.Unlit, 100*float64(covered)/float64(len(d.FrameBuffer().Depth)))
}
