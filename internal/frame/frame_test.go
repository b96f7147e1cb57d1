package frame

import (
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sphere-viewer/internal/mathutil"
	"sphere-viewer/internal/raster"
	"sphere-viewer/internal/scene"
)

func testScene(t *testing.T) *scene.Scene {
	t.Helper()
	var b strings.Builder
	rng := scene.NewRand(4)
	for range 800 {
		b.WriteString(strings.Join([]string{
			ftoa(rng.Float64()*160 - 80), ftoa(rng.Float64()*120), ftoa(rng.Float64() * 100),
		}, " "))
		b.WriteByte('\n')
	}
	sc, err := scene.ReadText(strings.NewReader(b.String()), nil)
	require.NoError(t, err)
	return sc
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', 3, 64)
}

func opts(workers int) Options {
	return Options{RotationSpeed: 0.25, ColorSpeed: 0.1, Light: raster.DefaultLight(), Workers: workers}
}

func TestTickAdvancesRotation(t *testing.T) {
	d := New(testScene(t), 64, 64, opts(1))
	defer d.Close()

	d.Tick(2)
	assert.InDelta(t, 0.5, d.Rotation(), 1e-6)
	d.Tick(0.5)
	assert.InDelta(t, 0.625, d.Rotation(), 1e-6)

	d.RenderAt(3)
	assert.InDelta(t, 0.625, d.Rotation(), 1e-6)
}

func TestFrameIsClearedBeforeDrawing(t *testing.T) {
	sc := scene.New([]scene.Sphere{{X: 2, R: 0.3, ColorA: mathutil.Vec3Byte{255, 255, 255}}})
	d := New(sc, 64, 64, opts(2))
	defer d.Close()

	st := d.RenderAt(0)
	require.Equal(t, 1, st.Draws)
	require.Positive(t, st.Rendered)

	// half a turn puts the sphere behind the camera
	st = d.RenderAt(math32.Pi)
	assert.Zero(t, st.Draws)
	assert.Equal(t, raster.NewFrameBuffer(64, 64).Pix, d.FrameBuffer().Pix)
	assert.Equal(t, raster.NewFrameBuffer(64, 64).Depth, d.FrameBuffer().Depth)
}

func TestParallelDriverMatchesSerial(t *testing.T) {
	sc := testScene(t)
	serial := New(sc, 160, 160, opts(1))
	defer serial.Close()
	parallel := New(sc, 160, 160, Options{
		RotationSpeed: 0.25, ColorSpeed: 0.1, Light: raster.DefaultLight(), Workers: 4, TileSize: 24,
	})
	defer parallel.Close()

	for range 5 {
		a := serial.Tick(0.3)
		b := parallel.Tick(0.3)
		require.Equal(t, a, b)
		require.Equal(t, serial.FrameBuffer().Pix, parallel.FrameBuffer().Pix)
	}
	assert.Positive(t, serial.Stats().Rendered)
}

func TestStepPresents(t *testing.T) {
	d := New(testScene(t), 48, 32, opts(0))
	defer d.Close()

	var calls int
	_, err := d.Step(1.0/60, PresenterFunc(func(pix []byte, stride, w, h int) error {
		calls++
		assert.Equal(t, 48*raster.BytesPerPixel, stride)
		assert.Equal(t, 48, w)
		assert.Equal(t, 32, h)
		assert.Len(t, pix, stride*h)
		return nil
	}))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	boom := errors.New("surface lost")
	_, err = d.Step(1.0/60, PresenterFunc(func([]byte, int, int, int) error { return boom }))
	assert.ErrorIs(t, err, boom)
}

func TestPhase(t *testing.T) {
	assert.Zero(t, Phase(0, 0.1))
	assert.InDelta(t, 1, Phase(10, 0.1), 1e-6)
	for a := float32(0); a < 50; a += 0.37 {
		p := Phase(a, 0.1)
		require.GreaterOrEqual(t, p, float32(0))
		require.LessOrEqual(t, p, float32(1))
	}
}

func TestProfiler(t *testing.T) {
	clock := time.Unix(100, 0)
	p := NewProfiler()
	p.now = func() time.Time { return clock }

	p.Frame()
	for range 10 {
		clock = clock.Add(100 * time.Millisecond)
		p.Frame()
	}
	assert.Equal(t, int64(11), p.Total())
	assert.Equal(t, 10, p.AvgFPS())
	assert.InDelta(t, 10, p.FPS(), 1e-9)
	assert.Equal(t, 100*time.Millisecond, p.FrameTime())

	line := p.Status(raster.Stats{Rendered: 7, Culled: 3}, 1024, 1024)
	assert.Contains(t, line, "Avg FPS: 10")
	assert.Contains(t, line, "Render size: 1024x1024")
	assert.Contains(t, line, "culled pixels: 3")
}
