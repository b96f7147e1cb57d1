package scene

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sphere-viewer/internal/mathutil"
)

// fixedRand replays fixed sequences.
type fixedRand struct {
	floats []float64
	ints   []int
}

func (r *fixedRand) Float64() float64 {
	f := r.floats[0]
	r.floats = r.floats[1:]
	return f
}

func (r *fixedRand) IntN(n int) int {
	v := r.ints[0] % n
	r.ints = r.ints[1:]
	return v
}

func TestFromRaw(t *testing.T) {
	rng := &fixedRand{floats: []float64{0.5}, ints: []int{1, 2, 3, 4, 5, 260}}
	s := FromRaw(10, 70, 60, rng)

	assert.InDelta(t, 0.1, s.X, 1e-6)
	assert.InDelta(t, 0.1, s.Y, 1e-6)
	assert.InDelta(t, 0.1, s.Z, 1e-6)
	assert.InDelta(t, 0.03, s.R, 1e-7)
	assert.Equal(t, mathutil.Vec3Byte{1, 2, 3}, s.ColorA)
	assert.Equal(t, mathutil.Vec3Byte{4, 5, 5}, s.ColorB)
}

func TestFromRawRadiusRange(t *testing.T) {
	lo := FromRaw(0, 0, 0, &fixedRand{floats: []float64{0}, ints: make([]int, 6)})
	hi := FromRaw(0, 0, 0, &fixedRand{floats: []float64{0.999999}, ints: make([]int, 6)})
	assert.InDelta(t, 0.02, lo.R, 1e-7)
	assert.InDelta(t, 0.04, hi.R, 1e-6)
	assert.Positive(t, lo.R)
}

const sampleText = `
  -12.5 61 48.25
3 4 5 ignored

100.0 60.0 50.0
`

func TestReadTextIsDeterministic(t *testing.T) {
	a, err := ReadText(strings.NewReader(sampleText), nil)
	require.NoError(t, err)
	b, err := ReadText(strings.NewReader(sampleText), NewRand(DefaultSeed))
	require.NoError(t, err)

	require.Equal(t, 3, a.Len())
	assert.Equal(t, a.Spheres(), b.Spheres())

	s := a.Spheres()[2]
	assert.InDelta(t, 1.0, s.X, 1e-6)
	assert.InDelta(t, 0, s.Y, 1e-6)
	assert.InDelta(t, 0, s.Z, 1e-6)

	c, err := ReadText(strings.NewReader(sampleText), NewRand(2))
	require.NoError(t, err)
	assert.NotEqual(t, a.Spheres(), c.Spheres())
}

func TestReadTextMalformed(t *testing.T) {
	_, err := ReadText(strings.NewReader("1 2 3\n4 five 6\n"), nil)
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Record)
	assert.Equal(t, "y", pe.Field)
	assert.Equal(t, "five", pe.Text)

	_, err = ReadText(strings.NewReader("1 2\n"), nil)
	assert.ErrorIs(t, err, ErrTooFewCoordinates)
}

const sampleXML = `<?xml version="1.0"?>
<points>
  <p><x>-12.5</x><y>61</y><z>48.25</z></p>
  <p><x> 3 </x><y>4</y><z>5</z></p>
  <p><a>100.0</a><b>60.0</b><c>50.0</c></p>
</points>`

func TestReadXMLMatchesText(t *testing.T) {
	fromXML, err := ReadXML(strings.NewReader(sampleXML), nil)
	require.NoError(t, err)
	fromText, err := ReadText(strings.NewReader(sampleText), nil)
	require.NoError(t, err)
	assert.Equal(t, fromText.Spheres(), fromXML.Spheres())
}

func TestReadXMLMalformed(t *testing.T) {
	_, err := ReadXML(strings.NewReader(`<points><p><x>1</x><y>2</y></p></points>`), nil)
	assert.ErrorIs(t, err, ErrTooFewCoordinates)

	_, err = ReadXML(strings.NewReader(`<points><p><x>1</x><y>2</y><z>zz</z></p></points>`), nil)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "z", pe.Field)

	_, err = ReadXML(strings.NewReader(`<points><p>`), nil)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "points.txt")
	xmlPath := filepath.Join(dir, "points.XML")
	require.NoError(t, os.WriteFile(txt, []byte(sampleText), 0o644))
	require.NoError(t, os.WriteFile(xmlPath, []byte(sampleXML), 0o644))

	a, err := Load(txt, FormatAuto, nil)
	require.NoError(t, err)
	b, err := Load(xmlPath, "", nil)
	require.NoError(t, err)
	assert.Equal(t, a.Spheres(), b.Spheres())

	_, err = Load(txt, FormatXML, nil)
	assert.Error(t, err)

	_, err = Load(filepath.Join(dir, "missing.txt"), FormatAuto, nil)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(txt, Format("csv"), nil)
	assert.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatXML, DetectFormat("a/b/scene.xml"))
	assert.Equal(t, FormatText, DetectFormat("sphere_sample_points.txt"))
	assert.Equal(t, FormatText, DetectFormat("noext"))
}
