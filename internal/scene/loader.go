package scene

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"sphere-viewer/internal/logging"
	"sphere-viewer/internal/mathutil"
)

// Model transform applied to raw point coordinates.
const (
	rawYOffset  = 60.0
	rawZOffset  = 50.0
	rawScale    = 0.01
	radiusScale = 0.004
)

// DefaultSeed makes repeated loads of one file produce identical radii and colors.
const DefaultSeed = 1

// Rand is the random source used to derive radii and colors.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns the deterministic source used by Load.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

// Format selects the record framing of a scene file.
type Format string

const (
	FormatAuto Format = "auto"
	FormatText Format = "text"
	FormatXML  Format = "xml"
)

// DetectFormat picks XML for .xml files and whitespace text otherwise.
func DetectFormat(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		return FormatXML
	}
	return FormatText
}

// ParseError reports a coordinate that could not be parsed.
type ParseError struct {
	Record int    // 1-based line (text) or element (XML) number
	Field  string // "x", "y" or "z"
	Text   string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("record %d: %v", e.Record, e.Err)
	}
	return fmt.Sprintf("record %d: bad %s coordinate %q: %v", e.Record, e.Field, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ErrTooFewCoordinates is wrapped by ParseError when a record has fewer than three values.
var ErrTooFewCoordinates = errors.New("need three coordinates")

// FromRaw applies the model transform to one raw point and draws its radius
// and colors from rng: one Float64 for the radius, then three IntN(255)
// bytes for ColorA and three for ColorB.
func FromRaw(x, y, z float32, rng Rand) Sphere {
	y -= rawYOffset
	z -= rawZOffset
	x *= rawScale
	y *= rawScale
	z *= rawScale

	r := float32(5.0 + 5.0*rng.Float64())
	r *= radiusScale

	return Sphere{
		X: x, Y: y, Z: z, R: r,
		ColorA: randomColor(rng),
		ColorB: randomColor(rng),
	}
}

func randomColor(rng Rand) mathutil.Vec3Byte {
	return mathutil.Vec3Byte{uint8(rng.IntN(255)), uint8(rng.IntN(255)), uint8(rng.IntN(255))}
}

// Load reads a scene file. Any unreadable file or malformed record fails the
// whole load. A nil rng uses NewRand(DefaultSeed).
func Load(path string, format Format, rng Rand) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}
	defer f.Close()

	if format == "" || format == FormatAuto {
		format = DetectFormat(path)
	}

	var sc *Scene
	switch format {
	case FormatText:
		sc, err = ReadText(f, rng)
	case FormatXML:
		sc, err = ReadXML(f, rng)
	default:
		return nil, fmt.Errorf("scene: unknown format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("scene: load %s: %w", path, err)
	}

	logging.Logger().Info("scene: loaded", "path", path, "format", string(format), "spheres", sc.Len())
	return sc, nil
}

// ReadText parses one "x y z" record per line. Blank lines are skipped and
// fields after the third are ignored.
func ReadText(r io.Reader, rng Rand) (*Scene, error) {
	if rng == nil {
		rng = NewRand(DefaultSeed)
	}

	var spheres []Sphere
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		s, err := parseRecord(line, fields, rng)
		if err != nil {
			return nil, err
		}
		spheres = append(spheres, s)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return &Scene{spheres: spheres}, nil
}

// xmlScene matches any root element whose children each hold x, y, z
// child elements in that order.
type xmlScene struct {
	Points []xmlPoint `xml:",any"`
}

type xmlPoint struct {
	Coords []xmlCoord `xml:",any"`
}

type xmlCoord struct {
	Text string `xml:",chardata"`
}

// ReadXML parses an XML point document.
func ReadXML(r io.Reader, rng Rand) (*Scene, error) {
	if rng == nil {
		rng = NewRand(DefaultSeed)
	}

	var doc xmlScene
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse xml: %w", err)
	}

	spheres := make([]Sphere, 0, len(doc.Points))
	for i, p := range doc.Points {
		fields := make([]string, len(p.Coords))
		for j, c := range p.Coords {
			fields[j] = c.Text
		}
		s, err := parseRecord(i+1, fields, rng)
		if err != nil {
			return nil, err
		}
		spheres = append(spheres, s)
	}
	return &Scene{spheres: spheres}, nil
}

var axisNames = [3]string{"x", "y", "z"}

func parseRecord(record int, fields []string, rng Rand) (Sphere, error) {
	if len(fields) < 3 {
		return Sphere{}, &ParseError{Record: record, Err: ErrTooFewCoordinates}
	}
	var v [3]float32
	for i := range v {
		text := strings.TrimSpace(fields[i])
		f, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return Sphere{}, &ParseError{Record: record, Field: axisNames[i], Text: text, Err: err}
		}
		v[i] = float32(f)
	}
	return FromRaw(v[0], v[1], v[2], rng), nil
}
