package batch

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// Format is an output image encoding.
type Format string

const (
	FormatWebP Format = "webp"
	FormatTGA  Format = "tga"
	FormatPNG  Format = "png"
)

// ParseFormat accepts a case-insensitive format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatWebP, FormatTGA, FormatPNG:
		return f, nil
	}
	return "", fmt.Errorf("batch: unknown image format %q", s)
}

// Ext returns the file extension without the dot.
func (f Format) Ext() string { return string(f) }

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case FormatWebP:
		err = nativewebp.Encode(w, img, nil)
	case FormatTGA:
		err = tga.Encode(w, img)
	case FormatPNG:
		err = png.Encode(w, img)
	default:
		return fmt.Errorf("batch: unknown image format %q", f)
	}
	if err != nil {
		return fmt.Errorf("batch: %s encode: %w", f, err)
	}
	return nil
}
