package main

import (
	"errors"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"sphere-viewer/internal/frame"
	"sphere-viewer/internal/overlay"
	"sphere-viewer/internal/raster"
)

// runWindow opens a desktop window and renders one frame per tick until the
// window closes or Escape is pressed.
func runWindow(d *frame.Driver, title string) error {
	fb := d.FrameBuffer()
	v := &viewer{d: d, prof: frame.NewProfiler(), showStats: true}

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(fb.Width, fb.Height)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	err := ebiten.RunGame(v)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type viewer struct {
	d         *frame.Driver
	prof      *frame.Profiler
	last      time.Time
	showStats bool

	rgba  *image.RGBA
	fbImg *ebiten.Image
}

// Present implements frame.Presenter by converting the BGRA buffer into the
// RGBA image uploaded on the next Draw.
func (v *viewer) Present(pix []byte, stride, width, height int) error {
	view := raster.FrameBuffer{Width: width, Height: height, Stride: stride, Pix: pix}
	v.rgba = view.ToRGBA(v.rgba)
	return nil
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		v.showStats = !v.showStats
	}

	now := time.Now()
	if v.last.IsZero() {
		v.last = now
	}
	dt := now.Sub(v.last)
	v.last = now

	if _, err := v.d.Step(float32(dt.Seconds()), v); err != nil {
		return err
	}
	v.prof.Frame()
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	if v.rgba == nil {
		return
	}
	b := v.rgba.Bounds()
	if v.fbImg == nil {
		v.fbImg = ebiten.NewImage(b.Dx(), b.Dy())
	}
	if v.showStats {
		overlay.Text(v.rgba, v.prof.Status(v.d.Stats(), b.Dx(), b.Dy()))
	}
	v.fbImg.WritePixels(v.rgba.Pix)
	screen.DrawImage(v.fbImg, nil)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	fb := v.d.FrameBuffer()
	return fb.Width, fb.Height
}
