//go:build linux

package render

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"
)

type memDevice struct {
	*image.RGBA
	closed bool
}

func (d *memDevice) Close() error {
	d.closed = true
	return nil
}

var teal = color.RGBA{R: 0x00, G: 0x80, B: 0x80, A: 0xFF}

func newMemDevice(w, h int) *memDevice {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(teal), image.Point{}, draw.Src)
	return &memDevice{RGBA: img}
}

func newTestFB(dev *memDevice, width, height int) *FBRenderer {
	r := NewFBRenderer(width, height)
	r.Console = false
	r.Origin = image.Pt(10, 5)
	r.open = func(string) (fbDevice, error) { return dev, nil }
	return r
}

func TestFBRenderer_CompositesOverSavedBackground(t *testing.T) {
	dev := newMemDevice(320, 120)
	r := newTestFB(dev, 140, 54)
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if err := r.Draw(List{Clear{}, textInstruction("09:05", 140, 54, 1)}); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	// Transparent canvas pixels show the original background.
	if got := dev.RGBAAt(10, 5); got != teal {
		t.Errorf("overlay corner = %v; want background %v", got, teal)
	}
	// Outside the overlay nothing changes.
	if got := dev.RGBAAt(300, 100); got != teal {
		t.Errorf("pixel outside overlay = %v; want %v", got, teal)
	}
	changed := 0
	for y := 5; y < 59; y++ {
		for x := 10; x < 150; x++ {
			if dev.RGBAAt(x, y) != teal {
				changed++
			}
		}
	}
	if changed == 0 {
		t.Error("no text pixels composited onto the framebuffer")
	}

	if err := r.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if !dev.closed {
		t.Error("device not closed on Stop")
	}
	for y := 5; y < 59; y++ {
		for x := 10; x < 150; x++ {
			if got := dev.RGBAAt(x, y); got != teal {
				t.Fatalf("pixel (%d,%d) = %v after Stop; want restored background", x, y, got)
			}
		}
	}
}

func TestFBRenderer_RegionStaysOnScreen(t *testing.T) {
	dev := newMemDevice(200, 60)
	r := newTestFB(dev, 140, 54)
	r.Origin = image.Pt(900, 0)
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer r.Stop()

	if want := image.Rect(60, 0, 200, 54); r.region != want {
		t.Errorf("region = %v; want %v", r.region, want)
	}
}

func TestFBRenderer_ScaleDoublesRegion(t *testing.T) {
	dev := newMemDevice(640, 240)
	r := newTestFB(dev, 140, 54)
	r.Scale = 2
	r.Origin = image.Pt(0, 0)
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer r.Stop()

	if want := image.Rect(0, 0, 280, 108); r.region != want {
		t.Errorf("region = %v; want %v", r.region, want)
	}
	if err := r.Draw(List{Clear{}, textInstruction("12:34", 140, 54, 1)}); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
}

func TestFBRenderer_ResizeRestoresOldRegion(t *testing.T) {
	dev := newMemDevice(400, 200)
	r := newTestFB(dev, 140, 54)
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer r.Stop()

	if err := r.Draw(List{Clear{Color: Color{RGB: 0xFF0000, Alpha: 1}}}); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if err := r.Resize(50, 20); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if got := dev.RGBAAt(100, 40); got != teal {
		t.Errorf("pixel in old region = %v after resize; want restored %v", got, teal)
	}
	if want := image.Rect(10, 5, 60, 25); r.region != want {
		t.Errorf("region = %v; want %v", r.region, want)
	}
}

func TestFBRenderer_OpenFailure(t *testing.T) {
	r := NewFBRenderer(140, 54)
	r.Console = false
	boom := errors.New("no such device")
	r.open = func(string) (fbDevice, error) { return nil, boom }
	if err := r.Start(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Start = %v; want wrapped %v", err, boom)
	}
	if err := r.Draw(List{Clear{}}); err != ErrNotStarted {
		t.Errorf("Draw = %v; want ErrNotStarted", err)
	}
}
