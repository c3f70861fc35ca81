//go:build linux

package render

import (
	"context"
	"fmt"
	"image"
	"image/draw"

	fb "github.com/gonutz/framebuffer"
	"github.com/rook-computer/clockoverlay/internal/render/layout"
	"github.com/rook-computer/clockoverlay/internal/system"
	xdraw "golang.org/x/image/draw"
)

// fbDevice is the part of the framebuffer device the renderer touches.
type fbDevice interface {
	draw.Image
	Close() error
}

type fbDeviceCloser struct{ *fb.Device }

func (d fbDeviceCloser) Close() error {
	d.Device.Close()
	return nil
}

func openFramebuffer(path string) (fbDevice, error) {
	dev, err := fb.Open(path)
	if err != nil {
		return nil, err
	}
	return fbDeviceCloser{dev}, nil
}

// FBRenderer composites the overlay onto the Linux framebuffer at Origin.
// The framebuffer has no alpha channel, so the pixels under the overlay are
// saved on Start and transparent canvas pixels show them again.
type FBRenderer struct {
	Path   string
	Origin image.Point
	Scale  int // integer upscale for high-resolution consoles; 0 means 1
	Logger Logger

	// Console switches the VT into graphics mode so the cursor does not
	// blink through the overlay. Disabled in tests.
	Console bool

	open       func(path string) (fbDevice, error)
	dev        fbDevice
	canvas     *Canvas
	region     image.Rectangle
	background *image.RGBA
	frame      *image.RGBA
	scaled     *image.RGBA
}

func NewFBRenderer(width, height int) *FBRenderer {
	return &FBRenderer{
		Path:    DefaultFBDevice,
		Origin:  image.Pt(DefaultX, DefaultY),
		Console: true,
		open:    openFramebuffer,
		canvas:  NewCanvas(width, height),
	}
}

func (r *FBRenderer) Start(ctx context.Context) error {
	path := r.Path
	if path == "" {
		path = DefaultFBDevice
	}
	if r.open == nil {
		r.open = openFramebuffer
	}
	dev, err := r.open(path)
	if err != nil {
		return fmt.Errorf("open framebuffer %s: %w", path, err)
	}
	r.dev = dev
	if r.Logger != nil {
		bounds := dev.Bounds()
		r.Logger.Infof("fb", "framebuffer open, bounds=%dx%d", bounds.Dx(), bounds.Dy())
	}

	r.canvas.Logger = r.Logger
	if err := r.canvas.Start(ctx); err != nil {
		r.dev.Close()
		r.dev = nil
		return err
	}
	r.capture()

	if r.Console {
		_ = system.SetGraphicsModeWithLog(r.Logger)
		_ = system.HideCursorWithLog(r.Logger)
	}
	return nil
}

func (r *FBRenderer) Stop() error {
	if r.dev == nil {
		return nil
	}
	r.restore()
	if r.Console {
		_ = system.ShowCursorWithLog(r.Logger)
		_ = system.RestoreTextModeWithLog(r.Logger)
	}
	_ = r.canvas.Stop()
	err := r.dev.Close()
	r.dev = nil
	return err
}

// Resize puts back the pixels under the old region and saves the new one.
func (r *FBRenderer) Resize(width, height int) error {
	if err := r.canvas.Resize(width, height); err != nil {
		return err
	}
	if r.dev == nil {
		return nil
	}
	r.restore()
	r.capture()
	return nil
}

func (r *FBRenderer) Draw(list List) error {
	if r.dev == nil {
		return ErrNotStarted
	}
	if err := r.canvas.Draw(list); err != nil {
		return err
	}
	if r.region.Empty() {
		return nil
	}

	src := r.canvas.Image()
	if r.scale() > 1 {
		xdraw.NearestNeighbor.Scale(r.scaled, r.scaled.Bounds(), src, src.Bounds(), xdraw.Src, nil)
		src = r.scaled
	}
	draw.Draw(r.frame, r.region, r.background, r.region.Min, draw.Src)
	draw.Draw(r.frame, r.region, src, image.Point{}, draw.Over)
	blitToFB(r.dev, r.frame)
	return nil
}

func (r *FBRenderer) scale() int {
	if r.Scale < 1 {
		return 1
	}
	return r.Scale
}

// capture computes the on-screen region for the current canvas size and
// saves the framebuffer pixels beneath it.
func (r *FBRenderer) capture() {
	w, h := r.canvas.Size()
	s := r.scale()
	r.region = layout.Place(r.dev.Bounds(), r.Origin, w*s, h*s).Intersect(r.dev.Bounds())
	r.background = image.NewRGBA(r.region)
	draw.Draw(r.background, r.region, r.dev, r.region.Min, draw.Src)
	r.frame = image.NewRGBA(r.region)
	r.scaled = image.NewRGBA(image.Rect(0, 0, w*s, h*s))
}

func (r *FBRenderer) restore() {
	if r.background != nil {
		blitToFB(r.dev, r.background)
	}
}

// Helper: copy img to the framebuffer at img's own bounds, forcing opacity.
func blitToFB(dev draw.Image, img *image.RGBA) {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pixel := img.RGBAAt(x, y)
			pixel.A = 0xFF
			dev.Set(x, y, pixel)
		}
	}
}
