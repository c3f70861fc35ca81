// Package platform creates the native overlay window and publishes rendered
// frames to it. The window is borderless, always on top, transparent,
// click-through and kept out of the taskbar and Alt-Tab list. Those flags are
// applied once at startup by ApplyOverlayStyles; nothing about them changes
// while the clock runs.
package platform

import (
	"image"

	"github.com/rook-computer/clockoverlay/internal/render"
)

// Options describes the overlay window. Zero sizes fall back to the render
// defaults.
type Options struct {
	Title  string
	X, Y   int
	Width  int
	Height int
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "clockoverlay"
	}
	if o.Width <= 0 {
		o.Width = render.DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = render.DefaultHeight
	}
	return o
}

// toBGRA copies premultiplied RGBA pixels into dst as premultiplied BGRA,
// the layout a 32-bit top-down DIB expects. dst must hold 4*w*h bytes.
func toBGRA(dst []byte, img *image.RGBA) {
	b := img.Bounds()
	w := b.Dx()
	i := 0
	for y := 0; y < b.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+4*w]
		for x := 0; x < len(row); x += 4 {
			dst[i+0] = row[x+2]
			dst[i+1] = row[x+1]
			dst[i+2] = row[x+0]
			dst[i+3] = row[x+3]
			i += 4
		}
	}
}
