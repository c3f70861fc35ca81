package render

import (
	"image"
	"image/color"
	"math"
)

// Color is a packed 0xRRGGBB value plus a separate alpha in [0,1].
type Color struct {
	RGB   uint32
	Alpha float64
}

// NRGBA converts c to a non-premultiplied color. Alpha is clamped to [0,1].
func (c Color) NRGBA() color.NRGBA {
	a := c.Alpha
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return color.NRGBA{
		R: uint8(c.RGB >> 16),
		G: uint8(c.RGB >> 8),
		B: uint8(c.RGB),
		A: uint8(math.Round(a * 255)),
	}
}

// Rect is a rectangle in logical units: origin plus width and height.
type Rect struct {
	X, Y, W, H float64
}

// Image rounds r to whole pixels.
func (r Rect) Image() image.Rectangle {
	x0 := int(math.Round(r.X))
	y0 := int(math.Round(r.Y))
	return image.Rect(x0, y0, x0+int(math.Round(r.W)), y0+int(math.Round(r.H)))
}

// Instruction is one primitive drawing operation. The set is closed:
// Clear and CenteredText are the only implementations.
type Instruction interface {
	instruction()
}

// Clear replaces the whole surface with Color. An Alpha of 0 erases the
// surface to transparent rather than painting it.
type Clear struct {
	Color Color
}

// CenteredText draws Text centered both ways inside Bounds, each glyph filled
// with Fill and outlined with Stroke at StrokeWidth. GlyphSpacing spreads the
// glyphs symmetrically around their natural positions.
type CenteredText struct {
	Text         string
	Bounds       Rect
	FontSize     float64
	GlyphSpacing float64
	StrokeWidth  float64
	Fill         Color
	Stroke       Color
}

func (Clear) instruction()        {}
func (CenteredText) instruction() {}

// List is an ordered sequence of instructions, executed front to back.
type List []Instruction
