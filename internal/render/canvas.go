package render

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/golang/freetype/raster"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Canvas rasterizes instruction lists onto an offscreen RGBA image. The
// surface-specific renderers draw through a Canvas and then publish its
// pixels.
type Canvas struct {
	width, height int

	img     *image.RGBA
	ttFont  *truetype.Font
	otFont  *opentype.Font
	faces   map[float64]font.Face
	glyphs  truetype.GlyphBuf
	rast    *raster.Rasterizer
	started bool

	Logger Logger
}

func NewCanvas(width, height int) *Canvas {
	return &Canvas{width: width, height: height}
}

// Start parses the outline font and allocates the surface. A font that
// cannot be parsed is returned as an error; there is no fallback face.
func (c *Canvas) Start(ctx context.Context) error {
	tt, err := truetype.Parse(FontTTF)
	if err != nil {
		return fmt.Errorf("parse truetype font: %w", err)
	}
	ot, err := opentype.Parse(FontTTF)
	if err != nil {
		return fmt.Errorf("parse opentype font: %w", err)
	}
	c.ttFont = tt
	c.otFont = ot
	c.faces = make(map[float64]font.Face)
	c.started = true
	if err := c.Resize(c.width, c.height); err != nil {
		return err
	}
	if c.Logger != nil {
		c.Logger.Infof("canvas", "font parsed, surface=%dx%d", c.width, c.height)
	}
	return nil
}

func (c *Canvas) Stop() error {
	for size, face := range c.faces {
		_ = face.Close()
		delete(c.faces, size)
	}
	c.started = false
	return nil
}

// Resize reallocates the surface. Existing pixels are discarded; the next
// Draw repaints everything.
func (c *Canvas) Resize(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	c.width, c.height = width, height
	if !c.started {
		return nil
	}
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
	c.rast = raster.NewRasterizer(width, height)
	c.rast.UseNonZeroWinding = true
	return nil
}

// Image returns the current surface. It is replaced on Resize.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Size returns the surface size in pixels.
func (c *Canvas) Size() (width int, height int) { return c.width, c.height }

func (c *Canvas) Draw(list List) error {
	if !c.started {
		return ErrNotStarted
	}
	for i, ins := range list {
		switch ins := ins.(type) {
		case Clear:
			c.clear(ins.Color)
		case CenteredText:
			if err := c.drawCenteredText(ins); err != nil {
				return fmt.Errorf("instruction %d: %w", i, err)
			}
		default:
			return fmt.Errorf("instruction %d: unsupported %T", i, ins)
		}
	}
	return nil
}

func (c *Canvas) clear(col Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col.NRGBA()), image.Point{}, draw.Src)
}

// face returns a metrics face for size pixels per em, cached per size.
func (c *Canvas) face(size float64) (font.Face, error) {
	if face, ok := c.faces[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(c.otFont, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, fmt.Errorf("create font face at %vpx: %w", size, err)
	}
	c.faces[size] = face
	return face, nil
}

type placedGlyph struct {
	index truetype.Index
	x     fixed.Int26_6
}

func (c *Canvas) drawCenteredText(t CenteredText) error {
	if t.FontSize <= 0 {
		return fmt.Errorf("font size must be positive, got %v", t.FontSize)
	}
	if c.img.Bounds().Empty() || t.Text == "" {
		return nil
	}
	face, err := c.face(t.FontSize)
	if err != nil {
		return err
	}
	metrics := face.Metrics()
	scale := toFixed(t.FontSize)

	// Lay out on natural advances; spacing does not change the measured width.
	glyphs := make([]placedGlyph, 0, len(t.Text))
	var pen fixed.Int26_6
	var prev truetype.Index
	for i, r := range []rune(t.Text) {
		index := c.ttFont.Index(r)
		if i > 0 {
			pen += c.ttFont.Kern(scale, prev, index)
		}
		glyphs = append(glyphs, placedGlyph{index: index, x: pen})
		pen += c.ttFont.HMetric(scale, index).AdvanceWidth
		prev = index
	}

	lineHeight := fromFixed(metrics.Ascent + metrics.Descent)
	originX := t.Bounds.X + (t.Bounds.W-fromFixed(pen))/2
	baseline := t.Bounds.Y + (t.Bounds.H-lineHeight)/2 + fromFixed(metrics.Ascent)

	n := float64(len(glyphs))
	for i, g := range glyphs {
		offset := float64(i)*t.GlyphSpacing - (n-1)*t.GlyphSpacing/2
		if err := c.glyphs.Load(c.ttFont, scale, g.index, font.HintingNone); err != nil {
			return fmt.Errorf("load glyph %d: %w", g.index, err)
		}
		path := outlinePath(&c.glyphs, toFixed(originX+fromFixed(g.x)+offset), toFixed(baseline))
		c.fillAndStroke(path, t)
	}
	return nil
}

func (c *Canvas) fillAndStroke(path raster.Path, t CenteredText) {
	painter := raster.NewRGBAPainter(c.img)

	c.rast.Clear()
	c.rast.AddPath(path)
	painter.SetColor(t.Fill.NRGBA())
	c.rast.Rasterize(painter)

	if t.StrokeWidth <= 0 || t.Stroke.Alpha <= 0 {
		return
	}
	c.rast.Clear()
	raster.Stroke(c.rast, path, toFixed(t.StrokeWidth), raster.RoundCapper, raster.RoundJoiner)
	painter.SetColor(t.Stroke.NRGBA())
	c.rast.Rasterize(painter)
}

// outlinePath converts the loaded glyph's contours into a path with the
// glyph origin at (dx, dy). Font space is y-up, the surface is y-down.
func outlinePath(g *truetype.GlyphBuf, dx, dy fixed.Int26_6) raster.Path {
	var path raster.Path
	start := 0
	for _, end := range g.Ends {
		appendContour(&path, g.Points[start:end], dx, dy)
		start = end
	}
	return path
}

// appendContour walks one closed contour of on-curve and off-curve (quadratic
// control) points. Two consecutive off-curve points imply an on-curve point
// at their midpoint.
func appendContour(path *raster.Path, ps []truetype.Point, dx, dy fixed.Int26_6) {
	if len(ps) == 0 {
		return
	}
	pt := func(p truetype.Point) fixed.Point26_6 {
		return fixed.Point26_6{X: dx + p.X, Y: dy - p.Y}
	}
	onCurve := func(p truetype.Point) bool { return p.Flags&0x01 != 0 }

	start := pt(ps[0])
	var others []truetype.Point
	if onCurve(ps[0]) {
		others = ps[1:]
	} else {
		last := pt(ps[len(ps)-1])
		if onCurve(ps[len(ps)-1]) {
			start = last
			others = ps[:len(ps)-1]
		} else {
			start = midpoint(start, last)
			others = ps
		}
	}

	path.Start(start)
	q0, on0 := start, true
	for _, p := range others {
		q, on := pt(p), onCurve(p)
		if on {
			if on0 {
				path.Add1(q)
			} else {
				path.Add2(q0, q)
			}
		} else if !on0 {
			path.Add2(q0, midpoint(q0, q))
		}
		q0, on0 = q, on
	}
	if on0 {
		path.Add1(start)
	} else {
		path.Add2(q0, start)
	}
}

func midpoint(a, b fixed.Point26_6) fixed.Point26_6 {
	return fixed.Point26_6{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

func toFixed(v float64) fixed.Int26_6   { return fixed.Int26_6(math.Round(v * 64)) }
func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64 }
