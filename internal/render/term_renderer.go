package render

import (
	"context"
	"fmt"
	"image"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rook-computer/clockoverlay/internal/render/layout"
)

// TermRenderer draws instruction lists onto a terminal, one unit per cell.
// Terminals cannot outline glyphs, so CenteredText uses the fill color as the
// foreground and ignores stroke and sub-cell glyph spacing.
type TermRenderer struct {
	Screen tcell.Screen
	Logger Logger

	started bool
}

func NewTermRenderer(screen tcell.Screen) *TermRenderer {
	return &TermRenderer{Screen: screen}
}

func (r *TermRenderer) Start(ctx context.Context) error {
	if r.Screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("create terminal screen: %w", err)
		}
		r.Screen = screen
	}
	if err := r.Screen.Init(); err != nil {
		return fmt.Errorf("init terminal screen: %w", err)
	}
	r.Screen.HideCursor()
	r.started = true
	if r.Logger != nil {
		w, h := r.Screen.Size()
		r.Logger.Infof("term", "terminal ready, size=%dx%d", w, h)
	}
	return nil
}

func (r *TermRenderer) Stop() error {
	if r.started {
		r.Screen.Fini()
		r.started = false
	}
	return nil
}

// Resize only resynchronises the terminal; cell geometry is owned by the
// terminal itself.
func (r *TermRenderer) Resize(width, height int) error {
	if r.started {
		r.Screen.Sync()
	}
	return nil
}

func (r *TermRenderer) Draw(list List) error {
	if !r.started {
		return ErrNotStarted
	}
	for i, ins := range list {
		switch ins := ins.(type) {
		case Clear:
			r.clear(ins.Color)
		case CenteredText:
			r.drawCenteredText(ins)
		default:
			return fmt.Errorf("instruction %d: unsupported %T", i, ins)
		}
	}
	r.Screen.Show()
	return nil
}

func (r *TermRenderer) clear(c Color) {
	if c.Alpha <= 0 {
		r.Screen.Clear()
		return
	}
	r.Screen.Fill(' ', tcell.StyleDefault.Background(termColor(c)))
}

func (r *TermRenderer) drawCenteredText(t CenteredText) {
	style := tcell.StyleDefault.Foreground(termColor(t.Fill)).Bold(true)
	box := layout.Center(t.Bounds.Image(), runewidth.StringWidth(t.Text), 1)
	w, h := r.Screen.Size()
	screen := image.Rect(0, 0, w, h)

	x := box.Min.X
	for _, ch := range t.Text {
		if image.Pt(x, box.Min.Y).In(screen) {
			r.Screen.SetContent(x, box.Min.Y, ch, nil, style)
		}
		x += runewidth.RuneWidth(ch)
	}
}

func termColor(c Color) tcell.Color {
	n := c.NRGBA()
	return tcell.NewRGBColor(int32(n.R), int32(n.G), int32(n.B))
}
