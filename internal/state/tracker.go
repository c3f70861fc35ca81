package state

import (
	"slices"

	"github.com/rook-computer/clockoverlay/internal/render"
)

// Fixed text styling for the clock face.
const (
	FontSize     = 54.0
	GlyphSpacing = 1.0
	StrokeWidth  = 1.0
)

var (
	// Alpha 0 erases the surface instead of painting it black.
	ClearColor  = render.Color{RGB: 0x000000, Alpha: 0}
	FillColor   = render.Color{RGB: 0xFFFFFF, Alpha: 1}
	StrokeColor = render.Color{RGB: 0x000000, Alpha: 1}
)

// Tracker owns the viewport, the last shown DisplayState and the instruction
// list derived from them. It is not safe for concurrent use; the host loop
// is its only caller.
type Tracker struct {
	clock    Clock
	viewport Viewport
	shown    DisplayState
	dirty    bool
	list     render.List
}

// NewTracker reads the clock, marks the display dirty and builds the first
// instruction list. A nil clock means SystemClock.
func NewTracker(width, height float64, clock Clock) *Tracker {
	if clock == nil {
		clock = SystemClock{}
	}
	t := &Tracker{
		clock:    clock,
		viewport: Viewport{Width: width, Height: height},
		shown:    StateAt(clock.Now()),
	}
	t.invalidate()
	return t
}

// Resize stores the new viewport and always invalidates, even for an
// unchanged size, because text bounds follow the viewport.
func (t *Tracker) Resize(width, height float64) {
	t.viewport = Viewport{Width: width, Height: height}
	t.invalidate()
}

// Tick re-reads the clock and invalidates when the minute changed. It
// returns whether a redraw is needed and clears that flag, so a second call
// without an intervening change returns false.
func (t *Tracker) Tick() bool {
	if next := StateAt(t.clock.Now()); next != t.shown {
		t.shown = next
		t.invalidate()
	}
	dirty := t.dirty
	t.dirty = false
	return dirty
}

// Instructions returns a copy of the most recently built list.
func (t *Tracker) Instructions() render.List {
	return slices.Clone(t.list)
}

// State returns the time currently encoded in the instruction list.
func (t *Tracker) State() DisplayState { return t.shown }

// Viewport returns the size passed to the last Resize or to NewTracker.
func (t *Tracker) Viewport() Viewport { return t.viewport }

func (t *Tracker) invalidate() {
	t.dirty = true
	t.list = render.List{
		render.Clear{Color: ClearColor},
		render.CenteredText{
			Text:         t.shown.String(),
			Bounds:       render.Rect{X: 0, Y: 0, W: t.viewport.Width, H: t.viewport.Height},
			FontSize:     FontSize,
			GlyphSpacing: GlyphSpacing,
			StrokeWidth:  StrokeWidth,
			Fill:         FillColor,
			Stroke:       StrokeColor,
		},
	}
}
