package host

import (
	"context"

	"github.com/gdamore/tcell/v2"
)

// TermSource reports terminal resizes and treats Esc, q and Ctrl-C as a close
// request. The screen must be initialised before Start; polling ends when the
// screen is finalised.
type TermSource struct {
	Screen tcell.Screen
	ch     chan Event
}

func NewTermSource(screen tcell.Screen) *TermSource {
	return &TermSource{Screen: screen, ch: make(chan Event, 4)}
}

func (s *TermSource) Start(ctx context.Context) error {
	go func() {
		for {
			ev := s.Screen.PollEvent()
			if ev == nil {
				return
			}
			out, ok := translateTermEvent(s.Screen, ev)
			if !ok {
				continue
			}
			select {
			case s.ch <- out:
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

func (s *TermSource) Stop() error { return nil }

func (s *TermSource) Events() <-chan Event { return s.ch }

func translateTermEvent(screen tcell.Screen, ev tcell.Event) (Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := screen.Size()
		return Event{Kind: Resize, Width: w, Height: h}, true
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
			return Event{Kind: Close}, true
		}
	}
	return Event{}, false
}
