package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rook-computer/clockoverlay/internal/host"
	"github.com/rook-computer/clockoverlay/internal/render"
	"github.com/rook-computer/clockoverlay/internal/state"
)

type lockedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *lockedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *lockedClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

type fakeRenderer struct {
	mu       sync.Mutex
	started  bool
	stopped  bool
	sizes    [][2]int
	drawn    chan render.List
	drawErr  error
	startErr error
}

func newFakeRenderer() *fakeRenderer { return &fakeRenderer{drawn: make(chan render.List, 64)} }

func (f *fakeRenderer) Start(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = true
	return f.startErr
}

func (f *fakeRenderer) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
	return nil
}

func (f *fakeRenderer) Resize(width, height int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sizes = append(f.sizes, [2]int{width, height})
	return nil
}

func (f *fakeRenderer) Draw(list render.List) error {
	if f.drawErr != nil {
		return f.drawErr
	}
	f.drawn <- list
	return nil
}

func at(hour, minute int) time.Time {
	return time.Date(2024, 5, 1, hour, minute, 0, 0, time.Local)
}

func waitDraw(t *testing.T, r *fakeRenderer) render.List {
	t.Helper()
	select {
	case list := <-r.drawn:
		return list
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for draw")
	}
	return nil
}

func expectNoDraw(t *testing.T, r *fakeRenderer, wait time.Duration) {
	t.Helper()
	select {
	case list := <-r.drawn:
		t.Fatalf("unexpected draw of %v", list)
	case <-time.After(wait):
	}
}

func textOf(t *testing.T, list render.List) render.CenteredText {
	t.Helper()
	if len(list) != 2 {
		t.Fatalf("len(list) = %d; want 2", len(list))
	}
	text, ok := list[1].(render.CenteredText)
	if !ok {
		t.Fatalf("list[1] = %T; want render.CenteredText", list[1])
	}
	return text
}

type harness struct {
	app    *App
	clock  *lockedClock
	rend   *fakeRenderer
	events *host.ChannelSource
	done   chan error
}

func startHarness(t *testing.T, ctx context.Context) *harness {
	t.Helper()
	clock := &lockedClock{now: at(8, 59)}
	h := &harness{
		clock:  clock,
		rend:   newFakeRenderer(),
		events: host.NewChannelSource(4),
		done:   make(chan error, 1),
	}
	h.app = New(state.NewTracker(140, 54, clock), h.rend, h.events)
	h.app.Interval = 5 * time.Millisecond
	go func() { h.done <- h.app.Start(ctx) }()
	return h
}

func (h *harness) wait(t *testing.T) error {
	t.Helper()
	select {
	case err := <-h.done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("app did not stop")
	}
	return nil
}

func TestApp_DrawsOnceUntilMinuteChanges(t *testing.T) {
	ctx := context.Background()
	h := startHarness(t, ctx)

	if got := textOf(t, waitDraw(t, h.rend)).Text; got != "08:59" {
		t.Errorf("first frame = %q; want %q", got, "08:59")
	}
	expectNoDraw(t, h.rend, 50*time.Millisecond)

	h.clock.Set(at(9, 0))
	if got := textOf(t, waitDraw(t, h.rend)).Text; got != "09:00" {
		t.Errorf("frame after rollover = %q; want %q", got, "09:00")
	}
	expectNoDraw(t, h.rend, 50*time.Millisecond)

	_ = h.events.Send(ctx, host.Event{Kind: host.Close})
	if err := h.wait(t); err != nil {
		t.Errorf("Start returned %v after close; want nil", err)
	}
	h.rend.mu.Lock()
	defer h.rend.mu.Unlock()
	if !h.rend.started || !h.rend.stopped {
		t.Errorf("renderer started=%v stopped=%v; want both true", h.rend.started, h.rend.stopped)
	}
}

func TestApp_ResizeRedraws(t *testing.T) {
	ctx := context.Background()
	h := startHarness(t, ctx)
	waitDraw(t, h.rend)

	_ = h.events.Send(ctx, host.Event{Kind: host.Resize, Width: 300, Height: 90})
	text := textOf(t, waitDraw(t, h.rend))
	if text.Bounds != (render.Rect{X: 0, Y: 0, W: 300, H: 90}) {
		t.Errorf("Bounds after resize = %+v; want (0,0,300,90)", text.Bounds)
	}

	_ = h.events.Send(ctx, host.Event{Kind: host.Resize, Width: 300, Height: 90})
	waitDraw(t, h.rend)

	_ = h.events.Send(ctx, host.Event{Kind: host.Close})
	if err := h.wait(t); err != nil {
		t.Fatalf("Start returned %v; want nil", err)
	}
	h.rend.mu.Lock()
	defer h.rend.mu.Unlock()
	if len(h.rend.sizes) != 2 || h.rend.sizes[0] != [2]int{300, 90} {
		t.Errorf("renderer sizes = %v; want two resizes to 300x90", h.rend.sizes)
	}
}

func TestApp_DrawFailureIsReturned(t *testing.T) {
	boom := errors.New("device lost")
	rend := newFakeRenderer()
	rend.drawErr = boom
	a := New(state.NewTracker(140, 54, &lockedClock{now: at(1, 2)}), rend, host.NewNoopSource())

	err := a.Start(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Start = %v; want wrapped %v", err, boom)
	}
	if !strings.Contains(err.Error(), "draw frame") {
		t.Errorf("error %q does not mention draw frame", err)
	}
}

func TestApp_StartFailureIsReturned(t *testing.T) {
	boom := errors.New("no surface")
	rend := newFakeRenderer()
	rend.startErr = boom
	a := New(state.NewTracker(140, 54, nil), rend, nil)

	if err := a.Start(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Start = %v; want wrapped %v", err, boom)
	}
}

func TestApp_ContextCancelStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := startHarness(t, ctx)
	waitDraw(t, h.rend)
	cancel()
	if err := h.wait(t); err != nil {
		t.Errorf("Start = %v after cancel; want nil", err)
	}
}

func TestApp_ExitKeepsFirstError(t *testing.T) {
	h := startHarness(t, context.Background())
	waitDraw(t, h.rend)

	first := errors.New("first")
	h.app.Exit(first)
	h.app.Exit(errors.New("second"))
	if err := h.wait(t); err != first {
		t.Errorf("Start = %v; want %v", err, first)
	}
}

func TestApp_ClosedSourceKeepsTicking(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := startHarness(t, ctx)
	waitDraw(t, h.rend)

	_ = h.events.Stop()
	h.clock.Set(at(10, 30))
	if got := textOf(t, waitDraw(t, h.rend)).Text; got != "10:30" {
		t.Errorf("frame = %q; want %q", got, "10:30")
	}
	cancel()
	_ = h.wait(t)
}

func TestApp_RequiresTracker(t *testing.T) {
	if err := (&App{}).Start(context.Background()); err == nil {
		t.Error("Start without tracker = nil; want error")
	}
}

func TestFileLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	l := NewFileLogger(&buf)
	l.Infof("app", "showing %s", "09:05")
	l.Errorf("fb", "lost %d", 1)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines; want 2", len(lines))
	}
	if !strings.HasSuffix(lines[0], " [INFO] app: showing 09:05") {
		t.Errorf("info line = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], " [ERROR] fb: lost 1") {
		t.Errorf("error line = %q", lines[1])
	}
}
