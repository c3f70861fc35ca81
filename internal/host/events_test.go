package host

import (
	"context"
	"errors"
	"testing"
	"time"
)

func receive(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		if !ok {
			t.Fatal("channel closed; want event")
		}
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

func TestChannelSource_SendAndStop(t *testing.T) {
	src := NewChannelSource(1)
	ctx := context.Background()
	if err := src.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if err := src.Send(ctx, Event{Kind: Resize, Width: 200, Height: 80}); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	ev := receive(t, src.Events())
	if ev.Kind != Resize || ev.Width != 200 || ev.Height != 80 {
		t.Errorf("event = %+v; want resize 200x80", ev)
	}

	_ = src.Stop()
	_ = src.Stop()
	if _, ok := <-src.Events(); ok {
		t.Error("channel open after Stop; want closed")
	}
}

func TestChannelSource_SendHonoursContext(t *testing.T) {
	src := NewChannelSource(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := src.Send(ctx, Event{Kind: Close}); err != context.Canceled {
		t.Errorf("Send on cancelled ctx = %v; want context.Canceled", err)
	}
}

func TestChannelSource_SendAfterStop(t *testing.T) {
	src := NewChannelSource(1)
	_ = src.Stop()
	if err := src.Send(context.Background(), Event{Kind: Close}); !errors.Is(err, ErrSourceStopped) {
		t.Errorf("Send after Stop = %v; want ErrSourceStopped", err)
	}
}

func TestChannelSource_StopReleasesBlockedSend(t *testing.T) {
	src := NewChannelSource(0)
	errc := make(chan error, 1)
	go func() { errc <- src.Send(context.Background(), Event{Kind: Close}) }()

	time.Sleep(10 * time.Millisecond)
	_ = src.Stop()

	select {
	case err := <-errc:
		if !errors.Is(err, ErrSourceStopped) {
			t.Errorf("blocked Send = %v; want ErrSourceStopped", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Send still blocked after Stop")
	}
}

func TestMerge_ForwardsFromAllSources(t *testing.T) {
	a := NewChannelSource(1)
	b := NewChannelSource(1)
	m := Merge(a, b, NewNoopSource())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := m.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer m.Stop()

	_ = a.Send(ctx, Event{Kind: Resize, Width: 1, Height: 2})
	first := receive(t, m.Events())
	_ = b.Send(ctx, Event{Kind: Close})
	second := receive(t, m.Events())

	if first.Kind != Resize || second.Kind != Close {
		t.Errorf("events = %v, %v; want resize then close", first.Kind, second.Kind)
	}
}

func TestMerge_StopClosesOutput(t *testing.T) {
	m := Merge(NewChannelSource(0), NewNoopSource())
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	_ = m.Stop()

	select {
	case _, ok := <-m.Events():
		if ok {
			t.Error("received event after Stop; want closed channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("merged channel not closed after Stop")
	}
}
