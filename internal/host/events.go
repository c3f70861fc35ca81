package host

import (
	"context"
	"errors"
	"sync"
)

type Kind string

const (
	Resize Kind = "resize"
	Close  Kind = "close"
)

// Event is an external signal that wakes the host loop before the next tick.
// Width and Height are set for Resize.
type Event struct {
	Kind   Kind
	Width  int
	Height int
}

type Source interface {
	Start(ctx context.Context) error
	Stop() error
	Events() <-chan Event
}

// ErrSourceStopped is returned by Send after Stop.
var ErrSourceStopped = errors.New("event source stopped")

// ChannelSource forwards whatever is passed to Send. Stop closes the event
// channel; sends after that return ErrSourceStopped.
type ChannelSource struct {
	ch   chan Event
	done chan struct{}
	once sync.Once

	mu     sync.Mutex
	closed bool
}

func NewChannelSource(buffer int) *ChannelSource {
	return &ChannelSource{ch: make(chan Event, buffer), done: make(chan struct{})}
}

func (c *ChannelSource) Start(ctx context.Context) error { return nil }
func (c *ChannelSource) Events() <-chan Event            { return c.ch }

func (c *ChannelSource) Stop() error {
	c.once.Do(func() {
		// Wake a blocked Send first so it gives up the lock.
		close(c.done)
		c.mu.Lock()
		c.closed = true
		close(c.ch)
		c.mu.Unlock()
	})
	return nil
}

// Send blocks until the event is buffered, ctx is done or the source is
// stopped.
func (c *ChannelSource) Send(ctx context.Context, ev Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrSourceStopped
	}
	select {
	case c.ch <- ev:
		return nil
	case <-c.done:
		return ErrSourceStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NoopSource never emits.
type NoopSource struct{ ch chan Event }

func NewNoopSource() *NoopSource { return &NoopSource{ch: make(chan Event)} }

func (n *NoopSource) Start(ctx context.Context) error { return nil }
func (n *NoopSource) Stop() error                     { return nil }
func (n *NoopSource) Events() <-chan Event            { return n.ch }
