package host

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SignalSource turns SIGINT and SIGTERM into a Close event.
type SignalSource struct {
	ch   chan Event
	sigs chan os.Signal
}

func NewSignalSource() *SignalSource {
	return &SignalSource{ch: make(chan Event, 1), sigs: make(chan os.Signal, 1)}
}

func (s *SignalSource) Start(ctx context.Context) error {
	signal.Notify(s.sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-ctx.Done():
		case <-s.sigs:
			s.ch <- Event{Kind: Close}
		}
	}()
	return nil
}

func (s *SignalSource) Stop() error {
	signal.Stop(s.sigs)
	return nil
}

func (s *SignalSource) Events() <-chan Event { return s.ch }
