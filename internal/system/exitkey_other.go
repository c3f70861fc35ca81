//go:build !linux

package system

import (
	"context"

	"github.com/rook-computer/clockoverlay/internal/host"
)

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// ExitKeySource never fires outside Linux; there is no evdev to watch.
type ExitKeySource struct {
	Logger logger
	ch     chan host.Event
}

func NewExitKeySource(l logger) *ExitKeySource {
	return &ExitKeySource{Logger: l, ch: make(chan host.Event)}
}

func (s *ExitKeySource) Start(ctx context.Context) error { return nil }
func (s *ExitKeySource) Stop() error                     { return nil }
func (s *ExitKeySource) Events() <-chan host.Event       { return s.ch }
