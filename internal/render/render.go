package render

import (
	"context"
	"errors"
)

// ErrNotStarted is returned by Draw and Resize when Start has not run.
var ErrNotStarted = errors.New("renderer not started")

// Renderer consumes instruction lists against a surface sized to the overlay.
// Draw is synchronous and executes the list strictly in order; buffering is
// the renderer's own business.
type Renderer interface {
	Start(ctx context.Context) error
	Stop() error
	Resize(width, height int) error
	Draw(list List) error
}

// Logger is the subset of app.Logger the renderers use.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// NoopRenderer accepts every call and draws nothing.
type NoopRenderer struct{}

func (NoopRenderer) Start(ctx context.Context) error { return nil }
func (NoopRenderer) Stop() error                     { return nil }
func (NoopRenderer) Resize(width, height int) error  { return nil }
func (NoopRenderer) Draw(list List) error            { return nil }
