//go:build !windows

package platform

import (
	"context"
	"errors"
	"fmt"

	"github.com/rook-computer/clockoverlay/internal/host"
	"github.com/rook-computer/clockoverlay/internal/render"
)

var errNoWindow = fmt.Errorf("native overlay window: %w", errors.ErrUnsupported)

// Window is only available on Windows.
type Window struct{}

func CreateOverlayWindow(opts Options) (*Window, error) { return nil, errNoWindow }

func ApplyOverlayStyles(hwnd uintptr) error { return errNoWindow }

func (w *Window) Handle() uintptr                 { return 0 }
func (w *Window) Start(ctx context.Context) error { return errNoWindow }
func (w *Window) Stop() error                     { return nil }
func (w *Window) Events() <-chan host.Event       { return nil }
func (w *Window) Close()                          {}

type WindowRenderer struct {
	Window *Window
	Logger render.Logger
}

func NewWindowRenderer(w *Window) *WindowRenderer { return &WindowRenderer{Window: w} }

func (r *WindowRenderer) Start(ctx context.Context) error { return errNoWindow }
func (r *WindowRenderer) Stop() error                     { return nil }
func (r *WindowRenderer) Resize(width, height int) error  { return errNoWindow }
func (r *WindowRenderer) Draw(list render.List) error     { return errNoWindow }
