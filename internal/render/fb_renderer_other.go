//go:build !linux

package render

import (
	"context"
	"errors"
	"fmt"
	"image"
)

// FBRenderer is only available on Linux.
type FBRenderer struct {
	Path    string
	Origin  image.Point
	Scale   int
	Logger  Logger
	Console bool
}

func NewFBRenderer(width, height int) *FBRenderer { return &FBRenderer{} }

func (r *FBRenderer) Start(ctx context.Context) error {
	return fmt.Errorf("framebuffer renderer: %w", errors.ErrUnsupported)
}
func (r *FBRenderer) Stop() error                    { return nil }
func (r *FBRenderer) Resize(width, height int) error { return nil }
func (r *FBRenderer) Draw(list List) error           { return ErrNotStarted }
