package render

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
)

// PNGRenderer writes every drawn frame to Dir as frame-NNNN.png. It is the
// headless surface used by the simulator.
type PNGRenderer struct {
	Dir    string
	Logger Logger

	canvas *Canvas
	frames int
}

func NewPNGRenderer(dir string, width, height int) *PNGRenderer {
	return &PNGRenderer{Dir: dir, canvas: NewCanvas(width, height)}
}

func (r *PNGRenderer) Start(ctx context.Context) error {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return fmt.Errorf("create frame directory: %w", err)
	}
	r.canvas.Logger = r.Logger
	return r.canvas.Start(ctx)
}

func (r *PNGRenderer) Stop() error { return r.canvas.Stop() }

func (r *PNGRenderer) Resize(width, height int) error { return r.canvas.Resize(width, height) }

func (r *PNGRenderer) Draw(list List) error {
	if err := r.canvas.Draw(list); err != nil {
		return err
	}
	path := filepath.Join(r.Dir, fmt.Sprintf("frame-%04d.png", r.frames))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, r.canvas.Image()); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	r.frames++
	if r.Logger != nil {
		r.Logger.Infof("png", "wrote %s", path)
	}
	return nil
}

// Frames returns how many frames have been written.
func (r *PNGRenderer) Frames() int { return r.frames }
