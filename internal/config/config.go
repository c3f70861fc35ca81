package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rook-computer/clockoverlay/internal/render"
)

const (
	EnvBackend  = "CLOCKOVERLAY_BACKEND"
	EnvX        = "CLOCKOVERLAY_X"
	EnvY        = "CLOCKOVERLAY_Y"
	EnvWidth    = "CLOCKOVERLAY_WIDTH"
	EnvHeight   = "CLOCKOVERLAY_HEIGHT"
	EnvInterval = "CLOCKOVERLAY_INTERVAL"
	EnvOutDir   = "CLOCKOVERLAY_OUT"
	EnvDevice   = "CLOCKOVERLAY_FB"
	EnvStdioLog = "CLOCKOVERLAY_STDIO_LOG"
)

// Backend names accepted by -backend and CLOCKOVERLAY_BACKEND.
const (
	BackendAuto   = "auto"
	BackendWindow = "window"
	BackendFB     = "fb"
	BackendTerm   = "term"
	BackendPNG    = "png"
)

// OverlayConfig selects where and how the clock is drawn. Position and size
// are in pixels for the window and framebuffer backends; the terminal
// backend uses the whole screen.
type OverlayConfig struct {
	Backend  string
	X, Y     int
	Width    int
	Height   int
	Interval time.Duration
	OutDir   string
	Device   string
}

func Default() OverlayConfig {
	return OverlayConfig{
		Backend:  BackendAuto,
		X:        render.DefaultX,
		Y:        render.DefaultY,
		Width:    render.DefaultWidth,
		Height:   render.DefaultHeight,
		Interval: time.Second,
		OutDir:   "./frames",
		Device:   render.DefaultFBDevice,
	}
}

// DefaultOverlayConfigFromEnv starts from Default and applies any
// CLOCKOVERLAY_* variables that are set.
func DefaultOverlayConfigFromEnv() (OverlayConfig, error) {
	cfg := Default()
	if raw := os.Getenv(EnvBackend); raw != "" {
		cfg.Backend = raw
	}
	if raw := os.Getenv(EnvOutDir); raw != "" {
		cfg.OutDir = raw
	}
	if raw := os.Getenv(EnvDevice); raw != "" {
		cfg.Device = raw
	}
	for _, v := range []struct {
		name string
		dst  *int
	}{
		{EnvX, &cfg.X},
		{EnvY, &cfg.Y},
		{EnvWidth, &cfg.Width},
		{EnvHeight, &cfg.Height},
	} {
		raw := os.Getenv(v.name)
		if raw == "" {
			continue
		}
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return OverlayConfig{}, fmt.Errorf("%s must be an integer (got %q): %w", v.name, raw, err)
		}
		*v.dst = parsed
	}
	if raw := os.Getenv(EnvInterval); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return OverlayConfig{}, fmt.Errorf("%s must be a duration (got %q): %w", EnvInterval, raw, err)
		}
		cfg.Interval = parsed
	}
	return cfg, cfg.Validate()
}

func (c OverlayConfig) Validate() error {
	switch c.Backend {
	case BackendAuto, BackendWindow, BackendFB, BackendTerm, BackendPNG:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("overlay size must be positive (got %dx%d)", c.Width, c.Height)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive (got %s)", c.Interval)
	}
	return nil
}
