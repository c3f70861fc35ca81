package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"runtime"

	"github.com/gdamore/tcell/v2"

	"github.com/rook-computer/clockoverlay/internal/app"
	"github.com/rook-computer/clockoverlay/internal/config"
	"github.com/rook-computer/clockoverlay/internal/host"
	"github.com/rook-computer/clockoverlay/internal/platform"
	"github.com/rook-computer/clockoverlay/internal/render"
	"github.com/rook-computer/clockoverlay/internal/state"
	"github.com/rook-computer/clockoverlay/internal/system"
)

func main() {
	os.Exit(run())
}

func run() int {
	defaults, err := config.DefaultOverlayConfigFromEnv()
	if err != nil {
		fmt.Println("config error:", err)
		return 2
	}

	backend := flag.String("backend", defaults.Backend, "surface to draw on: auto | window | fb | term | png; also configurable via "+config.EnvBackend)
	x := flag.Int("x", defaults.X, "overlay left edge in pixels; also configurable via "+config.EnvX)
	y := flag.Int("y", defaults.Y, "overlay top edge in pixels; also configurable via "+config.EnvY)
	outDir := flag.String("out", defaults.OutDir, "frame directory for the png backend; also configurable via "+config.EnvOutDir)
	device := flag.String("fb", defaults.Device, "framebuffer device for the fb backend; also configurable via "+config.EnvDevice)
	debug := flag.Bool("debug", false, "enable debug logging to ./clockoverlay-debug.log")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via "+config.EnvStdioLog)
	flag.Parse()

	cfg := defaults
	cfg.Backend, cfg.X, cfg.Y, cfg.OutDir, cfg.Device = *backend, *x, *y, *outDir, *device
	if err := cfg.Validate(); err != nil {
		fmt.Println("config error:", err)
		return 2
	}

	// Best-effort: the fb backend leaves the console in graphics mode, so
	// panics are only readable if they end up in a file.
	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv(config.EnvStdioLog)
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		f, err := os.OpenFile("./clockoverlay-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	cfg.Backend = selectBackend(cfg.Backend, cfg.Device, runtime.GOOS, fileExists)
	logger.Infof("main", "backend=%s pos=(%d,%d) size=%dx%d", cfg.Backend, cfg.X, cfg.Y, cfg.Width, cfg.Height)

	renderer, events, err := buildBackend(cfg, logger)
	if err != nil {
		fmt.Println("backend error:", err)
		return 1
	}

	tracker := state.NewTracker(float64(cfg.Width), float64(cfg.Height), state.SystemClock{})
	a := app.New(tracker, renderer, host.Merge(events, host.NewSignalSource()))
	a.Logger = logger
	a.Interval = cfg.Interval

	if err := a.Start(context.Background()); err != nil {
		fmt.Println("clockoverlay error:", err)
		return 1
	}
	return 0
}

// selectBackend resolves "auto": the native window on Windows, the
// configured framebuffer device on Linux when it exists, the terminal
// everywhere else.
func selectBackend(name, device, goos string, exists func(string) bool) string {
	if name != config.BackendAuto {
		return name
	}
	switch {
	case goos == "windows":
		return config.BackendWindow
	case goos == "linux" && exists(device):
		return config.BackendFB
	default:
		return config.BackendTerm
	}
}

func buildBackend(cfg config.OverlayConfig, logger app.Logger) (render.Renderer, host.Source, error) {
	switch cfg.Backend {
	case config.BackendWindow:
		win, err := platform.CreateOverlayWindow(platform.Options{X: cfg.X, Y: cfg.Y, Width: cfg.Width, Height: cfg.Height})
		if err != nil {
			return nil, nil, err
		}
		r := platform.NewWindowRenderer(win)
		r.Logger = logger
		return r, win, nil
	case config.BackendFB:
		r := render.NewFBRenderer(cfg.Width, cfg.Height)
		r.Path = cfg.Device
		r.Origin = image.Pt(cfg.X, cfg.Y)
		r.Logger = logger
		return r, system.NewExitKeySource(logger), nil
	case config.BackendTerm:
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, nil, fmt.Errorf("create terminal screen: %w", err)
		}
		r := render.NewTermRenderer(screen)
		r.Logger = logger
		return r, host.NewTermSource(screen), nil
	case config.BackendPNG:
		r := render.NewPNGRenderer(cfg.OutDir, cfg.Width, cfg.Height)
		r.Logger = logger
		return r, host.NewNoopSource(), nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
