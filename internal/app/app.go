package app

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rook-computer/clockoverlay/internal/host"
	"github.com/rook-computer/clockoverlay/internal/render"
	"github.com/rook-computer/clockoverlay/internal/state"
)

// DefaultInterval is how often the tracker is polled. Minute granularity is
// displayed, so once per second is plenty.
const DefaultInterval = time.Second

// App is the host loop: it owns the tracker and the renderer and only asks
// for a redraw when the tracker reports dirty state.
type App struct {
	Tracker  *state.Tracker
	Render   render.Renderer
	Events   host.Source
	Logger   Logger
	Interval time.Duration

	exitOnce atomic.Bool
	exitCh   chan error
}

// New returns an App polling at DefaultInterval with a NoopLogger.
func New(tracker *state.Tracker, renderer render.Renderer, events host.Source) *App {
	return &App{Tracker: tracker, Render: renderer, Events: events, Logger: NoopLogger{}, Interval: DefaultInterval, exitCh: make(chan error, 1)}
}

// Exit requests the loop to stop. Only the first request is kept.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// Start runs until a Close event, an Exit request, ctx cancellation or a
// renderer failure. Close, Exit(nil) and ctx cancellation return nil.
func (app *App) Start(ctx context.Context) error {
	if app.Tracker == nil {
		return errors.New("no tracker configured")
	}
	if app.Render == nil {
		app.Render = render.NoopRenderer{}
	}
	if app.Events == nil {
		app.Events = host.NewNoopSource()
	}
	if app.Logger == nil {
		app.Logger = NoopLogger{}
	}
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	app.exitOnce.Store(false)
	interval := app.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	if err := app.Render.Start(ctx); err != nil {
		app.Logger.Errorf("app", "renderer start error: %v", err)
		return fmt.Errorf("start renderer: %w", err)
	}
	defer app.Render.Stop()

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := app.Events.Start(loopCtx); err != nil {
		return fmt.Errorf("start events: %w", err)
	}
	defer func() {
		cancel()
		_ = app.Events.Stop()
	}()

	// The tracker is dirty from construction, so the first frame goes out
	// without waiting for the ticker.
	if err := app.redrawIfDirty(); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	events := app.Events.Events()
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-app.exitCh:
			return err
		case ev, ok := <-events:
			if !ok {
				// Source finished; keep ticking on the timer alone.
				events = nil
				continue
			}
			switch ev.Kind {
			case host.Close:
				app.Logger.Infof("app", "close requested")
				return nil
			case host.Resize:
				if err := app.resize(ev.Width, ev.Height); err != nil {
					return err
				}
			}
		case <-ticker.C:
		}
		if err := app.redrawIfDirty(); err != nil {
			return err
		}
	}
}

func (app *App) resize(width, height int) error {
	app.Logger.Infof("app", "resize to %dx%d", width, height)
	app.Tracker.Resize(float64(width), float64(height))
	if err := app.Render.Resize(width, height); err != nil {
		return fmt.Errorf("resize renderer: %w", err)
	}
	return nil
}

func (app *App) redrawIfDirty() error {
	if !app.Tracker.Tick() {
		return nil
	}
	if err := app.Render.Draw(app.Tracker.Instructions()); err != nil {
		app.Logger.Errorf("app", "draw failed: %v", err)
		return fmt.Errorf("draw frame: %w", err)
	}
	app.Logger.Infof("app", "redraw done, showing %s", app.Tracker.State())
	return nil
}
