package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rook-computer/clockoverlay/internal/app"
	"github.com/rook-computer/clockoverlay/internal/config"
	"github.com/rook-computer/clockoverlay/internal/host"
	"github.com/rook-computer/clockoverlay/internal/render"
	"github.com/rook-computer/clockoverlay/internal/state"
)

func main() {
	defaults, err := config.DefaultOverlayConfigFromEnv()
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	start := flag.String("start", "08:59:59", "simulated start time, HH:MM:SS")
	step := flag.Duration("step", time.Second, "simulated time added per tick")
	ticks := flag.Int("ticks", 3, "number of ticks to run before exiting")
	interval := flag.Duration("interval", 10*time.Millisecond, "real time between ticks")
	outDir := flag.String("out", defaults.OutDir, "frame directory; also configurable via "+config.EnvOutDir)
	resize := flag.String("resize", "", "optional WxH resize sent after the first frame")
	debug := flag.Bool("debug", false, "log to stdout")
	flag.Parse()

	begin, err := parseStart(*start, time.Now())
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		logger = app.NewFileLogger(os.Stdout)
	}

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	renderer := render.NewPNGRenderer(*outDir, defaults.Width, defaults.Height)
	renderer.Logger = logger
	events := host.NewChannelSource(1)

	clock := &stepClock{now: begin}
	tracker := state.NewTracker(float64(defaults.Width), float64(defaults.Height), clock)
	a := app.New(tracker, renderer, events)
	a.Logger = logger
	a.Interval = *interval

	go drive(processCtx, a, clock, *step, *ticks, *interval)

	if *resize != "" {
		w, h, err := parseSize(*resize)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		go func() {
			_ = events.Send(processCtx, host.Event{Kind: host.Resize, Width: w, Height: h})
		}()
	}

	if err := a.Start(processCtx); err != nil {
		fmt.Println("simulator error:", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d frame(s) to %s, last shown %s\n", renderer.Frames(), *outDir, tracker.State())
}

// drive advances the simulated clock once per interval and, after the last
// step, gives the host loop a few more polls before asking it to exit.
func drive(ctx context.Context, a *app.App, clock *stepClock, step time.Duration, ticks int, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for i := 0; i < ticks+3; i++ {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
		if i < ticks {
			clock.Advance(step)
		}
	}
	a.Exit(nil)
}
