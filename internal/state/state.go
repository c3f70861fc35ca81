package state

import (
	"fmt"
	"time"
)

// DisplayState is what the overlay currently shows. It is compared by value
// and replaced wholesale when the wall clock moves to a new minute.
type DisplayState struct {
	Hour   int // 0-23
	Minute int // 0-59
}

// StateAt returns the display state for t in t's location.
func StateAt(t time.Time) DisplayState {
	return DisplayState{Hour: t.Hour(), Minute: t.Minute()}
}

// String renders the 24-hour, zero-padded "HH:MM" form.
func (s DisplayState) String() string {
	return fmt.Sprintf("%02d:%02d", s.Hour, s.Minute)
}

// Viewport is the overlay surface size in logical units.
type Viewport struct {
	Width  float64
	Height float64
}

// Clock is the tracker's time source.
type Clock interface {
	Now() time.Time
}

// SystemClock reads local wall time as configured by the host OS.
type SystemClock struct{}

// Now returns time.Now in the local zone.
func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }
