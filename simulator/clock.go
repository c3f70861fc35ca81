package main

import (
	"fmt"
	"sync"
	"time"
)

// stepClock is a simulated wall clock that only moves when Advance is called.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// parseStart reads an HH:MM:SS start time on today's date in the local zone.
func parseStart(raw string, today time.Time) (time.Time, error) {
	t, err := time.ParseInLocation("15:04:05", raw, today.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("start must be HH:MM:SS (got %q): %w", raw, err)
	}
	y, m, d := today.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, today.Location()), nil
}

// parseSize reads a WxH pair such as 200x80.
func parseSize(raw string) (int, int, error) {
	var w, h int
	if _, err := fmt.Sscanf(raw, "%dx%d", &w, &h); err != nil {
		return 0, 0, fmt.Errorf("size must be WxH (got %q): %w", raw, err)
	}
	if w < 0 || h < 0 {
		return 0, 0, fmt.Errorf("size must not be negative (got %q)", raw)
	}
	return w, h, nil
}
