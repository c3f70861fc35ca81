//go:build linux

package system

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/rook-computer/clockoverlay/internal/host"
)

const (
	evKey = 0x01

	// Linux input-event-codes.h
	KeyEsc = 1
	KeyF4  = 62
)

// ExitKeySource watches the evdev devices under /dev/input and reports a
// close request the first time Key is pressed. It is best-effort: with no
// readable devices it simply never fires.
type ExitKeySource struct {
	Key    uint16
	Glob   string
	Logger logger

	ch     chan host.Event
	once   sync.Once
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewExitKeySource(l logger) *ExitKeySource {
	return &ExitKeySource{Key: KeyF4, Glob: "/dev/input/event*", Logger: l, ch: make(chan host.Event, 1)}
}

func (s *ExitKeySource) Events() <-chan host.Event { return s.ch }

func (s *ExitKeySource) Start(ctx context.Context) error {
	paths, err := filepath.Glob(s.Glob)
	if err != nil || len(paths) == 0 {
		if s.Logger != nil {
			s.Logger.Infof("input", "no evdev devices found for exit key")
		}
		return nil
	}
	ctx, s.cancel = context.WithCancel(ctx)
	for _, p := range paths {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.watch(ctx, p)
		}()
	}
	return nil
}

func (s *ExitKeySource) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	return nil
}

func (s *ExitKeySource) fire() {
	s.once.Do(func() {
		if s.Logger != nil {
			s.Logger.Infof("input", "exit key pressed")
		}
		s.ch <- host.Event{Kind: host.Close}
	})
}

func (s *ExitKeySource) watch(ctx context.Context, path string) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer f.Close()

	tvSize := binary.Size(unix.Timeval{})
	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}
		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}
		if keyPressed(buf[:n], tvSize, s.Key) {
			s.fire()
			return
		}
	}
}

// keyPressed scans a run of input_event records (timeval, u16 type, u16 code,
// s32 value) for a key-down of code.
func keyPressed(buf []byte, tvSize int, code uint16) bool {
	eventSize := tvSize + 8
	for off := 0; off+eventSize <= len(buf); off += eventSize {
		rec := buf[off : off+eventSize]
		typ := binary.LittleEndian.Uint16(rec[tvSize:])
		c := binary.LittleEndian.Uint16(rec[tvSize+2:])
		value := int32(binary.LittleEndian.Uint32(rec[tvSize+4:]))
		if typ == evKey && c == code && value == 1 {
			return true
		}
	}
	return false
}
