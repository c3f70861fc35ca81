package app

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Logger is the component-tagged logger shared by every package. Subpackages
// declare the same two methods locally so they do not import app.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

// FileLogger writes one "RFC3339 [LEVEL] component: message" line per call.
// Event sources log from their own goroutines, so writes are serialised.
type FileLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func NewFileLogger(w io.Writer) *FileLogger { return &FileLogger{w: w} }

func (l *FileLogger) Infof(component string, format string, args ...interface{}) {
	l.write("INFO", component, format, args...)
}

func (l *FileLogger) Errorf(component string, format string, args ...interface{}) {
	l.write("ERROR", component, format, args...)
}

func (l *FileLogger) write(level, component, format string, args ...interface{}) {
	line := fmt.Sprintf("%s [%s] %s: %s\n", time.Now().Format(time.RFC3339), level, component, fmt.Sprintf(format, args...))
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.w, line)
}
