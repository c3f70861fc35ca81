//go:build unix

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRedirectStdIO_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.log")
	if err := redirectStdIO(path); err == nil {
		t.Fatal("expected error for a path in a missing directory")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("log file should not exist, stat err = %v", err)
	}
}
