package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// openStdioLog opens path for appending and marks the start of this run so
// crash output from consecutive boots stays apart. It returns nil for an
// empty path.
func openStdioLog(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	if _, err := fmt.Fprintf(f, "--- scoreboard start %s pid=%d ---\n", time.Now().Format(time.RFC3339), os.Getpid()); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}
