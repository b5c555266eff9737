//go:build unix

package main

import (
	"os"

	"golang.org/x/sys/unix"
)

// redirectStdIO points fd 1 and 2 at path so runtime panics from any
// goroutine land in the file.
func redirectStdIO(path string) error {
	f, err := openStdioLog(path)
	if err != nil || f == nil {
		return err
	}
	defer f.Close()

	for _, target := range []*os.File{os.Stdout, os.Stderr} {
		if err := unix.Dup2(int(f.Fd()), int(target.Fd())); err != nil {
			return err
		}
	}
	return nil
}
