// Package system holds the Linux console plumbing the framebuffer sink needs
// while it owns the screen.
package system

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// linux/kd.h
const (
	kdSetMode  = 0x4B3A
	kdText     = 0x00
	kdGraphics = 0x01
)

const (
	cursorHide = "\x1b[?25l"
	cursorShow = "\x1b[?25h"
)

// ttys are tried in order: the controlling VT, then the active one.
var ttys = []string{"/dev/tty", "/dev/tty0"}

type logger interface {
	Debugf(component string, format string, args ...interface{})
	Warnf(component string, format string, args ...interface{})
}

// ClaimConsole puts the VT in graphics mode and hides the cursor so the text
// console does not paint over framebuffer output.
func ClaimConsole(l logger) error {
	return report(l, "claim console", errors.Join(kdMode(kdGraphics), vtWrite(cursorHide)))
}

// ReleaseConsole undoes ClaimConsole.
func ReleaseConsole(l logger) error {
	return report(l, "release console", errors.Join(vtWrite(cursorShow), kdMode(kdText)))
}

func kdMode(mode int) error {
	errs := make([]error, 0, len(ttys))
	for _, path := range ttys {
		fd, err := unix.Open(path, unix.O_RDONLY, 0)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		_ = unix.Close(fd)
		if err == nil {
			return nil
		}
		errs = append(errs, fmt.Errorf("KDSETMODE %d on %s: %w", mode, path, err))
	}
	return errors.Join(errs...)
}

func vtWrite(seq string) error {
	errs := make([]error, 0, len(ttys))
	for _, path := range ttys {
		f, err := os.OpenFile(path, os.O_WRONLY, 0)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		_, err = f.WriteString(seq)
		_ = f.Close()
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func report(l logger, what string, err error) error {
	if l == nil {
		return err
	}
	if err != nil {
		l.Warnf("tty", "%s: %v", what, err)
	} else {
		l.Debugf("tty", "%s: ok", what)
	}
	return err
}
