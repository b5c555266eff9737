// Package logging provides the component-tagged logger used across the
// scoreboard, backed by zerolog.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the logging shape every subsystem accepts. The component names
// the subsystem emitting the line ("engine", "espn", "web", ...).
type Logger interface {
	Debugf(component string, format string, args ...interface{})
	Infof(component string, format string, args ...interface{})
	Warnf(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Config controls the zerolog backend.
type Config struct {
	Level   string    // "debug", "info", ... defaults to info
	Output  io.Writer // defaults to os.Stdout
	Service string    // attached to every entry
	Pretty  bool      // human readable console output
}

type zeroLogger struct {
	base zerolog.Logger
}

// New returns a zerolog-backed Logger.
func New(cfg Config) Logger {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Level)); err == nil {
			level = parsed
		}
	}

	writer := cfg.Output
	if writer == nil {
		writer = os.Stdout
	}
	if cfg.Pretty {
		writer = zerolog.ConsoleWriter{Out: writer, TimeFormat: time.RFC3339}
	}

	service := cfg.Service
	if service == "" {
		service = "scoreboard"
	}

	base := zerolog.New(writer).Level(level).With().
		Timestamp().
		Str(FieldService, service).
		Logger()
	return zeroLogger{base: base}
}

func (l zeroLogger) Debugf(component, format string, args ...interface{}) {
	l.emit(l.base.Debug(), component, format, args...)
}

func (l zeroLogger) Infof(component, format string, args ...interface{}) {
	l.emit(l.base.Info(), component, format, args...)
}

func (l zeroLogger) Warnf(component, format string, args ...interface{}) {
	l.emit(l.base.Warn(), component, format, args...)
}

func (l zeroLogger) Errorf(component, format string, args ...interface{}) {
	l.emit(l.base.Error(), component, format, args...)
}

func (zeroLogger) emit(event *zerolog.Event, component, format string, args ...interface{}) {
	if event == nil {
		return
	}
	event.Str(FieldComponent, component).Msg(fmt.Sprintf(format, args...))
}

// Noop discards everything.
type Noop struct{}

func (Noop) Debugf(string, string, ...interface{}) {}
func (Noop) Infof(string, string, ...interface{})  {}
func (Noop) Warnf(string, string, ...interface{})  {}
func (Noop) Errorf(string, string, ...interface{}) {}

// OrNoop returns l, or Noop when l is nil.
func OrNoop(l Logger) Logger {
	if l == nil {
		return Noop{}
	}
	return l
}
