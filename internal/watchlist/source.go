package watchlist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/google/renameio/v2"
)

type logger interface {
	Infof(component string, format string, args ...interface{})
	Warnf(component string, format string, args ...interface{})
}

// Source reads the watch list from a JSON file. Load never fails: a missing
// or corrupt file yields the last list read successfully, or the defaults.
type Source struct {
	Path     string
	Defaults WatchList
	Logger   logger

	mu   sync.Mutex
	last WatchList
}

func NewSource(path string, logger logger) *Source {
	return &Source{Path: path, Defaults: Default(), Logger: logger}
}

// Load rereads the file. It never fails and does not block on ctx.
func (s *Source) Load(_ context.Context) WatchList {
	w, err := s.read()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		s.last = w
		return w.Clone()
	}
	if s.last != nil {
		s.warnf("watch list unavailable, keeping last known: %v", err)
		return s.last.Clone()
	}
	if errors.Is(err, fs.ErrNotExist) {
		s.infof("no teams file at %s; using defaults", s.Path)
	} else {
		s.warnf("watch list unavailable, using defaults: %v", err)
	}
	return s.Defaults.Clone()
}

// Current returns the most recent list Load produced from the file, or the
// defaults before any successful read.
func (s *Source) Current() WatchList {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last != nil {
		return s.last.Clone()
	}
	return s.Defaults.Clone()
}

// Save atomically replaces the teams file.
func (s *Source) Save(w WatchList) error {
	if s.Path == "" {
		return errors.New("watch list: no teams file configured")
	}
	data, err := Encode(w)
	if err != nil {
		return err
	}
	if err := renameio.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("save watch list: %w", err)
	}
	s.mu.Lock()
	s.last = withDefaults(w, s.Defaults)
	s.mu.Unlock()
	return nil
}

func (s *Source) read() (WatchList, error) {
	if s.Path == "" {
		return nil, fs.ErrNotExist
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	w, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return withDefaults(w, s.Defaults), nil
}

func (s *Source) infof(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Infof("watchlist", format, args...)
	}
}

func (s *Source) warnf(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Warnf("watchlist", format, args...)
	}
}
