package watchlist

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher signals Changes whenever the teams file is written, created or
// replaced. Bursts of events within Debounce collapse into one signal.
type Watcher struct {
	Path     string
	Debounce time.Duration
	Logger   logger

	changes  chan struct{}
	watching atomic.Bool
}

func NewWatcher(path string, logger logger) *Watcher {
	return &Watcher{
		Path:     path,
		Debounce: defaultDebounce,
		Logger:   logger,
		changes:  make(chan struct{}, 1),
	}
}

// Changes never closes; pending signals coalesce.
func (w *Watcher) Changes() <-chan struct{} { return w.changes }

// Watching reports whether Run is currently watching the file.
func (w *Watcher) Watching() bool { return w.watching.Load() }

// Run watches the file's directory until ctx is done. The directory is
// watched because atomic saves replace the file inode.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(w.Path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	w.watching.Store(true)
	defer w.watching.Store(false)
	if w.Logger != nil {
		w.Logger.Infof("watchlist", "watching %s for changes", target)
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if w.Logger != nil {
				w.Logger.Warnf("watchlist", "watcher error: %v", err)
			}

		case <-timer.C:
			select {
			case w.changes <- struct{}{}:
			default:
			}
		}
	}
}
