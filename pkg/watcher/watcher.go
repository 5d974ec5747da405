// Package watcher reports changes to a set of files, debounced.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event before a
// change is reported.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches files through their parent directories so that editors
// replacing a file on save are still noticed.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *log.Logger

	mu    sync.Mutex
	files map[string]bool
	dirs  map[string]bool
}

// New creates a watcher. A nil logger uses the default logger.
func New(debounce time.Duration, logger *log.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Watcher{
		watcher:  fw,
		debounce: debounce,
		logger:   logger,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
	}, nil
}

// Set replaces the watched files.
func (w *Watcher) Set(files []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	set := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", f, err)
		}
		set[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for d := range dirs {
		if w.dirs[d] {
			continue
		}
		if err := w.watcher.Add(d); err != nil {
			return fmt.Errorf("failed to watch %s: %w", d, err)
		}
	}
	for d := range w.dirs {
		if !dirs[d] {
			_ = w.watcher.Remove(d)
		}
	}

	w.files = set
	w.dirs = dirs
	return nil
}

// Files returns the number of watched files.
func (w *Watcher) Files() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.files)
}

func (w *Watcher) watched(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[filepath.Clean(path)]
}

// Run blocks until ctx is done, calling onChange with the last changed
// file once events have been quiet for the debounce period. Calls are
// sequential.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	var last string
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !w.watched(event.Name) {
				continue
			}
			w.logger.Debug("file changed", "path", event.Name, "op", event.Op.String())
			last = event.Name
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "err", err)

		case <-timer.C:
			onChange(last)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
