// Package watcher re-runs a callback when any of a fixed set of files
// changes.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce groups the burst of events editors emit on save.
const DefaultDebounce = 100 * time.Millisecond

// FileWatcher watches the parent directories of its files rather than the
// files themselves, so editors that save by rename are still seen.
type FileWatcher struct {
	*fsnotify.Watcher
	files    map[string]bool
	debounce time.Duration
	logger   *logrus.Logger
}

// New watches files. A zero debounce uses DefaultDebounce.
func New(files []string, debounce time.Duration, logger *logrus.Logger) (*FileWatcher, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &FileWatcher{
		Watcher:  w,
		files:    make(map[string]bool, len(files)),
		debounce: debounce,
		logger:   logger,
	}

	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			w.Close()
			return nil, err
		}
		fw.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	return fw, nil
}

// Run calls onChange after each debounced burst of writes to a watched
// file, until ctx is done. Callbacks never overlap.
func (w *FileWatcher) Run(ctx context.Context, onChange func()) error {
	var mu sync.Mutex
	var timer *time.Timer
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	var running sync.Mutex
	fire := func() {
		running.Lock()
		defer running.Unlock()
		if ctx.Err() == nil {
			onChange()
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !w.files[abs] {
				continue
			}
			w.logger.WithFields(logrus.Fields{"file": event.Name, "op": event.Op.String()}).Debug("File changed")

			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, fire)
			mu.Unlock()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			w.logger.WithError(err).Warn("Watcher error")
		}
	}
}
