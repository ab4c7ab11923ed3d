// Package watch re-runs fingerprinting whenever the output tree changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// RunFunc performs one complete fingerprinting run.
type RunFunc func() error

// Watcher triggers RunFunc after bursts of file system activity under a root.
type Watcher struct {
	root     string
	debounce time.Duration
	run      RunFunc
	logger   *slog.Logger
}

// New creates a watcher. A nil logger discards output.
func New(root string, debounce time.Duration, run RunFunc, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{
		root:     root,
		debounce: debounce,
		run:      run,
		logger:   logger,
	}
}

// Serve runs once, then again after each debounced change, until ctx is done.
// Runs never overlap. A failed run is logged and watching continues.
func (w *Watcher) Serve(ctx context.Context) error {
	w.runOnce()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := w.watchDir(watcher, w.root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.root, err)
	}

	w.logger.Info("watching for changes", "root", w.root, "debounce", w.debounce.String())

	// fire is nil while no run is scheduled.
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			if event.Has(fsnotify.Create) {
				w.addIfDir(watcher, event.Name)
			}
			w.logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
			fire = time.After(w.debounce)

		case <-fire:
			fire = nil
			w.runOnce()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err.Error())
		}
	}
}

func (w *Watcher) runOnce() {
	if err := w.run(); err != nil {
		w.logger.Error("run failed", "error", err.Error())
	}
}

// relevant reports whether event may need a rerun. Pure chmod events are ignored.
func relevant(event fsnotify.Event) bool {
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) != 0
}

// watchDir recursively adds a directory to the watcher.
func (w *Watcher) watchDir(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			w.logger.Warn("skipping unwatchable directory", "path", path, "error", err.Error())
			return nil
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

// addIfDir starts watching path when a newly created entry is a directory.
func (w *Watcher) addIfDir(watcher *fsnotify.Watcher, path string) {
	info, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			w.logger.Debug("failed to stat new entry", "path", path, "error", err.Error())
		}
		return
	}
	if !info.IsDir() {
		return
	}
	if err := w.watchDir(watcher, path); err != nil {
		w.logger.Warn("failed to watch new directory", "path", path, "error", err.Error())
	}
}
