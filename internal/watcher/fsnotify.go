package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FSWatcher implements Watcher using fsnotify with recursive directory
// registration. New directories are registered as they appear; document
// events are funneled through the per-path debouncer.
type FSWatcher struct {
	opts      Options
	fsw       *fsnotify.Watcher
	debouncer *Debouncer
	errors    chan error

	mu      sync.Mutex
	stopped bool
	cancel  context.CancelFunc
}

// NewFSWatcher creates a watcher with the given options.
func NewFSWatcher(opts Options) *FSWatcher {
	opts = opts.WithDefaults()
	return &FSWatcher{
		opts:      opts,
		debouncer: NewDebouncer(opts.DebounceWindow),
		errors:    make(chan error, 16),
	}
}

// Start begins watching the roots recursively. It returns once watches
// are registered; event dispatch continues in the background until Stop
// or context cancellation.
func (w *FSWatcher) Start(ctx context.Context, roots []string) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	w.fsw = fsw

	for _, root := range roots {
		if err := w.addRecursive(root); err != nil {
			_ = fsw.Close()
			return fmt.Errorf("failed to watch %s: %w", root, err)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	w.mu.Lock()
	w.cancel = cancel
	w.mu.Unlock()

	go w.loop(ctx)
	return nil
}

// loop dispatches raw fsnotify events until the context is cancelled.
func (w *FSWatcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
				slog.Warn("watcher error dropped", slog.String("error", err.Error()))
			}
		}
	}
}

// handleEvent maps one fsnotify event onto a debounced FileEvent.
func (w *FSWatcher) handleEvent(event fsnotify.Event) {
	// Register newly created directories so nested documents are seen.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !w.excluded(filepath.Base(event.Name)) {
				if err := w.addRecursive(event.Name); err != nil {
					slog.Warn("failed to watch new directory",
						slog.String("path", event.Name),
						slog.String("error", err.Error()))
				}
			}
			return
		}
	}

	if w.opts.Extension != "" && !strings.HasSuffix(event.Name, w.opts.Extension) {
		return
	}

	var op Operation
	switch {
	case event.Op&fsnotify.Create != 0:
		op = OpCreate
	case event.Op&fsnotify.Write != 0:
		op = OpModify
	case event.Op&fsnotify.Remove != 0, event.Op&fsnotify.Rename != 0:
		// A rename leaves the old path gone; the new path arrives as a
		// separate CREATE.
		op = OpDelete
	default:
		return // chmod etc.
	}

	w.debouncer.Add(FileEvent{
		Path:      event.Name,
		Operation: op,
		Timestamp: time.Now(),
	})
}

// addRecursive registers a directory tree, skipping excluded directories.
func (w *FSWatcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip entries we can't access
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.excluded(d.Name()) {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

// excluded reports whether a directory name is filtered from watching.
func (w *FSWatcher) excluded(name string) bool {
	if w.opts.IgnoreMarker != "" && strings.HasPrefix(name, w.opts.IgnoreMarker) {
		return true
	}
	for _, excluded := range w.opts.ExcludeDirs {
		if name == excluded {
			return true
		}
	}
	return false
}

// Events returns the channel of debounced file events.
func (w *FSWatcher) Events() <-chan FileEvent {
	return w.debouncer.Output()
}

// Errors returns the channel of non-fatal watcher errors.
func (w *FSWatcher) Errors() <-chan error {
	return w.errors
}

// Stop stops the watcher and releases resources. Safe to call twice.
func (w *FSWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true

	if w.cancel != nil {
		w.cancel()
	}
	var err error
	if w.fsw != nil {
		err = w.fsw.Close()
	}
	w.debouncer.Stop()
	return err
}
