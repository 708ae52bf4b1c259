package driver

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatcherConfig configures the transpile watcher.
type WatcherConfig struct {
	// Roots are the directories to watch recursively.
	Roots []string

	// Options are the transpile options applied on each rebuild.
	Options Options

	// DebounceDelay is how long to wait for more changes before
	// transpiling (editors often fire several events per save).
	DebounceDelay time.Duration

	// Logger for watch events.
	Logger *slog.Logger
}

// Watcher watches directories for script changes and re-transpiles them.
type Watcher struct {
	config  WatcherConfig
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	pendingMu sync.Mutex
	pending   map[string]struct{} // paths with unprocessed changes
}

// NewWatcher creates a watcher for the given configuration.
func NewWatcher(config WatcherConfig) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if config.DebounceDelay == 0 {
		config.DebounceDelay = 100 * time.Millisecond
	}

	return &Watcher{
		config:  config,
		watcher: fsw,
		logger:  logger,
		pending: make(map[string]struct{}),
	}, nil
}

// Start begins watching and blocks until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	for _, root := range w.config.Roots {
		if err := w.addWatchesRecursive(root); err != nil {
			return err
		}
	}

	w.logger.Info("watching for changes",
		"roots", strings.Join(w.config.Roots, ","),
		"debounce", w.config.DebounceDelay)

	timer := time.NewTimer(w.config.DebounceDelay)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return w.watcher.Close()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.handleEvent(event) {
				timer.Reset(w.config.DebounceDelay)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", "error", err)
		case <-timer.C:
			w.flushPending()
		}
	}
}

// handleEvent records a relevant change and reports whether the debounce
// timer should restart.
func (w *Watcher) handleEvent(event fsnotify.Event) bool {
	// New directories need their own watches.
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addWatchesRecursive(event.Name); err != nil {
				w.logger.Error("failed to watch new directory", "path", event.Name, "error", err)
			}
			return false
		}
	}

	if !w.isSource(event.Name) {
		return false
	}
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
		return false
	}

	w.pendingMu.Lock()
	w.pending[event.Name] = struct{}{}
	w.pendingMu.Unlock()
	return true
}

func (w *Watcher) flushPending() {
	w.pendingMu.Lock()
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	for _, path := range paths {
		outPath, err := TranspileFile(path, "", w.config.Options)
		if err != nil {
			w.logger.Error("transpile failed", "path", path, "error", err)
			continue
		}
		w.logger.Info("transpiled", "in", path, "out", outPath)
	}
}

// isSource reports whether path is a watchable script, excluding files the
// transpiler itself produced.
func (w *Watcher) isSource(path string) bool {
	if !strings.HasSuffix(path, ".js") {
		return false
	}
	return !strings.HasSuffix(path, w.config.Options.OutSuffix)
}

func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}
