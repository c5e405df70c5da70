// Package fsnotify implements the ports.Watcher interface using github.com/fsnotify/fsnotify.
// It recursively watches a crate directory, reports only Rust sources and
// debounces rapid events (editors often trigger multiple writes per save).
package fsnotify

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceInterval = 50 * time.Millisecond

// Directories never descended into.
var ignoreDirs = map[string]bool{
	".git":        true,
	".hg":         true,
	".idea":       true,
	".vscode":     true,
	".rustwriter": true,
	"target":      true,
}

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	fw      *fsnotify.Watcher
	logger  *slog.Logger
	done    chan struct{}
	stopped bool
	mu      sync.Mutex
}

// NewWatcher creates a new file system watcher. A nil logger discards
// watcher errors.
func NewWatcher(logger *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{
		fw:     fw,
		logger: logger,
		done:   make(chan struct{}),
	}, nil
}

// Watch starts monitoring projectPath recursively.
// onChange is called with the absolute path of each changed Rust file.
func (w *Watcher) Watch(projectPath string, onChange func(filePath string)) error {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return err
	}
	if err := w.addTree(absPath, true); err != nil {
		return err
	}

	go w.loop(onChange)
	return nil
}

// addTree adds root and every non-ignored directory below it. Unreadable
// subdirectories are skipped; only a failure on root itself is returned.
func (w *Watcher) addTree(root string, strict bool) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root && strict {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && ignoreDirs[d.Name()] {
			return filepath.SkipDir
		}
		return w.fw.Add(path)
	})
}

func (w *Watcher) loop(onChange func(filePath string)) {
	last := make(map[string]time.Time)

	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			path := event.Name

			// New directories (e.g. a fresh module folder) are watched too.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(path); err == nil && info.IsDir() && !ignoreDirs[info.Name()] {
					if err := w.addTree(path, false); err != nil {
						w.logger.Debug("watch new directory", "path", path, "err", err)
					}
				}
			}

			if shouldIgnorePath(path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			now := time.Now()
			if prev, seen := last[path]; seen && now.Sub(prev) < debounceInterval {
				continue
			}
			last[path] = now

			onChange(path)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			// fsnotify recovers on its own; the error is only worth a trace.
			w.logger.Debug("watcher error", "err", err)

		case <-w.done:
			return
		}
	}
}

// Stop ends monitoring and releases all resources.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	return w.fw.Close()
}

// shouldIgnorePath reports whether a change to path is not a Rust source
// change worth reporting.
func shouldIgnorePath(path string) bool {
	base := filepath.Base(path)
	if !strings.EqualFold(filepath.Ext(base), ".rs") || strings.HasPrefix(base, ".#") {
		return true
	}
	for _, part := range strings.Split(filepath.Dir(path), string(filepath.Separator)) {
		if ignoreDirs[part] {
			return true
		}
	}
	return false
}
