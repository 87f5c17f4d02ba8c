package source

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to files matching a set of patterns, debounced.
type Watcher struct {
	watcher  *fsnotify.Watcher
	patterns []string
	debounce time.Duration
	logger   *slog.Logger
}

// NewWatcher watches the directories the patterns can match in. Plain
// directories are treated like Expand does.
func NewWatcher(patterns []string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{watcher: fsw, debounce: debounce, logger: logger}
	for _, pattern := range patterns {
		abs, err := filepath.Abs(pattern)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		if !containsGlob(pattern) {
			if info, err := os.Stat(abs); err == nil && info.IsDir() {
				abs = filepath.Join(abs, "**", "*"+DefaultExtension)
			}
		}
		w.patterns = append(w.patterns, abs)
		if err := w.addWatches(abs); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// addWatches watches the static base directory of pattern and, for a
// recursive pattern, every directory below it.
func (w *Watcher) addWatches(pattern string) error {
	base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
	base = filepath.FromSlash(base)
	return filepath.WalkDir(base, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != base && !isRecursive(pattern) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", "path", path, "error", err)
		} else {
			w.logger.Debug("Watching directory", "path", path)
		}
		return nil
	})
}

func isRecursive(pattern string) bool {
	return strings.Contains(pattern, "**")
}

// Matches reports whether path is covered by one of the patterns.
func (w *Watcher) Matches(path string) bool {
	for _, pattern := range w.patterns {
		if ok, _ := doublestar.PathMatch(pattern, path); ok {
			return true
		}
	}
	return false
}

// Run blocks until ctx is done, calling onChange with the sorted list of
// matching files changed during each quiet period.
func (w *Watcher) Run(ctx context.Context, onChange func(changed []string)) error {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	var fire <-chan time.Time
	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					w.handleNewDirectory(event.Name)
					continue
				}
			}
			if event.Op == fsnotify.Chmod || !w.Matches(event.Name) {
				continue
			}
			w.logger.Debug("Change detected", "path", event.Name, "op", event.Op.String())
			pending[event.Name] = true
			timer.Reset(w.debounce)
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", "error", err)

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}
			clear(pending)
			slices.Sort(changed)
			onChange(changed)
		}
	}
}

func (w *Watcher) handleNewDirectory(path string) {
	for _, pattern := range w.patterns {
		if !isRecursive(pattern) {
			continue
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch new directory", "path", path, "error", err)
		} else {
			w.logger.Debug("Added watch for new directory", "path", path)
		}
		return
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
