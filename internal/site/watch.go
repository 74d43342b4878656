package site

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce collapses bursts of editor writes into one rebuild.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reports changes to files under Root that match Patterns.
type Watcher struct {
	Root     string
	Patterns []string
	// Ignore lists directories, relative to Root, that are never watched.
	Ignore   []string
	Debounce time.Duration
	Logger   *zap.Logger
}

// Match reports whether rel, a path relative to Root, is watched.
func (w *Watcher) Match(rel string) bool {
	rel = filepath.ToSlash(filepath.Clean(rel))
	if rel == ".." || strings.HasPrefix(rel, "../") || w.ignored(rel) {
		return false
	}
	for _, pattern := range w.Patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func (w *Watcher) ignored(rel string) bool {
	for _, dir := range w.Ignore {
		dir = strings.Trim(filepath.ToSlash(filepath.Clean(dir)), "/")
		if dir == "" || dir == "." {
			continue
		}
		if rel == dir || strings.HasPrefix(rel, dir+"/") {
			return true
		}
	}
	for _, seg := range strings.Split(rel, "/") {
		if strings.HasPrefix(seg, ".") && seg != "." && seg != ".." {
			return true
		}
	}
	return false
}

// Run watches until ctx is done, calling onChange with the last matching
// path of each debounced burst. onChange runs on the watcher goroutine.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	logger := w.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := w.addTree(fsw, w.Root); err != nil {
		return err
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	var last string

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if isDir(ev.Name) {
					if err := w.addTree(fsw, ev.Name); err != nil {
						logger.Warn("watching new directory", zap.String("path", ev.Name), zap.Error(err))
					}
					continue
				}
			}
			rel, err := filepath.Rel(w.Root, ev.Name)
			if err != nil || !w.Match(rel) {
				continue
			}
			logger.Debug("change detected", zap.String("path", ev.Name), zap.Stringer("op", ev.Op))
			last = ev.Name
			timer.Reset(debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))
		case <-timer.C:
			onChange(last)
		}
	}
}

// addTree watches dir and its subdirectories, skipping ignored ones.
func (w *Watcher) addTree(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if rel, err := filepath.Rel(w.Root, path); err == nil && rel != "." && w.ignored(filepath.ToSlash(rel)) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
