// Package watch re-runs a callback when source files under a set of roots
// change. Bursts of events (editors saving through temp files, git
// checkouts) are folded into one call after a quiet period.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when Options.Debounce is zero.
const DefaultDebounce = 200 * time.Millisecond

type Options struct {
	Debounce time.Duration
	// Match selects the files whose changes matter; nil accepts every file.
	Match func(path string) bool
	// SkipDir prunes directories from the recursive watch (bin, obj, .git).
	SkipDir func(path string) bool
}

// Watcher watches directories recursively; fsnotify itself only watches
// single directories, so new subdirectories are added as they appear.
type Watcher struct {
	fsw  *fsnotify.Watcher
	opts Options
	// files holds roots given as files; their siblings are not reported.
	files map[string]bool
	trees []string
}

// New starts watching roots, which may be files or directories.
func New(roots []string, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{fsw: fsw, opts: opts, files: make(map[string]bool)}
	for _, root := range roots {
		if err := w.addRoot(root); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) addRoot(root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		w.files[abs] = true
		return w.fsw.Add(filepath.Dir(abs))
	}
	w.trees = append(w.trees, abs)
	return w.addTree(abs)
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// каталог мог исчезнуть между событием и обходом
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && w.opts.SkipDir != nil && w.opts.SkipDir(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// WatchList returns the watched directories, sorted.
func (w *Watcher) WatchList() []string {
	list := w.fsw.WatchList()
	slices.Sort(list)
	return list
}

func (w *Watcher) relevant(path string) bool {
	if !w.files[path] && !w.underTree(path) {
		return false
	}
	return w.opts.Match == nil || w.opts.Match(path)
}

func (w *Watcher) underTree(path string) bool {
	for _, tree := range w.trees {
		rel, err := filepath.Rel(tree, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Run blocks until ctx is done, calling onChange with the sorted set of
// changed files after each quiet period. onChange runs on the Run goroutine;
// events arriving meanwhile are collected for the next call.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, changed []string)) error {
	defer w.fsw.Close() //nolint:errcheck

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.opts.Debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if w.opts.SkipDir == nil || !w.opts.SkipDir(ev.Name) {
						if err := w.addTree(ev.Name); err != nil {
							return err
						}
					}
					continue
				}
			}
			if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) {
				continue
			}
			if !w.relevant(ev.Name) {
				continue
			}
			pending[ev.Name] = struct{}{}
			timer.Reset(w.opts.Debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch: %w", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			slices.Sort(changed)
			clear(pending)
			onChange(ctx, changed)
		}
	}
}

// Close stops the watcher without Run.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
