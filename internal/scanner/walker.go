package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
)

// Walker enumerates a target with fastwalk
type Walker struct {
	workers    int
	ignore     []string
	sameDevice bool
}

// WalkerOption configures a Walker
type WalkerOption func(*Walker)

// WithWorkers sets the number of fastwalk workers. The default of 1 keeps
// enumeration sequential.
func WithWorkers(n int) WalkerOption {
	return func(w *Walker) {
		if n > 0 {
			w.workers = n
		}
	}
}

// WithIgnore excludes entries whose slash-separated path relative to the
// walk root matches one of the doublestar patterns
func WithIgnore(patterns ...string) WalkerOption {
	return func(w *Walker) {
		w.ignore = append(w.ignore, patterns...)
	}
}

// WithSameDevice stops the walk at mount points
func WithSameDevice(enabled bool) WalkerOption {
	return func(w *Walker) {
		w.sameDevice = enabled
	}
}

// NewWalker creates a Walker. It fails if an ignore pattern is malformed.
func NewWalker(opts ...WalkerOption) (*Walker, error) {
	w := &Walker{workers: 1}
	for _, opt := range opts {
		opt(w)
	}
	for _, p := range w.ignore {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("ignore pattern %q: %w", p, doublestar.ErrBadPattern)
		}
	}
	return w, nil
}

// Enumerate implements Enumerator
func (w *Walker) Enumerate(ctx context.Context, root string) ([]Entry, error) {
	root = filepath.Clean(root)

	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	if !info.IsDir() {
		if !info.Mode().IsRegular() {
			return nil, nil
		}
		return []Entry{{Path: root, ModTime: info.ModTime(), Size: info.Size()}}, nil
	}

	rootDev, hasDev := deviceOf(root)

	var (
		mu      sync.Mutex
		entries []Entry
	)

	conf := &fastwalk.Config{
		Follow:     false, // Don't follow symlinks
		NumWorkers: w.workers,
	}

	walkErr := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			return nil // Unreadable entry, try again next cycle
		}

		if path == root {
			return nil
		}

		if w.ignored(root, path) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if w.sameDevice && hasDev && !onDevice(path, rootDev) {
				return fs.SkipDir
			}
			return nil
		}

		info, err := statEntry(path, d)
		if err != nil || info.IsDir() {
			return nil
		}

		mu.Lock()
		entries = append(entries, Entry{Path: path, ModTime: info.ModTime(), Size: info.Size()})
		mu.Unlock()
		return nil
	})

	if walkErr != nil {
		if errors.Is(walkErr, fs.ErrNotExist) {
			// Root vanished between the stat and the walk
			return nil, nil
		}
		return nil, walkErr
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Path, b.Path)
	})
	return entries, nil
}

// Exists implements Enumerator. A path that turned into a directory no
// longer counts as existing.
func (w *Walker) Exists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

func (w *Walker) ignored(root, path string) bool {
	if len(w.ignore) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, p := range w.ignore {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// statEntry returns the info used for change detection. Symlinks report
// their target's timestamp.
func statEntry(path string, d fs.DirEntry) (fs.FileInfo, error) {
	if d.Type()&fs.ModeSymlink != 0 {
		return os.Stat(path)
	}
	return d.Info()
}

// Ensure Walker implements Enumerator
var _ Enumerator = (*Walker)(nil)
