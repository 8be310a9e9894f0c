package observer

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/lumipallolabs/pollwatch/internal/scanner"
)

// memFS is an in-memory Enumerator. Paths are used verbatim.
type memFS struct {
	mu        sync.Mutex
	files     map[string]time.Time
	statErr   map[string]error
	enumErr   error
	enumCalls int
}

func newMemFS() *memFS {
	return &memFS{
		files:   map[string]time.Time{},
		statErr: map[string]error{},
	}
}

func (m *memFS) set(path string, mod time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = mod
}

func (m *memFS) remove(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, path)
}

func (m *memFS) failStat(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.statErr, path)
		return
	}
	m.statErr[path] = err
}

func (m *memFS) failEnumerate(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enumErr = err
}

func (m *memFS) Enumerate(ctx context.Context, root string) ([]scanner.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enumCalls++
	if m.enumErr != nil {
		return nil, m.enumErr
	}
	var entries []scanner.Entry
	for p, mod := range m.files {
		if p == root || strings.HasPrefix(p, root+"/") {
			if _, failing := m.statErr[p]; failing {
				continue
			}
			entries = append(entries, scanner.Entry{Path: p, ModTime: mod})
		}
	}
	slices.SortFunc(entries, func(a, b scanner.Entry) int {
		return strings.Compare(a.Path, b.Path)
	})
	return entries, nil
}

func (m *memFS) Exists(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.statErr[path]; ok {
		return false, err
	}
	_, ok := m.files[path]
	return ok, nil
}

var errTransient = errors.New("transient")

type change struct {
	Path string
	Kind ChangeKind
}

// recorder collects Handler calls
type recorder struct {
	mu      sync.Mutex
	changes []change
	ch      chan change
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan change, 128)}
}

func (r *recorder) handle(path string, kind ChangeKind) {
	r.mu.Lock()
	r.changes = append(r.changes, change{path, kind})
	r.mu.Unlock()
	r.ch <- change{path, kind}
}

func (r *recorder) all() []change {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.changes)
}
