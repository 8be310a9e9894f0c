// Package history keeps the change journal of past watch sessions.
package history

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/lumipallolabs/pollwatch/internal/model"
)

const timeLayout = "2006-01-02_150405"

// Session is a saved journal for one watch target
type Session struct {
	Target  string
	Started time.Time
	Ended   time.Time
	Changes []model.Change
}

// History handles saving and loading session journals
type History struct {
	dir string
}

// New creates a history store in the given directory
func New(dir string) *History {
	return &History{dir: dir}
}

// DefaultDir returns the default history directory
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pollwatch"
	}
	return filepath.Join(home, ".pollwatch", "history")
}

// key turns a target path into a file name prefix
func key(target string) string {
	return strconv.FormatUint(xxhash.Sum64String(target), 16)
}

// Save writes a session journal for its target
func (h *History) Save(s Session) error {
	if err := os.MkdirAll(h.dir, 0755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	ended := s.Ended
	if ended.IsZero() {
		ended = time.Now()
	}
	filename := fmt.Sprintf("%s_%s.gob.gz", key(s.Target), ended.Format(timeLayout))

	file, err := os.Create(filepath.Join(h.dir, filename))
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer file.Close()

	gzWriter := gzip.NewWriter(file)
	if err := gob.NewEncoder(gzWriter).Encode(s); err != nil {
		gzWriter.Close()
		return fmt.Errorf("encode: %w", err)
	}
	if err := gzWriter.Close(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// sessions returns the journal files for target, oldest first
func (h *History) sessions(target string) ([]string, error) {
	pattern := filepath.Join(h.dir, key(target)+"_*.gob.gz")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob: %w", err)
	}
	// File names embed the timestamp so lexical order is chronological
	sort.Strings(files)
	return files, nil
}

// LoadLatest loads the most recent session for target
func (h *History) LoadLatest(target string) (*Session, error) {
	files, err := h.sessions(target)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no history for %s", target)
	}

	file, err := os.Open(files[len(files)-1])
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer file.Close()

	gzReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("gzip reader: %w", err)
	}
	defer gzReader.Close()

	var s Session
	if err := gob.NewDecoder(gzReader).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &s, nil
}

// Prune removes all but the newest keep sessions for target
func (h *History) Prune(target string, keep int) error {
	files, err := h.sessions(target)
	if err != nil {
		return err
	}
	if len(files) <= keep {
		return nil
	}
	for _, f := range files[:len(files)-keep] {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
