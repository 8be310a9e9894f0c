package model

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/lumipallolabs/pollwatch/internal/observer"
)

// Change is one reported filesystem change, enriched for display
type Change struct {
	Path string
	Kind observer.ChangeKind
	At   time.Time
	Size int64  // 0 for erased entries
	Type string // detected content type, e.g. "PNG"; empty if unknown
}

// Rel returns the change path relative to root, or the full path if it is
// not below root
func (c Change) Rel(root string) string {
	rel, err := filepath.Rel(root, c.Path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return c.Path
	}
	if rel == "." {
		return filepath.Base(c.Path)
	}
	return rel
}

// Counts tallies changes per kind
type Counts struct {
	Created  int64 `json:"created"`
	Modified int64 `json:"modified"`
	Erased   int64 `json:"erased"`
}

// Add counts one change of the given kind
func (c *Counts) Add(kind observer.ChangeKind) {
	switch kind {
	case observer.Created:
		c.Created++
	case observer.Modified:
		c.Modified++
	case observer.Erased:
		c.Erased++
	}
}

// Total returns the number of changes of any kind
func (c Counts) Total() int64 {
	return c.Created + c.Modified + c.Erased
}
