package scanner

import (
	"context"
	"time"
)

// Entry is a leaf file found during enumeration
type Entry struct {
	Path    string
	ModTime time.Time
	Size    int64
}

// Enumerator lists the leaf files under a watch target
type Enumerator interface {
	// Enumerate returns every non-directory entry under root sorted by path.
	// A missing root yields an empty result and no error. Entries that
	// cannot be stat'ed are left out.
	Enumerate(ctx context.Context, root string) ([]Entry, error)

	// Exists reports whether path is still a leaf file. A non-nil error
	// means the answer is unknown for now.
	Exists(path string) (bool, error)
}
