package observer

import (
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/lumipallolabs/pollwatch/internal/scanner"
)

// snapshot maps an absolute path to the modification time seen at the
// last poll. Only the polling goroutine touches it after construction.
type snapshot map[string]time.Time

func newSnapshot(entries []scanner.Entry) snapshot {
	s := make(snapshot, len(entries))
	for _, e := range entries {
		s[e.Path] = e.ModTime
	}
	return s
}

// erase drops every tracked path that no longer exists and reports it.
// A path whose existence can't be determined is kept for the next cycle.
func (s snapshot) erase(exists func(string) (bool, error), emit Handler, logger *slog.Logger) {
	for _, path := range slices.Sorted(maps.Keys(s)) {
		ok, err := exists(path)
		if err != nil {
			logger.Debug("existence check failed", "path", path, "err", err)
			continue
		}
		if ok {
			continue
		}
		emit(path, Erased)
		delete(s, path)
	}
}

// merge records the current enumeration, reporting new paths and paths
// whose timestamp moved
func (s snapshot) merge(entries []scanner.Entry, emit Handler) {
	for _, e := range entries {
		prev, tracked := s[e.Path]
		switch {
		case !tracked:
			s[e.Path] = e.ModTime
			emit(e.Path, Created)
		case !prev.Equal(e.ModTime):
			s[e.Path] = e.ModTime
			emit(e.Path, Modified)
		}
	}
}
