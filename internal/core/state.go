package core

import (
	"time"

	"github.com/lumipallolabs/pollwatch/internal/history"
	"github.com/lumipallolabs/pollwatch/internal/model"
)

// WatchPhase represents the current phase of watching
type WatchPhase int

const (
	PhaseIdle WatchPhase = iota
	PhaseWatching
	PhasePaused
	PhaseStopped
)

// String returns a human-readable phase name
func (p WatchPhase) String() string {
	switch p {
	case PhaseIdle:
		return ""
	case PhaseWatching:
		return "Watching"
	case PhasePaused:
		return "Paused"
	case PhaseStopped:
		return "Stopped"
	default:
		return ""
	}
}

// WatchState holds the current watch state
type WatchState struct {
	Phase     WatchPhase
	Target    string
	Interval  time.Duration
	StartTime time.Time
	Counts    model.Counts // This session
}

// IsWatching returns true while an observer is polling
func (s WatchState) IsWatching() bool {
	return s.Phase == PhaseWatching
}

// Elapsed returns time since watching started
func (s WatchState) Elapsed() time.Duration {
	if s.StartTime.IsZero() {
		return 0
	}
	return time.Since(s.StartTime).Truncate(time.Second)
}

// AppState holds the complete application state (read-only view)
type AppState struct {
	Watch    WatchState
	Lifetime model.Counts
	Previous *history.Session // Last saved session for the same target, if any
}
