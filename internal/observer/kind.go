package observer

// ChangeKind classifies a detected difference
type ChangeKind int

const (
	Created ChangeKind = iota
	Modified
	Erased
)

// String returns a human-readable kind name
func (k ChangeKind) String() string {
	switch k {
	case Created:
		return "created"
	case Modified:
		return "modified"
	case Erased:
		return "erased"
	default:
		return "unknown"
	}
}

// Handler receives one call per detected change. It runs on the polling
// goroutine, so a slow handler delays the next cycle and Stop. It must not
// call Stop on its own Observer.
type Handler func(path string, kind ChangeKind)

// State is the lifecycle state of the polling loop
type State int32

const (
	Running State = iota
	Stopping
	Stopped
)

// String returns a human-readable state name
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}
