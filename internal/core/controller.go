package core

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/lumipallolabs/pollwatch/internal/history"
	"github.com/lumipallolabs/pollwatch/internal/logging"
	"github.com/lumipallolabs/pollwatch/internal/model"
	"github.com/lumipallolabs/pollwatch/internal/observer"
	"github.com/lumipallolabs/pollwatch/internal/stats"
)

const (
	// DefaultMaxSession caps the in-memory change journal
	DefaultMaxSession = 10000

	// historyKeep is the number of saved sessions kept per target
	historyKeep = 10
)

// Config describes what the controller watches and where it persists
type Config struct {
	Target      string
	Interval    time.Duration
	Ignore      []string
	SameDevice  bool
	DetectTypes bool
	MaxSession  int
	StatsPath   string // empty disables lifetime stats
	HistoryDir  string // empty disables the session journal
}

// Controller manages the core application logic without UI dependencies
type Controller struct {
	// lifecycle serializes Start/Pause/Stop. It is never held while the
	// observer calls back, so Stop can wait for the polling goroutine.
	lifecycle sync.Mutex
	obs       *observer.Observer

	mu       sync.RWMutex
	cfg      Config
	watch    WatchState
	session  []model.Change
	previous *history.Session

	// Internal services
	statsManager *stats.Manager
	history      *history.History

	eventCh chan Event
}

// NewController creates a new application controller
func NewController(cfg Config) *Controller {
	if cfg.MaxSession <= 0 {
		cfg.MaxSession = DefaultMaxSession
	}
	if abs, err := filepath.Abs(cfg.Target); err == nil {
		cfg.Target = abs
	}

	c := &Controller{
		cfg:     cfg,
		eventCh: make(chan Event, 1024),
		watch: WatchState{
			Target:   cfg.Target,
			Interval: cfg.Interval,
		},
	}

	if cfg.StatsPath != "" {
		c.statsManager = stats.NewManager(cfg.StatsPath)
		if err := c.statsManager.Load(); err != nil {
			logging.Debug.Warn("failed to load stats", "err", err)
		}
	}

	if cfg.HistoryDir != "" {
		c.history = history.New(cfg.HistoryDir)
		if prev, err := c.history.LoadLatest(cfg.Target); err == nil {
			c.previous = prev
		}
	}

	return c
}

// Events returns the controller's event stream. Events are dropped when
// nobody keeps up with it.
func (c *Controller) Events() <-chan Event {
	return c.eventCh
}

// State returns a read-only snapshot of the current state
func (c *Controller) State() AppState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var lifetime model.Counts
	if c.statsManager != nil {
		lifetime = c.statsManager.Lifetime()
	}

	return AppState{
		Watch:    c.watch,
		Lifetime: lifetime,
		Previous: c.previous,
	}
}

// Session returns a copy of the changes seen since the controller was created
func (c *Controller) Session() []model.Change {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Change, len(c.session))
	copy(out, c.session)
	return out
}

// Start begins watching the configured target. Starting an already
// watching controller is a no-op. Resuming after Pause takes a fresh
// baseline, so changes made while paused are not reported.
func (c *Controller) Start() error {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	return c.startLocked()
}

// Rewatch stops the current observer, if any, and starts watching target
// with the same settings. The session journal and counters carry over.
func (c *Controller) Rewatch(target string) error {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	if abs, err := filepath.Abs(target); err == nil {
		target = abs
	}
	c.stopObserver(PhaseIdle)

	c.mu.Lock()
	c.cfg.Target = target
	c.watch.Target = target
	c.mu.Unlock()

	if c.history != nil {
		prev, err := c.history.LoadLatest(target)
		if err != nil {
			prev = nil
		}
		c.mu.Lock()
		c.previous = prev
		c.mu.Unlock()
	}

	return c.startLocked()
}

// startLocked creates the observer. Caller must hold lifecycle.
func (c *Controller) startLocked() error {
	if c.obs != nil {
		return nil
	}

	c.mu.RLock()
	cfg := c.cfg
	c.mu.RUnlock()

	opts := []observer.Option{
		observer.WithLogger(logging.Observer),
		observer.WithSameDevice(cfg.SameDevice),
	}
	if len(cfg.Ignore) > 0 {
		opts = append(opts, observer.WithIgnore(cfg.Ignore...))
	}

	obs, err := observer.New(cfg.Target, cfg.Interval, c.handleChange, opts...)
	if err != nil {
		c.emit(ErrorEvent{Err: err})
		return err
	}
	c.obs = obs

	c.mu.Lock()
	c.watch.Phase = PhaseWatching
	c.watch.Target = obs.Target().Path
	c.watch.StartTime = time.Now()
	c.mu.Unlock()

	if c.statsManager != nil {
		c.statsManager.SetLastTarget(obs.Target().Path)
	}

	logging.Debug.Info("watching", "target", obs.Target().Path, "interval", obs.Target().Interval)
	c.emit(WatchStartedEvent{Target: obs.Target().Path, Interval: obs.Target().Interval})
	return nil
}

// Pause stops polling but keeps the session
func (c *Controller) Pause() {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	if !c.stopObserver(PhasePaused) {
		return
	}
	c.emit(WatchStoppedEvent{Paused: true})
}

// Stop stops polling for good and persists the session and stats
func (c *Controller) Stop() {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	if c.State().Watch.Phase == PhaseStopped {
		return
	}
	c.stopObserver(PhaseStopped)

	c.mu.Lock()
	c.watch.Phase = PhaseStopped
	session := history.Session{
		Target:  c.watch.Target,
		Started: c.watch.StartTime,
		Ended:   time.Now(),
		Changes: append([]model.Change(nil), c.session...),
	}
	c.mu.Unlock()

	if c.history != nil && len(session.Changes) > 0 {
		if err := c.history.Save(session); err != nil {
			logging.Debug.Warn("failed to save session", "err", err)
		} else if err := c.history.Prune(session.Target, historyKeep); err != nil {
			logging.Debug.Warn("failed to prune history", "err", err)
		}
	}
	if c.statsManager != nil {
		if err := c.statsManager.Close(); err != nil {
			logging.Debug.Warn("failed to save stats", "err", err)
		}
	}

	c.emit(WatchStoppedEvent{})
}

// stopObserver stops the running observer, if any, and records phase.
// Caller must hold lifecycle.
func (c *Controller) stopObserver(phase WatchPhase) bool {
	if c.obs == nil {
		return false
	}
	c.obs.Stop()
	c.obs = nil

	c.mu.Lock()
	c.watch.Phase = phase
	c.mu.Unlock()
	return true
}

// handleChange runs on the observer's polling goroutine
func (c *Controller) handleChange(path string, kind observer.ChangeKind) {
	change := model.Change{Path: path, Kind: kind, At: time.Now()}
	if kind != observer.Erased {
		if info, err := os.Stat(path); err == nil {
			change.Size = info.Size()
		}
		if c.cfg.DetectTypes {
			change.Type = detectType(path)
		}
	}

	c.mu.Lock()
	c.watch.Counts.Add(kind)
	c.session = append(c.session, change)
	if over := len(c.session) - c.cfg.MaxSession; over > 0 {
		c.session = append(c.session[:0], c.session[over:]...)
	}
	c.mu.Unlock()

	if c.statsManager != nil {
		c.statsManager.Record(kind)
	}

	c.emit(ChangeDetectedEvent{Change: change})
}

// emit sends an event without blocking the caller
func (c *Controller) emit(event Event) {
	select {
	case c.eventCh <- event:
	default:
		// Channel full, drop event
	}
}
