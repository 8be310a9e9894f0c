package observer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/lumipallolabs/pollwatch/internal/logging"
	"github.com/lumipallolabs/pollwatch/internal/scanner"
)

// Target is the watched path and how often it is polled
type Target struct {
	Path     string
	Interval time.Duration
}

// Observer polls a Target and reports changes to a Handler
type Observer struct {
	target     Target
	handler    Handler
	enumerator scanner.Enumerator
	logger     *slog.Logger

	// Owned by the polling goroutine once it starts
	snap snapshot

	state  atomic.Int32
	stopCh chan struct{}
	done   chan struct{}
}

// New takes a baseline of path and starts polling it every interval.
// Files present now are never reported unless they change later. A path
// that does not exist yet is watched for creation. Interval zero polls
// continuously.
func New(path string, interval time.Duration, handler Handler, opts ...Option) (*Observer, error) {
	o, err := newObserver(path, interval, handler, opts...)
	if err != nil {
		return nil, err
	}
	go o.run()
	return o, nil
}

// newObserver validates the configuration and records the baseline
// without starting the polling goroutine
func newObserver(path string, interval time.Duration, handler Handler, opts ...Option) (*Observer, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if interval < 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, interval)
	}
	if handler == nil {
		return nil, ErrNilHandler
	}

	cfg := config{logger: logging.Observer}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logging.Discard()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("observer: resolve %s: %w", path, err)
	}

	if info, err := os.Stat(abs); err == nil {
		if !info.IsDir() && !info.Mode().IsRegular() {
			return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedTarget, abs, info.Mode().Type())
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("observer: stat %s: %w", abs, err)
	}

	enumerator := cfg.enumerator
	if enumerator == nil {
		w, err := scanner.NewWalker(cfg.walkerOpts...)
		if err != nil {
			return nil, fmt.Errorf("observer: %w", err)
		}
		enumerator = w
	}

	entries, err := enumerator.Enumerate(context.Background(), abs)
	if err != nil {
		return nil, fmt.Errorf("observer: enumerate %s: %w", abs, err)
	}

	o := &Observer{
		target:     Target{Path: abs, Interval: interval},
		handler:    handler,
		enumerator: enumerator,
		logger:     cfg.logger.With("target", abs),
		snap:       newSnapshot(entries),
		stopCh:     make(chan struct{}),
		done:       make(chan struct{}),
	}
	o.logger.Debug("baseline recorded", "entries", len(entries), "interval", interval)
	return o, nil
}

// Target returns the watched path and poll interval
func (o *Observer) Target() Target {
	return o.target
}

// State returns the current lifecycle state
func (o *Observer) State() State {
	return State(o.state.Load())
}

// Done is closed once the polling goroutine has exited
func (o *Observer) Done() <-chan struct{} {
	return o.done
}

// Stop asks the polling loop to finish and waits for it. A cycle already
// in progress runs to completion first. No Handler call happens after Stop
// returns. Stop may be called any number of times from any goroutine
// except the Handler's.
func (o *Observer) Stop() {
	if o.state.CompareAndSwap(int32(Running), int32(Stopping)) {
		close(o.stopCh)
	}
	<-o.done
}

// Close implements io.Closer
func (o *Observer) Close() error {
	o.Stop()
	return nil
}

func (o *Observer) running() bool {
	return o.State() == Running
}

// run is the polling loop
func (o *Observer) run() {
	defer close(o.done)
	defer o.state.Store(int32(Stopped))

	timer := time.NewTimer(o.target.Interval)
	defer timer.Stop()

	for o.running() {
		select {
		case <-timer.C:
		case <-o.stopCh:
			o.logger.Debug("polling stopped")
			return
		}

		if !o.running() {
			return
		}

		o.poll()
		timer.Reset(o.target.Interval)
	}
}

// poll runs one cycle: erasures first, then creations and modifications
func (o *Observer) poll() {
	o.snap.erase(o.enumerator.Exists, o.emit, o.logger)

	entries, err := o.enumerator.Enumerate(context.Background(), o.target.Path)
	if err != nil {
		o.logger.Warn("enumeration failed, retrying next cycle", "err", err)
		return
	}
	o.snap.merge(entries, o.emit)
}

func (o *Observer) emit(path string, kind ChangeKind) {
	o.logger.Debug("change", "path", path, "kind", kind)
	o.handler(path, kind)
}
