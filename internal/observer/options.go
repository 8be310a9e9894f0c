package observer

import (
	"log/slog"

	"github.com/lumipallolabs/pollwatch/internal/scanner"
)

type config struct {
	logger     *slog.Logger
	enumerator scanner.Enumerator
	walkerOpts []scanner.WalkerOption
}

// Option configures an Observer
type Option func(*config)

// WithLogger sets the logger used for transient errors and debug output
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithIgnore excludes paths matching the doublestar patterns, relative to
// the target directory
func WithIgnore(patterns ...string) Option {
	return func(c *config) {
		c.walkerOpts = append(c.walkerOpts, scanner.WithIgnore(patterns...))
	}
}

// WithSameDevice keeps the walk on the filesystem holding the target
func WithSameDevice(enabled bool) Option {
	return func(c *config) {
		c.walkerOpts = append(c.walkerOpts, scanner.WithSameDevice(enabled))
	}
}

// WithEnumerator replaces the filesystem walker. Ignore and same-device
// options do not apply to a custom enumerator.
func WithEnumerator(e scanner.Enumerator) Option {
	return func(c *config) {
		c.enumerator = e
	}
}
