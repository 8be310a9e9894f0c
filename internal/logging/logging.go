package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// DebugEnv enables debug logging to debug.log when set to any value
const DebugEnv = "POLLWATCH_DEBUG"

var (
	Debug    *slog.Logger
	Observer *slog.Logger
	Enabled  bool
)

func init() {
	// Only enable logging if POLLWATCH_DEBUG environment variable is set
	if os.Getenv(DebugEnv) == "" {
		Debug = Discard()
		Observer = Discard()
		Enabled = false
		return
	}

	Enabled = true

	// Open debug.log once for all loggers
	debugFile, err := os.OpenFile("debug.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		// Fallback to stderr if we can't open the file
		h := NewHandler(os.Stderr, slog.LevelDebug)
		Debug = slog.New(h).With("component", "debug")
		Observer = slog.New(h).With("component", "observer")
		return
	}

	// Loggers share the same file, tagged by component
	h := NewHandler(debugFile, slog.LevelDebug)
	Debug = slog.New(h).With("component", "debug")
	Observer = slog.New(h).With("component", "observer")
}

// NewHandler returns a tint handler writing to w. Colour is only used when w
// is a terminal.
func NewHandler(w io.Writer, level slog.Level) slog.Handler {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    noColor,
	})
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
