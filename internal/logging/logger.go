// Package logging owns the shared slog logger the cloum commands write
// through. The --verbose flag picks the level once during startup.
package logging

import (
	"io"
	"log/slog"
	"os"
)

//nolint:gochecknoglobals // CLI-wide logger selected by the --verbose flag
var defaultLogger = NewLogger(false)

// NewLogger builds a text logger on stderr, at debug level when verbose is
// set and info level otherwise.
func NewLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// SetVerbose rebuilds the shared logger at the requested level.
func SetVerbose(verbose bool) {
	defaultLogger = NewLogger(verbose)
}

// Get returns the shared logger.
func Get() *slog.Logger {
	return defaultLogger
}

// NewTestLogger creates a logger that discards everything, for tests.
func NewTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError + 1, // Higher than any real level = silent
	}
	return slog.New(slog.NewTextHandler(io.Discard, opts))
}
