// Package log constructs the application's structured loggers.
//
// All components log through log/slog; this package only decides the
// handler, level, and shared attributes so the CLI and tests configure
// logging in one place.
package log

import (
	"io"
	"log/slog"
)

// New returns a text-handler logger writing to w. Verbose enables
// debug-level records; otherwise only info and above are emitted.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything. Used by tests and as
// a nil-safe default.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
