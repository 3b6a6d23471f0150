package logger

import (
	"io"
	"log/slog"
)

// NewTestHandler discards everything; tests only need a logger to exist.
func NewTestHandler(level slog.Level) slog.Handler {
	return slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: level})
}
