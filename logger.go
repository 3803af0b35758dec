package main

import (
	"log/slog"
	"os"
)

// NewLogger returns a structured slog.Logger with the given level. All
// output goes to stderr as JSON; stdout stays free for collaborators that
// consume the capture result.
func NewLogger(level slog.Leveler) *slog.Logger {
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}
