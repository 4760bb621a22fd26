// Package logging configures the operator-facing structured logger.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// New builds a slog.Logger writing to out. Format is "text" or "json"
// (defaulting to text); verbose lowers the level to debug.
func New(out io.Writer, format string, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		handler = slog.NewJSONHandler(out, opts)
	default:
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler)
}
