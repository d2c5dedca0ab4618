// Package logging builds the diagnostic logger used by every stage.
package logging

import (
	"io"
	"log/slog"
)

// New creates a logger writing to w. It does not set the global logger.
// Debug logs everything, quiet discards everything, and the default
// shows warnings and errors only.
func New(w io.Writer, debug, quiet bool) *slog.Logger {
	if quiet && !debug {
		return slog.New(slog.DiscardHandler)
	}

	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
	return slog.New(handler)
}
