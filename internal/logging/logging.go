// Package logging builds the slog logger shared by every digest
// component. Output is text lines on stdout; the level comes from
// configuration and unknown values fall through to debug.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// New returns a text-handler logger at the given level.
func New(level string) *slog.Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return slog.New(handler)
}

func parseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "info":
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
