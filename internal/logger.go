package internal

import (
	"log/slog"
	"os"
)

// NewLogger builds the process logger from the configured level string.
// An unknown level falls back to INFO rather than failing startup.
func NewLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
