// Package log configures the process-wide slog logger used by all Procura services.
package log

import (
	"log/slog"
	"os"
)

// Setup installs the process default text logger. An unparseable level
// falls back to info so a typo in LOG_LEVEL never silences a service.
func Setup(logLevel string) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		level = slog.LevelInfo
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

// WithModule tags every record with the Procura module emitting it.
func WithModule(module string) *slog.Logger {
	return slog.With("module", module)
}
