package polinjectum

import (
	"log/slog"
	"os"
	"sync/atomic"
)

var defaultLogger atomic.Pointer[slog.Logger]

func init() {
	defaultLogger.Store(
		slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
	)
}

// SetLogger replaces the logger used for registration diagnostics.
func SetLogger(log *slog.Logger) {
	defaultLogger.Store(log)
}

func logger() *slog.Logger {
	return defaultLogger.Load()
}
