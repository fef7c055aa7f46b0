package viewport

import (
	"log/slog"
	"sync/atomic"
)

// logger holds the package-level logger. A nil value means discard.
var logger atomic.Pointer[slog.Logger]

// SetLogger configures the logger used by the engine.
// Pass nil to disable logging again.
//
// The engine only logs at debug level: resets, ignored updates and
// claimed/released gesture interactions.
//
//	viewport.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

// Logger returns the current engine logger.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
