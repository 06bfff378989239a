package sketch

import (
	"log/slog"
	"sync/atomic"
)

var (
	discard = slog.New(slog.DiscardHandler)
	current atomic.Pointer[slog.Logger]
)

// SetLogger sends the log output of sketch, render and app to l.
// Nothing is logged until it is called; SetLogger(nil) silences logging again.
//
// Frame statistics are logged at Debug. Renderer and window lifecycle
// events are logged at Info, and skipped frames at Warn.
//
//	sketch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
func SetLogger(l *slog.Logger) {
	current.Store(l)
}

// Logger returns the logger set with SetLogger, or one that discards
// everything. It may be called from any goroutine.
func Logger() *slog.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	return discard
}
