// Package vlog provides the shared structured logger for the renderer core.
//
// The core is a library, not a program: by default it produces no output.
// Embedders (the transport server, test harnesses) call SetLogger to attach
// a real handler.
package vlog

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards all log records. Enabled returns false so callers
// skip attribute formatting entirely when no logger is attached.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger used by every renderer package.
// Pass nil to restore the silent default.
//
// Log levels used by this module:
//   - [slog.LevelInfo]: the example embedder's host-callback tracing
//     (cmd/vhostrenderer: GL context create/destroy, make_current, fences)
//   - [slog.LevelError]: decoder command failures (truncated or failed
//     commands), which set a context's in_error latch
//
// No Debug or Warn records are emitted.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
