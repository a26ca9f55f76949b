// Package logger holds the logger shared by the okpaper packages.
// It is silent by default.
package logger

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/gg"
)

// nopHandler is a slog.Handler that silently discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// Set configures the logger, and propagates it to the gg backend.
// Pass nil to restore the silent default.
func Set(l *slog.Logger) {
	gg.SetLogger(l)
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Get returns the current logger. It is safe for concurrent use.
func Get() *slog.Logger { return loggerPtr.Load() }
