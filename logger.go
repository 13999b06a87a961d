package blur

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discardHandler drops every record and reports every level as disabled, so
// log calls in the run path cost one Enabled check.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func silentLogger() *slog.Logger { return slog.New(discardHandler{}) }

// pkgLogger is read by every Orchestrator without its own WithLogger.
var pkgLogger atomic.Pointer[slog.Logger]

func init() {
	pkgLogger.Store(silentLogger())
}

// SetLogger sets the logger used by Orchestrators created without
// WithLogger, including the temporary ones behind Convolve. A nil logger
// silences the package again, which is also the default.
//
// Records written by an Orchestrator:
//
//	Debug "blur: worker pool started"  workers, partition
//	Debug "blur: convolution done"     width, height, kernel ("WxH"), ranges, elapsed
//	Warn  "blur: convolution failed"   width, height, err
//	Debug "blur: worker pool stopped"  workers
//
// One "convolution done" record is written per pass of RunPasses.
// SetLogger may be called while runs are in flight.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silentLogger()
	}
	pkgLogger.Store(l)
}

// Logger returns the package-wide logger set by SetLogger.
func Logger() *slog.Logger {
	return pkgLogger.Load()
}
