package logger

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
)

// loggerDir is this package's source directory. Frames from it belong to the
// Interface wrappers, not to the code that logged.
var loggerDir = func() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Dir(file)
}()

// callSiteHandler attaches the caller's source location to records at or
// above minLevel. The wrapped handler must not set AddSource itself.
type callSiteHandler struct {
	next     slog.Handler
	minLevel slog.Leveler
}

func newCallSiteHandler(next slog.Handler, minLevel slog.Leveler) slog.Handler {
	return &callSiteHandler{next: next, minLevel: minLevel}
}

func (h *callSiteHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *callSiteHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.minLevel.Level() {
		if src := callSite(); src != nil {
			r.AddAttrs(slog.Any(slog.SourceKey, src))
		}
	}
	return h.next.Handle(ctx, r)
}

func (h *callSiteHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &callSiteHandler{next: h.next.WithAttrs(attrs), minLevel: h.minLevel}
}

func (h *callSiteHandler) WithGroup(name string) slog.Handler {
	return &callSiteHandler{next: h.next.WithGroup(name), minLevel: h.minLevel}
}

// callSite returns the first frame outside log/slog and this package.
func callSite() *slog.Source {
	var pcs [16]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		if !strings.HasPrefix(f.Function, "log/slog.") && !isWrapperFrame(f.File) {
			return &slog.Source{Function: f.Function, File: f.File, Line: f.Line}
		}
		if !more {
			return nil
		}
	}
}

func isWrapperFrame(file string) bool {
	return filepath.Dir(file) == loggerDir && !strings.HasSuffix(file, "_test.go")
}
