package logger

import (
	"context"
	"log/slog"
)

// Interface is the structured logger handed to every component at
// construction. Arguments after msg alternate keys and values.
type Interface interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	With(keysAndValues ...interface{}) Interface
	// Named tags records with the subsystem under the "logger" key. Nested
	// names are joined with dots.
	Named(name string) Interface
}

type slogLogger struct {
	logger *slog.Logger
	// unnamed carries the same attributes without the "logger" key, so a
	// nested Named replaces the name instead of repeating it.
	unnamed *slog.Logger
	name    string
}

func NewLoggerWithSlog(l *slog.Logger) Interface {
	return &slogLogger{logger: l, unnamed: l}
}

func (l *slogLogger) log(level slog.Level, msg string, keysAndValues []interface{}) {
	ctx := context.Background()
	if !l.logger.Enabled(ctx, level) {
		return
	}
	l.logger.Log(ctx, level, msg, keysAndValues...)
}

func (l *slogLogger) Debugw(msg string, keysAndValues ...interface{}) {
	l.log(slog.LevelDebug, msg, keysAndValues)
}

func (l *slogLogger) Infow(msg string, keysAndValues ...interface{}) {
	l.log(slog.LevelInfo, msg, keysAndValues)
}

func (l *slogLogger) Warnw(msg string, keysAndValues ...interface{}) {
	l.log(slog.LevelWarn, msg, keysAndValues)
}

func (l *slogLogger) Errorw(msg string, keysAndValues ...interface{}) {
	l.log(slog.LevelError, msg, keysAndValues)
}

func (l *slogLogger) With(keysAndValues ...interface{}) Interface {
	return &slogLogger{
		logger:  l.logger.With(keysAndValues...),
		unnamed: l.unnamed.With(keysAndValues...),
		name:    l.name,
	}
}

func (l *slogLogger) Named(name string) Interface {
	full := name
	if l.name != "" {
		full = l.name + "." + name
	}
	return &slogLogger{
		logger:  l.unnamed.With("logger", full),
		unnamed: l.unnamed,
		name:    full,
	}
}

type nopLogger struct{}

// NewNop returns a logger that discards everything.
func NewNop() Interface { return nopLogger{} }

func (nopLogger) Debugw(string, ...interface{})   {}
func (nopLogger) Infow(string, ...interface{})    {}
func (nopLogger) Warnw(string, ...interface{})    {}
func (nopLogger) Errorw(string, ...interface{})   {}
func (n nopLogger) With(...interface{}) Interface { return n }
func (n nopLogger) Named(string) Interface        { return n }
