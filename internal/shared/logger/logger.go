package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"

	"github.com/geofoncier/geofoncier/internal/shared/config"
)

var (
	root        *slog.Logger
	rootMu      sync.RWMutex
	atomicLevel = new(slog.LevelVar)
)

// ParseLevel maps a config level string to a slog level. Unknown values
// fall back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init builds the process logger. Records at or above cfg.SourceLevel
// (warn when unset) carry their call site; debug mode extends that to every
// level.
func Init(cfg *config.LoggerConfig, mode string) error {
	atomicLevel.Set(ParseLevel(cfg.Level))

	var writer io.Writer
	switch strings.ToLower(cfg.OutputPath) {
	case "stdout", "":
		writer = os.Stdout
	case "stderr":
		writer = os.Stderr
	default:
		file, err := os.OpenFile(cfg.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		writer = file
	}

	sourceLevel := slog.LevelWarn
	if cfg.SourceLevel != "" {
		sourceLevel = ParseLevel(cfg.SourceLevel)
	}
	if mode == "debug" {
		sourceLevel = slog.LevelDebug
	}

	var base slog.Handler
	if cfg.Format == "json" {
		base = slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: atomicLevel})
	} else {
		base = newTintHandler(writer, atomicLevel)
	}

	l := slog.New(newCallSiteHandler(base, sourceLevel))

	rootMu.Lock()
	root = l
	rootMu.Unlock()
	slog.SetDefault(l)

	return nil
}

func newTintHandler(w io.Writer, level slog.Leveler) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.DateTime,
		NoColor:    !isTerminal(w),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" && a.Value.Kind() == slog.KindAny {
				if err, ok := a.Value.Any().(error); ok {
					return tint.Err(err)
				}
			}
			return a
		},
	})
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

func SetLevel(level slog.Level) {
	atomicLevel.Set(level)
}

// Get returns the process logger, building a console logger on first use
// when Init was never called.
func Get() *slog.Logger {
	rootMu.RLock()
	l := root
	rootMu.RUnlock()
	if l != nil {
		return l
	}

	rootMu.Lock()
	defer rootMu.Unlock()
	if root == nil {
		root = slog.New(newCallSiteHandler(newTintHandler(os.Stdout, atomicLevel), slog.LevelWarn))
		slog.SetDefault(root)
	}
	return root
}

func WithComponent(component string) Interface {
	return NewLoggerWithSlog(Get().With("component", component))
}
