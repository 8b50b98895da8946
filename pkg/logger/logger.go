package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	slogsentry "github.com/samber/slog-sentry/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Proton-105/warung-bot/pkg/config"
)

// Options configures New.
type Options struct {
	Logger config.LoggerConfig
	// Sentry enables the error-level fan-out to sentry. The sentry client must be initialised by the caller.
	Sentry bool
	// Output overrides stdout, used by tests.
	Output io.Writer
}

// New builds the application logger and returns the level var so the level can be changed at runtime.
func New(opts Options) (*slog.Logger, *slog.LevelVar) {
	level := new(slog.LevelVar)
	level.Set(ParseLevel(opts.Logger.Level))

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Logger.File != "" {
		out = io.MultiWriter(out, &lumberjack.Logger{
			Filename:   opts.Logger.File,
			MaxSize:    opts.Logger.MaxSizeMB,
			MaxBackups: opts.Logger.MaxBackups,
			MaxAge:     opts.Logger.MaxAgeDays,
			Compress:   true,
		})
	}

	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(opts.Logger.Format, "text") {
		handler = slog.NewTextHandler(out, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(out, handlerOpts)
	}

	if opts.Sentry {
		handler = newFanoutHandler(handler, slogsentry.Option{Level: slog.LevelError}.NewSentryHandler())
	}

	return slog.New(NewMaskingHandler(handler)), level
}

// ParseLevel maps a config level name to a slog level, defaulting to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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
