// Package logger builds the process-wide slog logger.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ekisa-team/plantx/internal/env"
)

type options struct {
	output    io.Writer
	level     *slog.Level
	logToFile bool
	logFile   string
	maxSizeMB int
	maxAge    int
	backups   int
}

// Option configures New.
type Option func(*options)

// WithOutput sets the console writer (defaults to os.Stderr).
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

// WithLevel overrides the environment's default level.
func WithLevel(level slog.Level) Option {
	return func(o *options) {
		o.level = &level
	}
}

// WithLogToFile tees log output into a rotating file.
func WithLogToFile(enabled bool) Option {
	return func(o *options) {
		o.logToFile = enabled
	}
}

// WithLogFile sets the rotating log file path.
func WithLogFile(path string) Option {
	return func(o *options) {
		o.logFile = path
	}
}

// WithRotation sets lumberjack rotation limits.
func WithRotation(maxSizeMB, maxAgeDays, backups int) Option {
	return func(o *options) {
		o.maxSizeMB = maxSizeMB
		o.maxAge = maxAgeDays
		o.backups = backups
	}
}

// New creates a logger for the given environment.
// Development logs are colourised text at debug level; production logs are JSON at info level.
func New(environment env.Environment, opts ...Option) *slog.Logger {
	o := &options{
		output:    os.Stderr,
		logFile:   "logs/plantx.log",
		maxSizeMB: 50,
		maxAge:    14,
		backups:   5,
	}
	for _, opt := range opts {
		opt(o)
	}

	level := slog.LevelDebug
	if environment.IsProduction() {
		level = slog.LevelInfo
	}
	if o.level != nil {
		level = *o.level
	}

	var handler slog.Handler
	if environment.IsProduction() {
		handler = slog.NewJSONHandler(o.output, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(o.output, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	}

	if o.logToFile && o.logFile != "" {
		file := &lumberjack.Logger{
			Filename:   o.logFile,
			MaxSize:    o.maxSizeMB,
			MaxAge:     o.maxAge,
			MaxBackups: o.backups,
			Compress:   true,
		}
		handler = fanout{
			handler,
			slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level}),
		}
	}

	return slog.New(handler)
}

// fanout sends every record to each handler.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
