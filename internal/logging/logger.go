// Package logging defines the structured-logging interface used across the
// client and its charmbracelet/log implementation.
package logging

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
)

// Logger is a context-aware, structured logger. The variadic args are
// key–value pairs, e.g.:
//
//	logger.Info(ctx, "job submitted", "files", n, "date", date)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}

// CharmLogger adapts a charmbracelet logger to the Logger interface.
type CharmLogger struct {
	l *log.Logger
}

func NewCharmLogger(l *log.Logger) *CharmLogger {
	return &CharmLogger{l: l}
}

// NewDefault builds a stderr logger with the project's time format.
func NewDefault() *CharmLogger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
	})
	return NewCharmLogger(l)
}

func (c *CharmLogger) Debug(_ context.Context, msg string, args ...any) {
	c.l.Debug(msg, args...)
}

func (c *CharmLogger) Info(_ context.Context, msg string, args ...any) {
	c.l.Info(msg, args...)
}

func (c *CharmLogger) Warn(_ context.Context, msg string, args ...any) {
	c.l.Warn(msg, args...)
}

func (c *CharmLogger) Error(_ context.Context, msg string, args ...any) {
	c.l.Error(msg, args...)
}

func (c *CharmLogger) With(args ...any) Logger {
	return &CharmLogger{l: c.l.With(args...)}
}
