// Package logging builds the slog loggers used across crux and wraps them so
// components can log unconditionally whether or not a logger was supplied.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Logger is a nil-safe handle on an optional *slog.Logger.
type Logger struct {
	L *slog.Logger
}

// New derives a component logger from parent. A nil parent yields a Logger
// that discards everything.
func New(parent *slog.Logger, component string) Logger {
	if parent == nil {
		return Logger{}
	}
	return Logger{L: parent.With(slog.String("component", component))}
}

// Enabled reports whether a record at level would be emitted.
func (l Logger) Enabled(level slog.Level) bool {
	return l.L != nil && l.L.Enabled(context.Background(), level)
}

func (l Logger) Log(level slog.Level, msg string, attrs ...slog.Attr) {
	if l.L == nil {
		return
	}
	l.L.LogAttrs(context.Background(), level, msg, attrs...)
}

// ParseLevel accepts debug, info, warn and error, case-insensitively.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// NewText returns a text logger writing to w at the named level.
func NewText(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
