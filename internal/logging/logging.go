// Package logging builds the structured logger shared by the server, the
// console and the event consumer.
package logging

import (
    "io"
    "log/slog"
    "os"
    "strings"

    "golang.org/x/term"
)

// New returns a logger writing to stderr.  Production and piped output
// use slog.JSONHandler so log shippers can parse it; an interactive
// terminal outside production gets slog.TextHandler.  LOG_LEVEL selects
// debug, info (default), warn or error.
func New(env string) *slog.Logger {
    json := strings.EqualFold(env, "prod") || !term.IsTerminal(int(os.Stderr.Fd()))
    return NewWithWriter(os.Stderr, json, ParseLevel(os.Getenv("LOG_LEVEL")))
}

// NewWithWriter is New with an explicit destination and format.
func NewWithWriter(w io.Writer, json bool, level slog.Level) *slog.Logger {
    options := &slog.HandlerOptions{Level: level}
    var handler slog.Handler
    if json {
        handler = slog.NewJSONHandler(w, options)
    } else {
        handler = slog.NewTextHandler(w, options)
    }
    return slog.New(handler)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
    return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
    switch strings.ToLower(strings.TrimSpace(s)) {
    case "debug":
        return slog.LevelDebug
    case "warn", "warning":
        return slog.LevelWarn
    case "error":
        return slog.LevelError
    }
    return slog.LevelInfo
}
