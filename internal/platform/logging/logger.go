// Package logging configures the process-wide slog logger and the gin
// middleware that tags every request with an ID.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

const (
	envLocal = "local"
	envDev   = "dev"
)

type ctxKey struct{}

// WithRequestID returns a context carrying id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID returns the request ID stored in ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// New builds a logger for env: text output for local, JSON otherwise.
// level overrides the env default when it parses ("debug", "info", "warn", "error").
func New(env, level string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: defaultLevel(env)}
	if lvl, ok := parseLevel(level); ok {
		opts.Level = lvl
	}

	var h slog.Handler
	if env == envLocal {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(&contextHandler{Handler: h})
}

func defaultLevel(env string) slog.Level {
	switch env {
	case envLocal, envDev:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

func parseLevel(s string) (slog.Level, bool) {
	if strings.TrimSpace(s) == "" {
		return 0, false
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, false
	}
	return lvl, true
}

// contextHandler adds the request ID from the context to every record.
type contextHandler struct {
	slog.Handler
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := RequestID(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name)}
}
