// Package logger provides a structured, levelled logger built on log/slog.
//
// Output goes to stderr so command output on stdout stays pipeable. Commands
// attach a logger carrying the command path and operator login to their
// context, and the domain services pick it up with WithCtx:
//
//	log := logger.WithCtx(ctx)
//	log.Info("order confirmed", "order_id", id, "total", total)
//	// → time=... level=INFO msg="order confirmed" command="cafe order create" user=anna order_id=7 total=12.5
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/shashiranjanraj/cafedesk/config"
)

var L *slog.Logger

func init() {
	L = New(config.AppEnv(), config.LogLevel(), os.Stderr)
	slog.SetDefault(L)
}

// New builds a logger for env. Production environments get JSON at INFO,
// everything else gets text at DEBUG. A non-empty level overrides the default.
func New(env, level string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{}

	var handler slog.Handler
	switch env {
	case "production", "prod":
		opts.Level = parseLevel(level, slog.LevelInfo)
		handler = slog.NewJSONHandler(w, opts)
	default:
		opts.Level = parseLevel(level, slog.LevelDebug)
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

func parseLevel(s string, fallback slog.Level) slog.Level {
	if s == "" {
		return fallback
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return fallback
	}
	return lvl
}

// Discard returns a logger that drops every record. Handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ─────────────────────────────────────────────
// Context-aware logger
// ─────────────────────────────────────────────

type ctxKey struct{}

// WithCtx returns the logger stored in ctx by InjectLogger, or the base
// logger when there is none.
func WithCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return L
	}
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores log in ctx. The CLI does this once per command.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// ─────────────────────────────────────────────
// Short-hand helpers (use base logger)
// ─────────────────────────────────────────────

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
