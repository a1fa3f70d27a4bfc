// Package middleware provides authentication, request logging, tracing, and
// rate limiting handlers for the HTTP layer.
package middleware

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
)

type contextKey string

// Context keys under which request-scoped identifiers travel.
const (
	RequestIDKey contextKey = "request_id"
	UserIDKey    contextKey = "user_id"
	TraceIDKey   contextKey = "trace_id"
)

// Logger is the process-wide structured logger. Callers use the *Context
// variants so request-scoped identifiers are attached to every record.
var Logger = newLogger()

func newLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var inner slog.Handler
	if os.Getenv("APP_ENV") == "production" {
		inner = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		inner = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(requestAttrHandler{inner})
}

// requestAttrHandler decorates records with the identifiers stored in the
// request context.
type requestAttrHandler struct {
	slog.Handler
}

func (h requestAttrHandler) Handle(ctx context.Context, rec slog.Record) error {
	for _, key := range []contextKey{RequestIDKey, UserIDKey, TraceIDKey} {
		if v, ok := ctx.Value(key).(string); ok {
			rec.AddAttrs(slog.String(string(key), v))
		}
	}
	return h.Handler.Handle(ctx, rec)
}

// ContextMiddleware copies the request id, user id, and trace id locals into
// the request context, so deeper layers can log them without threading Fiber
// types around.
func ContextMiddleware() fiber.Handler {
	locals := map[string]contextKey{
		"requestid": RequestIDKey,
		"userID":    UserIDKey,
		"traceID":   TraceIDKey,
	}

	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		for local, key := range locals {
			if v, ok := c.Locals(local).(string); ok {
				ctx = context.WithValue(ctx, key, v)
			}
		}
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// StructuredLogger emits one slog line per request with status and latency.
func StructuredLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		attrs := []any{
			slog.Int("status", c.Response().StatusCode()),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
			slog.Duration("latency", time.Since(start)),
			slog.String("user_agent", c.Get(fiber.HeaderUserAgent)),
		}
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
			Logger.ErrorContext(c.UserContext(), "request failed", attrs...)
			return err
		}

		Logger.InfoContext(c.UserContext(), "request processed", attrs...)
		return nil
	}
}
