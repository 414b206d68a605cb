package logger

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ctxKey is an unexported type so no other package can collide with the
// logger entry in a context.Context.
type ctxKey struct{}

// echoKey is the echo context entry shared by ToEcho and FromEcho. Echo
// context keys are strings, so the coupling lives here instead of being
// spelled out at every call site.
const echoKey = "request_logger"

// WithContext returns a context carrying the logger
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from the context, falling back to the
// global logger when none was attached.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		return l
	}
	return GetLogger()
}

// ToEcho attaches a request-scoped logger to the echo context
func ToEcho(c echo.Context, l *zap.Logger) {
	c.Set(echoKey, l)
}

// FromEcho retrieves the request-scoped logger from the echo context,
// falling back to the global logger when none was attached.
func FromEcho(c echo.Context) *zap.Logger {
	if l, ok := c.Get(echoKey).(*zap.Logger); ok {
		return l
	}
	return GetLogger()
}
