package logging

import (
	"context"

	"github.com/google/uuid"
)

type contextKey int

const requestIDKey contextKey = iota

// WithRequestID attaches a request ID to the context for downstream log
// correlation.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request ID stored in ctx, or empty.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// EnsureRequestID returns id when it is a well-formed UUID and a freshly
// generated one otherwise, so inbound headers cannot inject arbitrary
// strings into logs.
func EnsureRequestID(id string) string {
	if id != "" {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}
	return uuid.NewString()
}
