package services

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	queryKey     contextKey = "query"
)

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithQuery annotates context with the raw user query being served.
func WithQuery(ctx context.Context, query string) context.Context {
	if query == "" {
		return ctx
	}
	return context.WithValue(ctx, queryKey, query)
}

// QueryFromContext returns the raw user query if present.
func QueryFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(queryKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}
