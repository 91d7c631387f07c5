package ctxutil

import "context"

type ctxKey string

const (
	sevakIDKey   ctxKey = "sevak_id"
	requestIDKey ctxKey = "request_id"
)

// WithSevakID stores the sevak ID in the context.
func WithSevakID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sevakIDKey, id)
}

// SevakIDFromCtx extracts the sevak ID from the context.
// Returns "" and false if the value is missing or empty.
func SevakIDFromCtx(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sevakIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
