package backend

import "context"

// ContextKey is the context key for the backend.
var ContextKey = struct{ string }{"backend"}

// FromContext returns the backend from the context.
func FromContext(ctx context.Context) *Backend {
	if b, ok := ctx.Value(ContextKey).(*Backend); ok {
		return b
	}
	return nil
}

// WithContext returns a new context with the backend attached.
func WithContext(ctx context.Context, b *Backend) context.Context {
	return context.WithValue(ctx, ContextKey, b)
}
