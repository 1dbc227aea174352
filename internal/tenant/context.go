package tenant

import (
	"context"
)

type contextKey struct{}

// WithTenant returns a context carrying the bound tenant ID. The binding is
// request-scoped; no process-wide current tenant exists.
func WithTenant(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, contextKey{}, tenantID)
}

// FromContext extracts the bound tenant ID from the context
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKey{}).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
