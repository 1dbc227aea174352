package tenant

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrTenantNotFound is returned when no tenant matches a hash or username
	ErrTenantNotFound = errors.New("tenant not found")
	// ErrUnknownTenant is returned when binding a tenant ID outside the directory
	ErrUnknownTenant = errors.New("unknown tenant")
	// ErrNoTenantBound is returned when a store is requested without a bound tenant
	ErrNoTenantBound = errors.New("no tenant bound to request")
)

// Resolver maps inbound request signals (hash, username, explicit ID) to
// tenant identities against the directory
type Resolver struct {
	dir *Directory
}

// NewResolver creates a resolver over the given directory
func NewResolver(dir *Directory) *Resolver {
	return &Resolver{dir: dir}
}

// Directory returns the underlying directory
func (r *Resolver) Directory() *Directory {
	return r.dir
}

// ResolveByHash returns the tenant ID whose public hash matches,
// case-insensitively
func (r *Resolver) ResolveByHash(hash string) (string, error) {
	if hash == "" {
		return "", ErrTenantNotFound
	}
	for id, cfg := range r.dir.tenants {
		if strings.EqualFold(cfg.Hash, hash) {
			return id, nil
		}
	}
	return "", ErrTenantNotFound
}

// ResolveByUsername returns the tenant ID whose authorized-user list
// contains the username, case-insensitively
func (r *Resolver) ResolveByUsername(username string) (string, error) {
	if username == "" {
		return "", ErrTenantNotFound
	}
	for id, cfg := range r.dir.tenants {
		for _, u := range cfg.Users {
			if strings.EqualFold(u, username) {
				return id, nil
			}
		}
	}
	return "", ErrTenantNotFound
}

// Bind validates the tenant ID against the directory and returns a context
// with the tenant bound for the remainder of the request
func (r *Resolver) Bind(ctx context.Context, tenantID string) (context.Context, error) {
	if !r.dir.Has(tenantID) {
		return ctx, ErrUnknownTenant
	}
	return WithTenant(ctx, tenantID), nil
}

// DSN returns the connection descriptor for the tenant bound to the
// context. Callers must treat ErrNoTenantBound as fatal; there is no
// implicit default store.
func (r *Resolver) DSN(ctx context.Context) (string, error) {
	id, ok := FromContext(ctx)
	if !ok {
		return "", ErrNoTenantBound
	}
	cfg, found := r.dir.Get(id)
	if !found {
		return "", ErrUnknownTenant
	}
	return cfg.DSN, nil
}

// foldKey lowercases a lookup key for case-insensitive matching
func foldKey(s string) string {
	return strings.ToLower(s)
}
