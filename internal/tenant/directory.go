// Package tenant implements the tenant directory and request-scoped tenant
// resolution for the multi-tenant store layout.
package tenant

import (
	"fmt"
	"sort"
)

// Config describes one tenant as loaded from configuration.
// Records are immutable after load.
type Config struct {
	Name      string   `json:"name" mapstructure:"name"`
	Hash      string   `json:"hash" mapstructure:"hash"`
	DSN       string   `json:"dsn" mapstructure:"dsn"`
	Users     []string `json:"users" mapstructure:"users"`
	GroupLink string   `json:"group_link,omitempty" mapstructure:"group_link"`
}

// Directory is the read-only registry of tenants keyed by tenant ID
type Directory struct {
	tenants map[string]Config
}

// NewDirectory builds a directory from configuration. Tenant hashes must be
// non-empty and unique so that public registration links stay unambiguous.
func NewDirectory(tenants map[string]Config) (*Directory, error) {
	if len(tenants) == 0 {
		return nil, fmt.Errorf("tenant directory is empty")
	}

	seenHashes := make(map[string]string, len(tenants))
	for id, cfg := range tenants {
		if cfg.Hash == "" {
			return nil, fmt.Errorf("tenant %q has no hash", id)
		}
		if cfg.DSN == "" {
			return nil, fmt.Errorf("tenant %q has no connection descriptor", id)
		}
		if other, dup := seenHashes[foldKey(cfg.Hash)]; dup {
			return nil, fmt.Errorf("tenants %q and %q share hash %q", other, id, cfg.Hash)
		}
		seenHashes[foldKey(cfg.Hash)] = id
	}

	copied := make(map[string]Config, len(tenants))
	for id, cfg := range tenants {
		copied[id] = cfg
	}
	return &Directory{tenants: copied}, nil
}

// Get returns the configuration for a tenant ID
func (d *Directory) Get(id string) (Config, bool) {
	cfg, ok := d.tenants[id]
	return cfg, ok
}

// Has reports whether the tenant ID exists
func (d *Directory) Has(id string) bool {
	_, ok := d.tenants[id]
	return ok
}

// IDs returns all tenant IDs in stable order
func (d *Directory) IDs() []string {
	ids := make([]string, 0, len(d.tenants))
	for id := range d.tenants {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
