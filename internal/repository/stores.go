package repository

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/alisettar/Attend/internal/tenant"
	"github.com/alisettar/Attend/pkg/database"
	"github.com/alisettar/Attend/pkg/logger"
)

//go:embed schema.sql
var schemaSQL string

// Stores manages one connection pool per tenant. Pools are opened lazily
// on first use and the schema is applied before the pool is handed out.
type Stores struct {
	resolver *tenant.Resolver
	cfg      *database.PostgresConfig

	mu    sync.RWMutex
	pools map[string]*database.PostgresDB
}

// NewStores creates a store manager over the tenant resolver
func NewStores(resolver *tenant.Resolver, cfg *database.PostgresConfig) *Stores {
	if cfg == nil {
		cfg = database.DefaultPostgresConfig()
	}
	return &Stores{
		resolver: resolver,
		cfg:      cfg,
		pools:    make(map[string]*database.PostgresDB),
	}
}

// Pool returns the pool for the tenant bound to ctx. Requests without a
// bound tenant are rejected; there is no fallback store.
func (s *Stores) Pool(ctx context.Context) (*pgxpool.Pool, error) {
	tenantID, ok := tenant.FromContext(ctx)
	if !ok {
		return nil, tenant.ErrNoTenantBound
	}

	s.mu.RLock()
	db, exists := s.pools[tenantID]
	s.mu.RUnlock()
	if exists {
		return db.Pool, nil
	}

	return s.openPool(ctx, tenantID)
}

func (s *Stores) openPool(ctx context.Context, tenantID string) (*pgxpool.Pool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Another request may have opened the pool while we waited
	if db, exists := s.pools[tenantID]; exists {
		return db.Pool, nil
	}

	dsn, err := s.resolver.DSN(tenant.WithTenant(ctx, tenantID))
	if err != nil {
		return nil, err
	}

	db, err := database.Connect(ctx, dsn, s.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open store for tenant %s: %w", tenantID, err)
	}

	if _, err := db.Pool.Exec(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema for tenant %s: %w", tenantID, err)
	}

	s.pools[tenantID] = db
	logger.Info("opened tenant store", zap.String("tenant_id", tenantID))
	return db.Pool, nil
}

// Ping verifies every open tenant pool, returning the first failure
func (s *Stores) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, db := range s.pools {
		if err := db.Ping(ctx); err != nil {
			return fmt.Errorf("store for tenant %s unreachable: %w", id, err)
		}
	}
	return nil
}

// Close closes every open tenant pool
func (s *Stores) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, db := range s.pools {
		db.Close()
		delete(s.pools, id)
	}
}
