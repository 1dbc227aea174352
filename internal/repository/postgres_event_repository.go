package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/alisettar/Attend/internal/domain"
)

// PostgresEventRepository implements EventRepository using PostgreSQL
type PostgresEventRepository struct {
	pools PoolProvider
}

// NewPostgresEventRepository creates a new PostgresEventRepository
func NewPostgresEventRepository(pools PoolProvider) *PostgresEventRepository {
	return &PostgresEventRepository{pools: pools}
}

const eventColumns = `id, title, description, date, created_at`

func scanEvent(row pgx.Row) (*domain.Event, error) {
	event := &domain.Event{}
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Date,
		&event.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return event, nil
}

// Create creates a new event
func (r *PostgresEventRepository) Create(ctx context.Context, event *domain.Event) error {
	pool, err := r.pools.Pool(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO events (id, title, description, date, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = pool.Exec(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.Date,
		event.CreatedAt,
	)
	return err
}

// GetByID retrieves an event by ID
func (r *PostgresEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	pool, err := r.pools.Pool(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return scanEvent(pool.QueryRow(ctx, query, id))
}

// List retrieves events newest first
func (r *PostgresEventRepository) List(ctx context.Context, limit, offset int) ([]*domain.Event, error) {
	pool, err := r.pools.Pool(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + eventColumns + ` FROM events ORDER BY date DESC LIMIT $1 OFFSET $2`
	rows, err := pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEvents(rows)
}

// GetUpcoming retrieves events whose date is in the future, soonest first
func (r *PostgresEventRepository) GetUpcoming(ctx context.Context) ([]*domain.Event, error) {
	pool, err := r.pools.Pool(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + eventColumns + ` FROM events WHERE date > now() ORDER BY date ASC`
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEvents(rows)
}

func collectEvents(rows pgx.Rows) ([]*domain.Event, error) {
	events := make([]*domain.Event, 0)
	for rows.Next() {
		event := &domain.Event{}
		if err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Description,
			&event.Date,
			&event.CreatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// Count returns the total number of events
func (r *PostgresEventRepository) Count(ctx context.Context) (int64, error) {
	pool, err := r.pools.Pool(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	err = pool.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&count)
	return count, err
}

// Update updates an event
func (r *PostgresEventRepository) Update(ctx context.Context, event *domain.Event) error {
	pool, err := r.pools.Pool(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE events
		SET title = $2, description = $3, date = $4
		WHERE id = $1
	`
	_, err = pool.Exec(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.Date,
	)
	return err
}

// Delete deletes an event
func (r *PostgresEventRepository) Delete(ctx context.Context, id string) error {
	pool, err := r.pools.Pool(ctx)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	return err
}
