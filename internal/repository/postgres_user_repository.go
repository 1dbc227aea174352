package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/alisettar/Attend/internal/domain"
)

// PostgresUserRepository implements UserRepository using PostgreSQL
type PostgresUserRepository struct {
	pools PoolProvider
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(pools PoolProvider) *PostgresUserRepository {
	return &PostgresUserRepository{pools: pools}
}

const userColumns = `id, name, email, phone, qr_code, qr_code_image, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.QRCode,
		&user.QRCodeImage,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// Create creates a new user
func (r *PostgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	pool, err := r.pools.Pool(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO users (id, name, email, phone, qr_code, qr_code_image, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.Phone,
		user.QRCode,
		user.QRCodeImage,
		user.CreatedAt,
	)
	return err
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	pool, err := r.pools.Pool(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(pool.QueryRow(ctx, query, id))
}

// GetByQRCode retrieves a user by QR code payload
func (r *PostgresUserRepository) GetByQRCode(ctx context.Context, qrCode string) (*domain.User, error) {
	pool, err := r.pools.Pool(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE qr_code = $1`
	return scanUser(pool.QueryRow(ctx, query, qrCode))
}

// GetByPhone retrieves a user by normalized phone number
func (r *PostgresUserRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	pool, err := r.pools.Pool(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE phone = $1`
	return scanUser(pool.QueryRow(ctx, query, phone))
}

// ExistsByPhone checks whether another user already holds the phone number
func (r *PostgresUserRepository) ExistsByPhone(ctx context.Context, phone, excludeID string) (bool, error) {
	pool, err := r.pools.Pool(ctx)
	if err != nil {
		return false, err
	}

	var exists bool
	if excludeID == "" {
		query := `SELECT EXISTS(SELECT 1 FROM users WHERE phone = $1)`
		err = pool.QueryRow(ctx, query, phone).Scan(&exists)
	} else {
		query := `SELECT EXISTS(SELECT 1 FROM users WHERE phone = $1 AND id <> $2)`
		err = pool.QueryRow(ctx, query, phone, excludeID).Scan(&exists)
	}
	return exists, err
}

// ExistsByEmail checks whether another user already holds the email address
func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	pool, err := r.pools.Pool(ctx)
	if err != nil {
		return false, err
	}

	var exists bool
	if excludeID == "" {
		query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND email <> '')`
		err = pool.QueryRow(ctx, query, email).Scan(&exists)
	} else {
		query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND email <> '' AND id <> $2)`
		err = pool.QueryRow(ctx, query, email, excludeID).Scan(&exists)
	}
	return exists, err
}

// List retrieves users ordered by name, optionally filtered by a
// name/phone search term
func (r *PostgresUserRepository) List(ctx context.Context, search string, limit, offset int) ([]*domain.User, error) {
	pool, err := r.pools.Pool(ctx)
	if err != nil {
		return nil, err
	}

	var rows pgx.Rows
	if search == "" {
		query := `SELECT ` + userColumns + ` FROM users ORDER BY name LIMIT $1 OFFSET $2`
		rows, err = pool.Query(ctx, query, limit, offset)
	} else {
		query := `
			SELECT ` + userColumns + ` FROM users
			WHERE name ILIKE '%' || $1 || '%' OR phone LIKE '%' || $1 || '%'
			ORDER BY name LIMIT $2 OFFSET $3
		`
		rows, err = pool.Query(ctx, query, search, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user := &domain.User{}
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.Phone,
			&user.QRCode,
			&user.QRCodeImage,
			&user.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Count returns the number of users matching the search term, or all
// users when the term is empty
func (r *PostgresUserRepository) Count(ctx context.Context, search string) (int64, error) {
	pool, err := r.pools.Pool(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	if search == "" {
		err = pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	} else {
		query := `SELECT COUNT(*) FROM users WHERE name ILIKE '%' || $1 || '%' OR phone LIKE '%' || $1 || '%'`
		err = pool.QueryRow(ctx, query, search).Scan(&count)
	}
	return count, err
}

// Update updates a user
func (r *PostgresUserRepository) Update(ctx context.Context, user *domain.User) error {
	pool, err := r.pools.Pool(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE users
		SET name = $2, email = $3, phone = $4, qr_code_image = $5
		WHERE id = $1
	`
	_, err = pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.Phone,
		user.QRCodeImage,
	)
	return err
}

// Delete deletes a user
func (r *PostgresUserRepository) Delete(ctx context.Context, id string) error {
	pool, err := r.pools.Pool(ctx)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}
