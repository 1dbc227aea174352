package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/alisettar/Attend/internal/domain"
)

// PostgresAttendanceRepository implements AttendanceRepository using PostgreSQL
type PostgresAttendanceRepository struct {
	pools PoolProvider
}

// NewPostgresAttendanceRepository creates a new PostgresAttendanceRepository
func NewPostgresAttendanceRepository(pools PoolProvider) *PostgresAttendanceRepository {
	return &PostgresAttendanceRepository{pools: pools}
}

const attendanceColumns = `id, user_id, event_id, checked_in, checked_in_at, status, created_at`

func scanAttendance(row pgx.Row) (*domain.Attendance, error) {
	attendance := &domain.Attendance{}
	err := row.Scan(
		&attendance.ID,
		&attendance.UserID,
		&attendance.EventID,
		&attendance.CheckedIn,
		&attendance.CheckedInAt,
		&attendance.Status,
		&attendance.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return attendance, nil
}

// Create creates a new attendance record
func (r *PostgresAttendanceRepository) Create(ctx context.Context, attendance *domain.Attendance) error {
	pool, err := r.pools.Pool(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO attendances (id, user_id, event_id, checked_in, checked_in_at, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = pool.Exec(ctx, query,
		attendance.ID,
		attendance.UserID,
		attendance.EventID,
		attendance.CheckedIn,
		attendance.CheckedInAt,
		attendance.Status,
		attendance.CreatedAt,
	)
	return err
}

// GetByID retrieves an attendance by ID
func (r *PostgresAttendanceRepository) GetByID(ctx context.Context, id string) (*domain.Attendance, error) {
	pool, err := r.pools.Pool(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE id = $1`
	return scanAttendance(pool.QueryRow(ctx, query, id))
}

// GetByUserAndEvent retrieves the attendance for a user/event pair
func (r *PostgresAttendanceRepository) GetByUserAndEvent(ctx context.Context, userID, eventID string) (*domain.Attendance, error) {
	pool, err := r.pools.Pool(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE user_id = $1 AND event_id = $2`
	return scanAttendance(pool.QueryRow(ctx, query, userID, eventID))
}

// GetActiveByUser retrieves the user's open registration with the latest
// event date, so eventless scans check in against the current event
func (r *PostgresAttendanceRepository) GetActiveByUser(ctx context.Context, userID string) (*domain.Attendance, error) {
	pool, err := r.pools.Pool(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT a.id, a.user_id, a.event_id, a.checked_in, a.checked_in_at, a.status, a.created_at
		FROM attendances a
		JOIN events e ON e.id = a.event_id
		WHERE a.user_id = $1 AND a.status = $2
		ORDER BY e.date DESC
		LIMIT 1
	`
	return scanAttendance(pool.QueryRow(ctx, query, userID, domain.StatusRegistered))
}

// ListByEvent retrieves a page of an event's attendances joined with
// user details
func (r *PostgresAttendanceRepository) ListByEvent(ctx context.Context, eventID string, limit, offset int) ([]*AttendanceDetail, error) {
	pool, err := r.pools.Pool(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT a.id, a.user_id, a.event_id, a.checked_in, a.checked_in_at, a.status, a.created_at,
		       u.name, u.phone, e.title
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		JOIN events e ON e.id = a.event_id
		WHERE a.event_id = $1
		ORDER BY u.name
		LIMIT $2 OFFSET $3
	`
	rows, err := pool.Query(ctx, query, eventID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDetails(rows)
}

// CountByEvent returns the number of attendances for an event
func (r *PostgresAttendanceRepository) CountByEvent(ctx context.Context, eventID string) (int64, error) {
	pool, err := r.pools.Pool(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	err = pool.QueryRow(ctx, `SELECT COUNT(*) FROM attendances WHERE event_id = $1`, eventID).Scan(&count)
	return count, err
}

// ListByUser retrieves a page of a user's attendances joined with event
// details
func (r *PostgresAttendanceRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*AttendanceDetail, error) {
	pool, err := r.pools.Pool(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT a.id, a.user_id, a.event_id, a.checked_in, a.checked_in_at, a.status, a.created_at,
		       u.name, u.phone, e.title
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		JOIN events e ON e.id = a.event_id
		WHERE a.user_id = $1
		ORDER BY a.created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDetails(rows)
}

// CountByUser returns the number of attendances for a user
func (r *PostgresAttendanceRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	pool, err := r.pools.Pool(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	err = pool.QueryRow(ctx, `SELECT COUNT(*) FROM attendances WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

func collectDetails(rows pgx.Rows) ([]*AttendanceDetail, error) {
	details := make([]*AttendanceDetail, 0)
	for rows.Next() {
		d := &AttendanceDetail{}
		if err := rows.Scan(
			&d.ID,
			&d.UserID,
			&d.EventID,
			&d.CheckedIn,
			&d.CheckedInAt,
			&d.Status,
			&d.CreatedAt,
			&d.UserName,
			&d.UserPhone,
			&d.EventTitle,
		); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// CountByStatus returns attendance counts grouped by status. An empty event
// ID counts across all events.
func (r *PostgresAttendanceRepository) CountByStatus(ctx context.Context, eventID string) (map[domain.AttendanceStatus]int64, error) {
	pool, err := r.pools.Pool(ctx)
	if err != nil {
		return nil, err
	}

	var rows pgx.Rows
	if eventID == "" {
		rows, err = pool.Query(ctx, `SELECT status, COUNT(*) FROM attendances GROUP BY status`)
	} else {
		rows, err = pool.Query(ctx, `SELECT status, COUNT(*) FROM attendances WHERE event_id = $1 GROUP BY status`, eventID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.AttendanceStatus]int64)
	for rows.Next() {
		var status domain.AttendanceStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// TopEvents returns the busiest events by attendance volume
func (r *PostgresAttendanceRepository) TopEvents(ctx context.Context, limit int) ([]*EventAttendanceCount, error) {
	pool, err := r.pools.Pool(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT e.id, e.title, COUNT(*),
		       COUNT(*) FILTER (WHERE a.status = $1)
		FROM attendances a
		JOIN events e ON e.id = a.event_id
		GROUP BY e.id, e.title
		ORDER BY COUNT(*) DESC, e.title
		LIMIT $2
	`
	rows, err := pool.Query(ctx, query, domain.StatusCheckedIn, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*EventAttendanceCount, 0, limit)
	for rows.Next() {
		e := &EventAttendanceCount{}
		if err := rows.Scan(&e.EventID, &e.Title, &e.Total, &e.CheckedIn); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// TopUsers returns the participants with the most check-ins
func (r *PostgresAttendanceRepository) TopUsers(ctx context.Context, limit int) ([]*UserAttendanceCount, error) {
	pool, err := r.pools.Pool(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT u.id, u.name, COUNT(*)
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		WHERE a.status = $1
		GROUP BY u.id, u.name
		ORDER BY COUNT(*) DESC, u.name
		LIMIT $2
	`
	rows, err := pool.Query(ctx, query, domain.StatusCheckedIn, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*UserAttendanceCount, 0, limit)
	for rows.Next() {
		u := &UserAttendanceCount{}
		if err := rows.Scan(&u.UserID, &u.Name, &u.CheckedIn); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update updates an attendance record
func (r *PostgresAttendanceRepository) Update(ctx context.Context, attendance *domain.Attendance) error {
	pool, err := r.pools.Pool(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE attendances
		SET checked_in = $2, checked_in_at = $3, status = $4
		WHERE id = $1
	`
	_, err = pool.Exec(ctx, query,
		attendance.ID,
		attendance.CheckedIn,
		attendance.CheckedInAt,
		attendance.Status,
	)
	return err
}

// Delete deletes an attendance record
func (r *PostgresAttendanceRepository) Delete(ctx context.Context, id string) error {
	pool, err := r.pools.Pool(ctx)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	return err
}
