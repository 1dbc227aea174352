// Package repository implements persistence over per-tenant PostgreSQL stores.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alisettar/Attend/internal/domain"
)

// PoolProvider resolves the connection pool for the tenant bound to the
// request context
type PoolProvider interface {
	Pool(ctx context.Context) (*pgxpool.Pool, error)
}

// UserRepository defines user persistence operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByQRCode(ctx context.Context, qrCode string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	ExistsByPhone(ctx context.Context, phone, excludeID string) (bool, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	List(ctx context.Context, search string, limit, offset int) ([]*domain.User, error)
	Count(ctx context.Context, search string) (int64, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}

// EventRepository defines event persistence operations
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Event, error)
	GetUpcoming(ctx context.Context) ([]*domain.Event, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id string) error
}

// AttendanceDetail is an attendance joined with its user and event for
// listing screens
type AttendanceDetail struct {
	domain.Attendance
	UserName   string `json:"user_name"`
	UserPhone  string `json:"user_phone"`
	EventTitle string `json:"event_title"`
}

// EventAttendanceCount summarizes attendance volume for one event
type EventAttendanceCount struct {
	EventID   string `json:"event_id"`
	Title     string `json:"title"`
	Total     int64  `json:"total"`
	CheckedIn int64  `json:"checked_in"`
}

// UserAttendanceCount summarizes one participant's check-ins
type UserAttendanceCount struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	CheckedIn int64  `json:"checked_in"`
}

// AttendanceRepository defines attendance persistence operations
type AttendanceRepository interface {
	Create(ctx context.Context, attendance *domain.Attendance) error
	GetByID(ctx context.Context, id string) (*domain.Attendance, error)
	GetByUserAndEvent(ctx context.Context, userID, eventID string) (*domain.Attendance, error)
	GetActiveByUser(ctx context.Context, userID string) (*domain.Attendance, error)
	ListByEvent(ctx context.Context, eventID string, limit, offset int) ([]*AttendanceDetail, error)
	CountByEvent(ctx context.Context, eventID string) (int64, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*AttendanceDetail, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	CountByStatus(ctx context.Context, eventID string) (map[domain.AttendanceStatus]int64, error)
	TopEvents(ctx context.Context, limit int) ([]*EventAttendanceCount, error)
	TopUsers(ctx context.Context, limit int) ([]*UserAttendanceCount, error)
	Update(ctx context.Context, attendance *domain.Attendance) error
	Delete(ctx context.Context, id string) error
}
