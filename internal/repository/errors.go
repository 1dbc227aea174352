package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation. When constraint is non-empty, the violated constraint must
// match it.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != uniqueViolationCode {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// Names of the unique constraints enforced by the schema
const (
	ConstraintUserPhone           = "users_phone_key"
	ConstraintUserQRCode          = "users_qr_code_key"
	ConstraintUserEmail           = "users_email_key"
	ConstraintAttendanceUserEvent = "attendances_user_event_key"
)
