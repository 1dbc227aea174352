package domain

import (
	"errors"
	"time"
)

// AttendanceStatus represents the lifecycle state of an attendance record
type AttendanceStatus string

const (
	StatusRegistered AttendanceStatus = "registered"
	StatusCheckedIn  AttendanceStatus = "checked_in"
	StatusCancelled  AttendanceStatus = "cancelled"
)

var (
	// ErrUserIDRequired is returned when an attendance is created without a user
	ErrUserIDRequired = errors.New("user ID is required")
	// ErrEventIDRequired is returned when an attendance is created without an event
	ErrEventIDRequired = errors.New("event ID is required")
	// ErrAlreadyCheckedIn is returned when checking in an attendance twice
	ErrAlreadyCheckedIn = errors.New("already checked in")
	// ErrAttendanceCancelled is returned when checking in a cancelled attendance
	ErrAttendanceCancelled = errors.New("cannot check in cancelled attendance")
	// ErrCancelAfterCheckIn is returned when cancelling after check-in
	ErrCancelAfterCheckIn = errors.New("cannot cancel after check-in")
)

// validTransitions defines allowed status transitions
// Key is current status, value is list of allowed next statuses
var validTransitions = map[AttendanceStatus][]AttendanceStatus{
	StatusRegistered: {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn:  {}, // Terminal state
	StatusCancelled:  {}, // Terminal state
}

// IsTerminal returns true if the status is a terminal status
func (s AttendanceStatus) IsTerminal() bool {
	return s == StatusCheckedIn || s == StatusCancelled
}

// IsValid returns true if the status is a known attendance status
func (s AttendanceStatus) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if transition to the target status is allowed
func (s AttendanceStatus) CanTransitionTo(target AttendanceStatus) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, next := range allowed {
		if next == target {
			return true
		}
	}
	return false
}

// Attendance links one user to one event with a lifecycle status.
// At most one attendance exists per (user, event) pair; the pair carries
// a unique constraint in storage.
type Attendance struct {
	ID          string           `json:"id"`
	UserID      string           `json:"user_id"`
	EventID     string           `json:"event_id"`
	CheckedIn   bool             `json:"checked_in"`
	CheckedInAt *time.Time       `json:"checked_in_at,omitempty"`
	Status      AttendanceStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
}

// NewAttendance creates an attendance in the registered state
func NewAttendance(userID, eventID string) (*Attendance, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	if eventID == "" {
		return nil, ErrEventIDRequired
	}

	return &Attendance{
		ID:        generateID(),
		UserID:    userID,
		EventID:   eventID,
		CheckedIn: false,
		Status:    StatusRegistered,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// CheckIn transitions the attendance to checked-in and stamps the current
// UTC time. Calling it on an already checked-in or cancelled attendance is
// an error; idempotent re-scan handling is the caller's job.
func (a *Attendance) CheckIn() error {
	if a.CheckedIn {
		return ErrAlreadyCheckedIn
	}
	if a.Status == StatusCancelled {
		return ErrAttendanceCancelled
	}

	now := time.Now().UTC()
	a.CheckedIn = true
	a.CheckedInAt = &now
	a.Status = StatusCheckedIn
	return nil
}

// Cancel transitions the attendance to cancelled. Only registered
// attendances can be cancelled.
func (a *Attendance) Cancel() error {
	if a.CheckedIn {
		return ErrCancelAfterCheckIn
	}

	a.Status = StatusCancelled
	return nil
}
