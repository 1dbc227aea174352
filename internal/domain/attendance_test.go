package domain

import (
	"testing"
)

func TestAttendanceStatusIsTerminal(t *testing.T) {
	tests := []struct {
		status   AttendanceStatus
		expected bool
	}{
		{StatusRegistered, false},
		{StatusCheckedIn, true},
		{StatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.expected {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAttendanceStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name     string
		from     AttendanceStatus
		to       AttendanceStatus
		expected bool
	}{
		{"registered to checked_in", StatusRegistered, StatusCheckedIn, true},
		{"registered to cancelled", StatusRegistered, StatusCancelled, true},
		{"checked_in to cancelled", StatusCheckedIn, StatusCancelled, false},
		{"checked_in to registered", StatusCheckedIn, StatusRegistered, false},
		{"cancelled to checked_in", StatusCancelled, StatusCheckedIn, false},
		{"unknown status", AttendanceStatus("bogus"), StatusCheckedIn, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.expected {
				t.Errorf("CanTransitionTo() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNewAttendance(t *testing.T) {
	a, err := NewAttendance("user-1", "event-1")
	if err != nil {
		t.Fatalf("NewAttendance() error = %v", err)
	}

	if a.ID == "" {
		t.Error("expected ID to be generated")
	}
	if a.Status != StatusRegistered {
		t.Errorf("expected status %s, got %s", StatusRegistered, a.Status)
	}
	if a.CheckedIn {
		t.Error("expected checked_in to be false")
	}
	if a.CheckedInAt != nil {
		t.Error("expected checked_in_at to be nil")
	}
}

func TestNewAttendance_MissingIDs(t *testing.T) {
	if _, err := NewAttendance("", "event-1"); err != ErrUserIDRequired {
		t.Errorf("expected ErrUserIDRequired, got %v", err)
	}
	if _, err := NewAttendance("user-1", ""); err != ErrEventIDRequired {
		t.Errorf("expected ErrEventIDRequired, got %v", err)
	}
}

func TestAttendanceCheckIn(t *testing.T) {
	a, _ := NewAttendance("user-1", "event-1")

	if err := a.CheckIn(); err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}

	if !a.CheckedIn {
		t.Error("expected checked_in to be true")
	}
	if a.CheckedInAt == nil {
		t.Error("expected checked_in_at to be stamped")
	}
	if a.Status != StatusCheckedIn {
		t.Errorf("expected status %s, got %s", StatusCheckedIn, a.Status)
	}
}

func TestAttendanceCheckIn_Twice(t *testing.T) {
	a, _ := NewAttendance("user-1", "event-1")
	_ = a.CheckIn()

	if err := a.CheckIn(); err != ErrAlreadyCheckedIn {
		t.Errorf("expected ErrAlreadyCheckedIn, got %v", err)
	}
	if a.Status != StatusCheckedIn {
		t.Errorf("status changed on failed check-in: %s", a.Status)
	}
}

func TestAttendanceCheckIn_Cancelled(t *testing.T) {
	a, _ := NewAttendance("user-1", "event-1")
	_ = a.Cancel()

	if err := a.CheckIn(); err != ErrAttendanceCancelled {
		t.Errorf("expected ErrAttendanceCancelled, got %v", err)
	}
	if a.Status != StatusCancelled {
		t.Errorf("status changed on failed check-in: %s", a.Status)
	}
	if a.CheckedIn {
		t.Error("checked_in flag set on failed check-in")
	}
}

func TestAttendanceCancel(t *testing.T) {
	a, _ := NewAttendance("user-1", "event-1")

	if err := a.Cancel(); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if a.Status != StatusCancelled {
		t.Errorf("expected status %s, got %s", StatusCancelled, a.Status)
	}
	if a.CheckedIn {
		t.Error("expected checked_in to remain false")
	}
}

func TestAttendanceCancel_AfterCheckIn(t *testing.T) {
	a, _ := NewAttendance("user-1", "event-1")
	_ = a.CheckIn()

	if err := a.Cancel(); err != ErrCancelAfterCheckIn {
		t.Errorf("expected ErrCancelAfterCheckIn, got %v", err)
	}
	if a.Status != StatusCheckedIn {
		t.Errorf("status changed on failed cancel: %s", a.Status)
	}
}
