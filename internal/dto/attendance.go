package dto

import (
	"time"

	"github.com/alisettar/Attend/internal/domain"
	"github.com/alisettar/Attend/internal/repository"
)

// Check-in outcome labels returned to scanning clients
const (
	CheckInStatusCheckedIn        = "CheckedIn"
	CheckInStatusAlreadyCheckedIn = "AlreadyCheckedIn"
)

// RegisterAttendanceRequest represents request to register a participant
// for an event
type RegisterAttendanceRequest struct {
	UserID  string `json:"user_id" binding:"required,uuid"`
	EventID string `json:"event_id" binding:"required,uuid"`
}

// CheckInByQRCodeRequest represents a QR scan at the door
type CheckInByQRCodeRequest struct {
	QRCode  string `json:"qr_code" binding:"required"`
	EventID string `json:"event_id" binding:"omitempty,uuid"`
}

// CheckInResult represents the outcome of a QR scan
type CheckInResult struct {
	UserName     string `json:"user_name"`
	IsNewCheckIn bool   `json:"is_new_check_in"`
	Status       string `json:"status"`
}

// AttendanceResponse represents attendance data in response
type AttendanceResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	EventID     string `json:"event_id"`
	CheckedIn   bool   `json:"checked_in"`
	CheckedInAt string `json:"checked_in_at,omitempty"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

// NewAttendanceResponse maps a domain attendance to its response form
func NewAttendanceResponse(a *domain.Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		EventID:   a.EventID,
		CheckedIn: a.CheckedIn,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
	if a.CheckedInAt != nil {
		resp.CheckedInAt = a.CheckedInAt.Format(time.RFC3339)
	}
	return resp
}

// ListAttendancesQuery represents query parameters for attendance listings
type ListAttendancesQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// SetDefaults sets default values for query parameters
func (q *ListAttendancesQuery) SetDefaults() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 20
	}
}

// AttendanceDetailResponse represents an attendance joined with user and
// event details for listing screens
type AttendanceDetailResponse struct {
	AttendanceResponse
	UserName   string `json:"user_name"`
	UserPhone  string `json:"user_phone"`
	EventTitle string `json:"event_title"`
}

// NewAttendanceDetailResponse maps a joined attendance row to its response form
func NewAttendanceDetailResponse(d *repository.AttendanceDetail) AttendanceDetailResponse {
	return AttendanceDetailResponse{
		AttendanceResponse: NewAttendanceResponse(&d.Attendance),
		UserName:           d.UserName,
		UserPhone:          d.UserPhone,
		EventTitle:         d.EventTitle,
	}
}

// EventStatsResponse represents attendance counts for one event
type EventStatsResponse struct {
	EventID    string `json:"event_id"`
	EventTitle string `json:"event_title"`
	Registered int64  `json:"registered"`
	CheckedIn  int64  `json:"checked_in"`
	Cancelled  int64  `json:"cancelled"`
	Total      int64  `json:"total"`
}

// DashboardEventResponse represents one event in the dashboard's busiest list
type DashboardEventResponse struct {
	EventID     string `json:"event_id"`
	Title       string `json:"title"`
	Attendances int64  `json:"attendances"`
	CheckedIn   int64  `json:"checked_in"`
}

// DashboardUserResponse represents one participant in the dashboard's
// most-active list
type DashboardUserResponse struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	CheckIns int64  `json:"check_ins"`
}

// DashboardResponse represents tenant-wide attendance statistics
type DashboardResponse struct {
	TotalUsers       int64                    `json:"total_users"`
	TotalEvents      int64                    `json:"total_events"`
	TotalAttendances int64                    `json:"total_attendances"`
	TotalCheckedIn   int64                    `json:"total_checked_in"`
	TotalRegistered  int64                    `json:"total_registered"`
	TotalCancelled   int64                    `json:"total_cancelled"`
	CheckInRate      float64                  `json:"check_in_rate"`
	TopEvents        []DashboardEventResponse `json:"top_events"`
	TopUsers         []DashboardUserResponse  `json:"top_users"`
}
