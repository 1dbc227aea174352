package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/alisettar/Attend/internal/apperr"
	"github.com/alisettar/Attend/internal/domain"
	"github.com/alisettar/Attend/internal/dto"
	"github.com/alisettar/Attend/internal/repository"
	"github.com/alisettar/Attend/pkg/logger"
)

// AttendanceService defines registration and check-in operations
type AttendanceService interface {
	// Register creates a registration for a participant and event
	Register(ctx context.Context, req *dto.RegisterAttendanceRequest) (*dto.AttendanceResponse, error)
	// CheckInByQRCode handles a QR scan against a specific event. Unknown
	// registrations become walk-ins; repeated scans are idempotent.
	CheckInByQRCode(ctx context.Context, req *dto.CheckInByQRCodeRequest) (*dto.CheckInResult, error)
	// CheckIn checks in an attendance by ID
	CheckIn(ctx context.Context, id string) (*dto.AttendanceResponse, error)
	// Cancel cancels a registration
	Cancel(ctx context.Context, id string) (*dto.AttendanceResponse, error)
	// GetByID retrieves an attendance by ID
	GetByID(ctx context.Context, id string) (*dto.AttendanceResponse, error)
	// Delete removes an attendance record
	Delete(ctx context.Context, id string) error
	// ListByEvent retrieves a page of an event's attendances with user details
	ListByEvent(ctx context.Context, eventID string, query *dto.ListAttendancesQuery) ([]dto.AttendanceDetailResponse, int64, error)
	// ListByUser retrieves a page of a participant's attendances with event details
	ListByUser(ctx context.Context, userID string, query *dto.ListAttendancesQuery) ([]dto.AttendanceDetailResponse, int64, error)
	// EventStats returns attendance counts for one event
	EventStats(ctx context.Context, eventID string) (*dto.EventStatsResponse, error)
}

type attendanceService struct {
	attendanceRepo repository.AttendanceRepository
	userRepo       repository.UserRepository
	eventRepo      repository.EventRepository
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(
	attendanceRepo repository.AttendanceRepository,
	userRepo repository.UserRepository,
	eventRepo repository.EventRepository,
) AttendanceService {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		eventRepo:      eventRepo,
	}
}

func (s *attendanceService) Register(ctx context.Context, req *dto.RegisterAttendanceRequest) (*dto.AttendanceResponse, error) {
	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("Participant not found")
	}

	event, err := s.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperr.NotFound("Event not found")
	}

	existing, err := s.attendanceRepo.GetByUserAndEvent(ctx, req.UserID, req.EventID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("Already registered")
	}

	attendance, err := domain.NewAttendance(req.UserID, req.EventID)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	if err := s.attendanceRepo.Create(ctx, attendance); err != nil {
		// Concurrent registration for the same pair loses the race here
		if repository.IsUniqueViolation(err, repository.ConstraintAttendanceUserEvent) {
			return nil, apperr.Conflict("Already registered").WithCause(err)
		}
		return nil, err
	}

	resp := dto.NewAttendanceResponse(attendance)
	return &resp, nil
}

func (s *attendanceService) CheckInByQRCode(ctx context.Context, req *dto.CheckInByQRCodeRequest) (*dto.CheckInResult, error) {
	user, err := s.userRepo.GetByQRCode(ctx, req.QRCode)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("Invalid QR code")
	}

	if req.EventID == "" {
		return s.checkInActive(ctx, user)
	}

	event, err := s.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperr.NotFound("Event not found")
	}

	attendance, err := s.attendanceRepo.GetByUserAndEvent(ctx, user.ID, req.EventID)
	if err != nil {
		return nil, err
	}

	if attendance == nil {
		return s.walkIn(ctx, user, req.EventID)
	}

	if attendance.Status == domain.StatusCheckedIn {
		return &dto.CheckInResult{
			UserName:     user.Name,
			IsNewCheckIn: false,
			Status:       dto.CheckInStatusAlreadyCheckedIn,
		}, nil
	}

	if err := attendance.CheckIn(); err != nil {
		return nil, stateError(err)
	}
	if err := s.attendanceRepo.Update(ctx, attendance); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "participant checked in",
		zap.String("user_id", user.ID),
		zap.String("event_id", req.EventID),
	)

	// IsNewCheckIn marks walk-in records only; this participant was
	// pre-registered, so scanners show a plain check-in
	return &dto.CheckInResult{
		UserName:     user.Name,
		IsNewCheckIn: false,
		Status:       dto.CheckInStatusCheckedIn,
	}, nil
}

// checkInActive checks in the scanned participant's open registration with
// the latest event date, for doors that scan without selecting an event
func (s *attendanceService) checkInActive(ctx context.Context, user *domain.User) (*dto.CheckInResult, error) {
	attendance, err := s.attendanceRepo.GetActiveByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if attendance == nil {
		return nil, apperr.NotFound("No active registration found")
	}

	if err := attendance.CheckIn(); err != nil {
		return nil, stateError(err)
	}
	if err := s.attendanceRepo.Update(ctx, attendance); err != nil {
		return nil, err
	}

	return &dto.CheckInResult{
		UserName:     user.Name,
		IsNewCheckIn: false,
		Status:       dto.CheckInStatusCheckedIn,
	}, nil
}

// walkIn registers and immediately checks in a participant who scanned at
// an event they never registered for
func (s *attendanceService) walkIn(ctx context.Context, user *domain.User, eventID string) (*dto.CheckInResult, error) {
	attendance, err := domain.NewAttendance(user.ID, eventID)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}
	if err := attendance.CheckIn(); err != nil {
		return nil, stateError(err)
	}

	if err := s.attendanceRepo.Create(ctx, attendance); err != nil {
		if repository.IsUniqueViolation(err, repository.ConstraintAttendanceUserEvent) {
			// A concurrent scan created the record first; treat as already done
			return &dto.CheckInResult{
				UserName:     user.Name,
				IsNewCheckIn: false,
				Status:       dto.CheckInStatusAlreadyCheckedIn,
			}, nil
		}
		return nil, err
	}

	logger.InfoCtx(ctx, "walk-in checked in",
		zap.String("user_id", user.ID),
		zap.String("event_id", eventID),
	)

	return &dto.CheckInResult{
		UserName:     user.Name,
		IsNewCheckIn: true,
		Status:       dto.CheckInStatusCheckedIn,
	}, nil
}

func (s *attendanceService) CheckIn(ctx context.Context, id string) (*dto.AttendanceResponse, error) {
	attendance, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if attendance == nil {
		return nil, apperr.NotFound("Attendance not found")
	}

	if err := attendance.CheckIn(); err != nil {
		return nil, stateError(err)
	}
	if err := s.attendanceRepo.Update(ctx, attendance); err != nil {
		return nil, err
	}

	resp := dto.NewAttendanceResponse(attendance)
	return &resp, nil
}

func (s *attendanceService) Cancel(ctx context.Context, id string) (*dto.AttendanceResponse, error) {
	attendance, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if attendance == nil {
		return nil, apperr.NotFound("Attendance not found")
	}

	if err := attendance.Cancel(); err != nil {
		return nil, stateError(err)
	}
	if err := s.attendanceRepo.Update(ctx, attendance); err != nil {
		return nil, err
	}

	resp := dto.NewAttendanceResponse(attendance)
	return &resp, nil
}

func (s *attendanceService) GetByID(ctx context.Context, id string) (*dto.AttendanceResponse, error) {
	attendance, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if attendance == nil {
		return nil, apperr.NotFound("Attendance not found")
	}

	resp := dto.NewAttendanceResponse(attendance)
	return &resp, nil
}

func (s *attendanceService) Delete(ctx context.Context, id string) error {
	attendance, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if attendance == nil {
		return apperr.NotFound("Attendance not found")
	}
	return s.attendanceRepo.Delete(ctx, id)
}

func (s *attendanceService) ListByEvent(ctx context.Context, eventID string, query *dto.ListAttendancesQuery) ([]dto.AttendanceDetailResponse, int64, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, 0, err
	}
	if event == nil {
		return nil, 0, apperr.NotFound("Event not found")
	}

	query.SetDefaults()
	offset := (query.Page - 1) * query.Limit
	details, err := s.attendanceRepo.ListByEvent(ctx, eventID, query.Limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.attendanceRepo.CountByEvent(ctx, eventID)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.AttendanceDetailResponse, 0, len(details))
	for _, d := range details {
		responses = append(responses, dto.NewAttendanceDetailResponse(d))
	}
	return responses, total, nil
}

func (s *attendanceService) ListByUser(ctx context.Context, userID string, query *dto.ListAttendancesQuery) ([]dto.AttendanceDetailResponse, int64, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if user == nil {
		return nil, 0, apperr.NotFound("Participant not found")
	}

	query.SetDefaults()
	offset := (query.Page - 1) * query.Limit
	details, err := s.attendanceRepo.ListByUser(ctx, userID, query.Limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.attendanceRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.AttendanceDetailResponse, 0, len(details))
	for _, d := range details {
		responses = append(responses, dto.NewAttendanceDetailResponse(d))
	}
	return responses, total, nil
}

func (s *attendanceService) EventStats(ctx context.Context, eventID string) (*dto.EventStatsResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperr.NotFound("Event not found")
	}

	counts, err := s.attendanceRepo.CountByStatus(ctx, eventID)
	if err != nil {
		return nil, err
	}

	stats := &dto.EventStatsResponse{
		EventID:    event.ID,
		EventTitle: event.Title,
		Registered: counts[domain.StatusRegistered],
		CheckedIn:  counts[domain.StatusCheckedIn],
		Cancelled:  counts[domain.StatusCancelled],
	}
	stats.Total = stats.Registered + stats.CheckedIn + stats.Cancelled
	return stats, nil
}

// stateError maps domain lifecycle violations onto application errors
func stateError(err error) error {
	switch {
	case errors.Is(err, domain.ErrAlreadyCheckedIn),
		errors.Is(err, domain.ErrAttendanceCancelled),
		errors.Is(err, domain.ErrCancelAfterCheckIn):
		return apperr.InvalidState(err.Error())
	default:
		return err
	}
}
