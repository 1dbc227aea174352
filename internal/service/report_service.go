package service

import (
	"context"
	"math"

	"github.com/alisettar/Attend/internal/domain"
	"github.com/alisettar/Attend/internal/dto"
	"github.com/alisettar/Attend/internal/repository"
)

// ReportService builds tenant-wide attendance statistics
type ReportService interface {
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
}

// topListSize caps the busiest-events and most-active-participants lists
const topListSize = 5

type reportService struct {
	userRepo       repository.UserRepository
	eventRepo      repository.EventRepository
	attendanceRepo repository.AttendanceRepository
}

// NewReportService creates a new ReportService
func NewReportService(
	userRepo repository.UserRepository,
	eventRepo repository.EventRepository,
	attendanceRepo repository.AttendanceRepository,
) ReportService {
	return &reportService{
		userRepo:       userRepo,
		eventRepo:      eventRepo,
		attendanceRepo: attendanceRepo,
	}
}

func (s *reportService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	users, err := s.userRepo.Count(ctx, "")
	if err != nil {
		return nil, err
	}

	events, err := s.eventRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := s.attendanceRepo.CountByStatus(ctx, "")
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		TotalUsers:      users,
		TotalEvents:     events,
		TotalRegistered: counts[domain.StatusRegistered],
		TotalCheckedIn:  counts[domain.StatusCheckedIn],
		TotalCancelled:  counts[domain.StatusCancelled],
		TopEvents:       make([]dto.DashboardEventResponse, 0, topListSize),
		TopUsers:        make([]dto.DashboardUserResponse, 0, topListSize),
	}
	resp.TotalAttendances = resp.TotalRegistered + resp.TotalCheckedIn + resp.TotalCancelled

	// Rate is over every attendance record, cancelled ones included
	if resp.TotalAttendances > 0 {
		rate := float64(resp.TotalCheckedIn) / float64(resp.TotalAttendances) * 100
		resp.CheckInRate = math.Round(rate*100) / 100
	}

	topEvents, err := s.attendanceRepo.TopEvents(ctx, topListSize)
	if err != nil {
		return nil, err
	}
	for _, e := range topEvents {
		resp.TopEvents = append(resp.TopEvents, dto.DashboardEventResponse{
			EventID:     e.EventID,
			Title:       e.Title,
			Attendances: e.Total,
			CheckedIn:   e.CheckedIn,
		})
	}

	topUsers, err := s.attendanceRepo.TopUsers(ctx, topListSize)
	if err != nil {
		return nil, err
	}
	for _, u := range topUsers {
		resp.TopUsers = append(resp.TopUsers, dto.DashboardUserResponse{
			UserID:   u.UserID,
			Name:     u.Name,
			CheckIns: u.CheckedIn,
		})
	}
	return resp, nil
}
