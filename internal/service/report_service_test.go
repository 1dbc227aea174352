package service

import (
	"context"
	"testing"

	"github.com/alisettar/Attend/internal/domain"
	"github.com/alisettar/Attend/internal/dto"
)

func TestDashboard(t *testing.T) {
	f := newAttendanceFixture(t)
	ctx := context.Background()
	svc := NewReportService(f.userRepo, f.eventRepo, f.attendanceRepo)

	if _, err := f.svc.Register(ctx, &dto.RegisterAttendanceRequest{UserID: f.user.ID, EventID: f.event.ID}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := f.svc.CheckInByQRCode(ctx, &dto.CheckInByQRCodeRequest{QRCode: f.user.QRCode, EventID: f.event.ID}); err != nil {
		t.Fatalf("CheckInByQRCode() error = %v", err)
	}

	resp, err := svc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}

	if resp.TotalUsers != 1 {
		t.Errorf("TotalUsers = %d, want 1", resp.TotalUsers)
	}
	if resp.TotalEvents != 1 {
		t.Errorf("TotalEvents = %d, want 1", resp.TotalEvents)
	}
	if resp.TotalCheckedIn != 1 {
		t.Errorf("TotalCheckedIn = %d, want 1", resp.TotalCheckedIn)
	}
	if resp.TotalAttendances != 1 {
		t.Errorf("TotalAttendances = %d, want 1", resp.TotalAttendances)
	}
	if resp.CheckInRate != 100 {
		t.Errorf("CheckInRate = %v, want 100", resp.CheckInRate)
	}

	if len(resp.TopEvents) != 1 || resp.TopEvents[0].Title != f.event.Title {
		t.Errorf("TopEvents = %+v, want one entry for %q", resp.TopEvents, f.event.Title)
	}
	if len(resp.TopUsers) != 1 || resp.TopUsers[0].Name != "Ali Veli" {
		t.Errorf("TopUsers = %+v, want one entry for Ali Veli", resp.TopUsers)
	}
}

func TestDashboardRateCountsCancelled(t *testing.T) {
	f := newAttendanceFixture(t)
	ctx := context.Background()
	svc := NewReportService(f.userRepo, f.eventRepo, f.attendanceRepo)

	second, err := domain.NewUser("Ayşe Yılmaz", "", "0555 222 33 44")
	if err != nil {
		t.Fatalf("NewUser() error = %v", err)
	}
	if err := f.userRepo.Create(ctx, second); err != nil {
		t.Fatalf("Create user failed: %v", err)
	}

	if _, err := f.svc.CheckInByQRCode(ctx, &dto.CheckInByQRCodeRequest{QRCode: f.user.QRCode, EventID: f.event.ID}); err != nil {
		t.Fatalf("CheckInByQRCode() error = %v", err)
	}
	reg, err := f.svc.Register(ctx, &dto.RegisterAttendanceRequest{UserID: second.ID, EventID: f.event.ID})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := f.svc.Cancel(ctx, reg.ID); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}

	resp, err := svc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}

	if resp.TotalAttendances != 2 {
		t.Errorf("TotalAttendances = %d, want 2", resp.TotalAttendances)
	}
	// Cancelled registrations stay in the denominator
	if resp.CheckInRate != 50 {
		t.Errorf("CheckInRate = %v, want 50", resp.CheckInRate)
	}
}

func TestDashboardEmpty(t *testing.T) {
	f := newAttendanceFixture(t)
	svc := NewReportService(f.userRepo, f.eventRepo, f.attendanceRepo)

	resp, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}

	if resp.CheckInRate != 0 {
		t.Errorf("CheckInRate = %v, want 0 with no attendances", resp.CheckInRate)
	}
}
