package service

import (
	"context"
	"testing"

	"github.com/alisettar/Attend/internal/apperr"
	"github.com/alisettar/Attend/internal/dto"
	"github.com/alisettar/Attend/internal/tenant"
)

func newPublicFixture(t *testing.T) (PublicService, *MockUserRepository, context.Context) {
	t.Helper()

	dir, err := tenant.NewDirectory(map[string]tenant.Config{
		"acme": {
			Name:      "Acme Events",
			Hash:      "abc123",
			DSN:       "postgres://localhost/attend_acme",
			Users:     []string{"ayse"},
			GroupLink: "https://chat.example.com/acme",
		},
	})
	if err != nil {
		t.Fatalf("NewDirectory() error = %v", err)
	}

	userRepo := NewMockUserRepository()
	svc := NewPublicService(tenant.NewResolver(dir), userRepo, NewMockGenerator())
	ctx := tenant.WithTenant(context.Background(), "acme")
	return svc, userRepo, ctx
}

func TestResolveTenant(t *testing.T) {
	svc, _, _ := newPublicFixture(t)

	id, err := svc.ResolveTenant("ABC123")
	if err != nil {
		t.Fatalf("ResolveTenant() error = %v", err)
	}
	if id != "acme" {
		t.Errorf("ResolveTenant() = %q, want acme", id)
	}
}

func TestResolveTenantInvalidHash(t *testing.T) {
	svc, _, _ := newPublicFixture(t)

	_, err := svc.ResolveTenant("nope")
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("ResolveTenant() error = %v, want validation failure", err)
	}
}

func TestSelfRegister(t *testing.T) {
	svc, _, ctx := newPublicFixture(t)

	result, err := svc.SelfRegister(ctx, &dto.PublicRegisterRequest{
		Name:  "ali veli",
		Phone: "0555 111 22 33",
	})
	if err != nil {
		t.Fatalf("SelfRegister() error = %v", err)
	}

	if result.UserName != "Ali Veli" {
		t.Errorf("UserName = %q, want %q", result.UserName, "Ali Veli")
	}
	if result.QRCodeImage == "" {
		t.Error("QRCodeImage is empty")
	}
	if result.GroupLink != "https://chat.example.com/acme" {
		t.Errorf("GroupLink = %q", result.GroupLink)
	}
}

func TestSelfRegisterDuplicatePhone(t *testing.T) {
	svc, _, ctx := newPublicFixture(t)

	if _, err := svc.SelfRegister(ctx, &dto.PublicRegisterRequest{Name: "Ali Veli", Phone: "05551112233"}); err != nil {
		t.Fatalf("SelfRegister() error = %v", err)
	}

	_, err := svc.SelfRegister(ctx, &dto.PublicRegisterRequest{Name: "Someone Else", Phone: "0555 111 22 33"})
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("SelfRegister() error = %v, want conflict", err)
	}
}

func TestLookupByPhone(t *testing.T) {
	svc, _, ctx := newPublicFixture(t)

	created, err := svc.SelfRegister(ctx, &dto.PublicRegisterRequest{Name: "Ali Veli", Phone: "05551112233"})
	if err != nil {
		t.Fatalf("SelfRegister() error = %v", err)
	}

	result, err := svc.LookupByPhone(ctx, &dto.PublicLookupRequest{Phone: "+90 555 111 22 33"})
	if err != nil {
		t.Fatalf("LookupByPhone() error = %v", err)
	}
	if result.UserID != created.UserID {
		t.Errorf("UserID = %q, want %q", result.UserID, created.UserID)
	}
	if result.QRCodeImage == "" {
		t.Error("QRCodeImage is empty")
	}
}

func TestLookupByPhoneNotFound(t *testing.T) {
	svc, _, ctx := newPublicFixture(t)

	_, err := svc.LookupByPhone(ctx, &dto.PublicLookupRequest{Phone: "05559998877"})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("LookupByPhone() error = %v, want not found", err)
	}
}

func TestLookupByPhoneRegeneratesMissingImage(t *testing.T) {
	svc, userRepo, ctx := newPublicFixture(t)

	created, err := svc.SelfRegister(ctx, &dto.PublicRegisterRequest{Name: "Ali Veli", Phone: "05551112233"})
	if err != nil {
		t.Fatalf("SelfRegister() error = %v", err)
	}

	user, err := userRepo.GetByID(ctx, created.UserID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	user.QRCodeImage = ""
	if err := userRepo.Update(ctx, user); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	result, err := svc.LookupByPhone(ctx, &dto.PublicLookupRequest{Phone: "05551112233"})
	if err != nil {
		t.Fatalf("LookupByPhone() error = %v", err)
	}
	if result.QRCodeImage == "" {
		t.Error("QRCodeImage not regenerated")
	}
}
