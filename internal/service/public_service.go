package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/alisettar/Attend/internal/apperr"
	"github.com/alisettar/Attend/internal/domain"
	"github.com/alisettar/Attend/internal/dto"
	"github.com/alisettar/Attend/internal/qrcode"
	"github.com/alisettar/Attend/internal/repository"
	"github.com/alisettar/Attend/internal/tenant"
	"github.com/alisettar/Attend/pkg/logger"
)

// PublicService defines the anonymous self-service operations reached
// through a tenant registration link
type PublicService interface {
	// ResolveTenant maps a registration link hash to a tenant ID
	ResolveTenant(hash string) (string, error)
	// SelfRegister creates a participant from the public registration form
	SelfRegister(ctx context.Context, req *dto.PublicRegisterRequest) (*dto.PublicRegisterResult, error)
	// LookupByPhone re-issues the QR code for an existing participant
	LookupByPhone(ctx context.Context, req *dto.PublicLookupRequest) (*dto.PublicRegisterResult, error)
}

type publicService struct {
	resolver *tenant.Resolver
	userRepo repository.UserRepository
	qrGen    qrcode.Generator
}

// NewPublicService creates a new PublicService
func NewPublicService(resolver *tenant.Resolver, userRepo repository.UserRepository, qrGen qrcode.Generator) PublicService {
	return &publicService{
		resolver: resolver,
		userRepo: userRepo,
		qrGen:    qrGen,
	}
}

func (s *publicService) ResolveTenant(hash string) (string, error) {
	id, err := s.resolver.ResolveByHash(hash)
	if err != nil {
		return "", apperr.Validation("Invalid registration link").WithCause(err)
	}
	return id, nil
}

func (s *publicService) SelfRegister(ctx context.Context, req *dto.PublicRegisterRequest) (*dto.PublicRegisterResult, error) {
	user, err := domain.NewUser(req.Name, req.Email, req.Phone)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	exists, err := s.userRepo.ExistsByPhone(ctx, user.Phone, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("Phone already registered")
	}

	image, err := s.qrGen.Generate(user.QRCode)
	if err != nil {
		return nil, err
	}
	user.QRCodeImage = image

	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err, repository.ConstraintUserPhone) {
			return nil, apperr.Conflict("Phone already registered").WithCause(err)
		}
		return nil, err
	}

	logger.InfoCtx(ctx, "participant self-registered", zap.String("user_id", user.ID))

	return &dto.PublicRegisterResult{
		UserID:      user.ID,
		UserName:    user.Name,
		QRCodeImage: user.QRCodeImage,
		GroupLink:   s.groupLink(ctx),
	}, nil
}

func (s *publicService) LookupByPhone(ctx context.Context, req *dto.PublicLookupRequest) (*dto.PublicRegisterResult, error) {
	phone, err := domain.NormalizePhone(req.Phone)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	user, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("Participant not found")
	}

	// Older records may predate image storage
	if user.QRCodeImage == "" {
		image, err := s.qrGen.Generate(user.QRCode)
		if err != nil {
			return nil, err
		}
		user.QRCodeImage = image
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	return &dto.PublicRegisterResult{
		UserID:      user.ID,
		UserName:    user.Name,
		QRCodeImage: user.QRCodeImage,
		GroupLink:   s.groupLink(ctx),
	}, nil
}

// groupLink returns the tenant's community link when one is configured
func (s *publicService) groupLink(ctx context.Context) string {
	id, ok := tenant.FromContext(ctx)
	if !ok {
		return ""
	}
	cfg, found := s.resolver.Directory().Get(id)
	if !found {
		return ""
	}
	return cfg.GroupLink
}
