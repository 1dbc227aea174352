// Package service implements the application workflows over the
// repository layer.
package service

import (
	"context"

	"github.com/alisettar/Attend/internal/apperr"
	"github.com/alisettar/Attend/internal/domain"
	"github.com/alisettar/Attend/internal/dto"
	"github.com/alisettar/Attend/internal/qrcode"
	"github.com/alisettar/Attend/internal/repository"
)

// UserService defines participant management operations
type UserService interface {
	// Create registers a new participant and issues their QR code
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	// GetByID retrieves a participant by ID
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	// GetByQRCode retrieves a participant by QR payload
	GetByQRCode(ctx context.Context, qrCode string) (*dto.UserResponse, error)
	// List retrieves participants with pagination
	List(ctx context.Context, query *dto.ListUsersQuery) ([]dto.UserResponse, int64, error)
	// Update updates participant details
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	// Delete removes a participant and their attendances
	Delete(ctx context.Context, id string) error
}

type userService struct {
	userRepo repository.UserRepository
	qrGen    qrcode.Generator
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, qrGen qrcode.Generator) UserService {
	return &userService{
		userRepo: userRepo,
		qrGen:    qrGen,
	}
}

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
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

	if user.Email != "" {
		taken, err := s.userRepo.ExistsByEmail(ctx, user.Email, "")
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("Email already registered")
		}
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
		if repository.IsUniqueViolation(err, repository.ConstraintUserEmail) {
			return nil, apperr.Conflict("Email already registered").WithCause(err)
		}
		return nil, err
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("Participant not found")
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) GetByQRCode(ctx context.Context, qrCode string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByQRCode(ctx, qrCode)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("Invalid QR code")
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) List(ctx context.Context, query *dto.ListUsersQuery) ([]dto.UserResponse, int64, error) {
	query.SetDefaults()

	offset := (query.Page - 1) * query.Limit
	users, err := s.userRepo.List(ctx, query.Search, query.Limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.userRepo.Count(ctx, query.Search)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, dto.NewUserResponse(u))
	}
	return responses, total, nil
}

func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, apperr.Validation(msg)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("Participant not found")
	}

	if req.Name != nil {
		user.Name = domain.NormalizeName(*req.Name)
	}
	if req.Email != nil {
		if *req.Email != "" {
			taken, err := s.userRepo.ExistsByEmail(ctx, *req.Email, user.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apperr.Conflict("Email already registered")
			}
		}
		user.Email = *req.Email
	}
	if req.Phone != nil {
		phone, err := domain.NormalizePhone(*req.Phone)
		if err != nil {
			return nil, apperr.Validation(err.Error())
		}

		taken, err := s.userRepo.ExistsByPhone(ctx, phone, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("Phone already registered")
		}
		user.Phone = phone
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if repository.IsUniqueViolation(err, repository.ConstraintUserPhone) {
			return nil, apperr.Conflict("Phone already registered").WithCause(err)
		}
		if repository.IsUniqueViolation(err, repository.ConstraintUserEmail) {
			return nil, apperr.Conflict("Email already registered").WithCause(err)
		}
		return nil, err
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFound("Participant not found")
	}
	return s.userRepo.Delete(ctx, id)
}
