package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/alisettar/Attend/internal/apperr"
	"github.com/alisettar/Attend/internal/dto"
	"github.com/alisettar/Attend/internal/tenant"
	"github.com/alisettar/Attend/pkg/logger"
)

// AuthService defines organizer authentication. Organizers are identified
// by username alone; the tenant is resolved from the directory.
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	resolver *tenant.Resolver
	secret   string
	ttl      time.Duration
	issuer   string
}

// NewAuthService creates a new AuthService
func NewAuthService(resolver *tenant.Resolver, secret string, ttl time.Duration, issuer string) AuthService {
	return &authService{
		resolver: resolver,
		secret:   secret,
		ttl:      ttl,
		issuer:   issuer,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	tenantID, err := s.resolver.ResolveByUsername(req.Username)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid username").WithCause(err)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"username":  req.Username,
		"tenant_id": tenantID,
		"iss":       s.issuer,
		"iat":       now.Unix(),
		"exp":       now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "organizer logged in",
		zap.String("username", req.Username),
		zap.String("tenant_id", tenantID),
	)

	return &dto.LoginResponse{
		Token:    signed,
		TenantID: tenantID,
		Username: req.Username,
	}, nil
}
