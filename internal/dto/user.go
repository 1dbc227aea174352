package dto

import (
	"time"

	"github.com/alisettar/Attend/internal/domain"
)

// CreateUserRequest represents request to register a new participant
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=255"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone" binding:"required"`
}

// UpdateUserRequest represents request to update participant details
type UpdateUserRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=2,max=255"`
	Email *string `json:"email" binding:"omitempty,email"`
	Phone *string `json:"phone" binding:"omitempty"`
}

// Validate validates that at least one field is provided for update
func (r *UpdateUserRequest) Validate() (bool, string) {
	if r.Name == nil && r.Email == nil && r.Phone == nil {
		return false, "At least one field must be provided for update"
	}
	return true, ""
}

// UserResponse represents participant data in response
type UserResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone"`
	QRCode      string `json:"qr_code"`
	QRCodeImage string `json:"qr_code_image,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// NewUserResponse maps a domain user to its response form
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		QRCode:      u.QRCode,
		QRCodeImage: u.QRCodeImage,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}

// ListUsersQuery represents query parameters for listing participants
type ListUsersQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search string `form:"search" binding:"omitempty,max=100"`
}

// SetDefaults sets default values for query parameters
func (q *ListUsersQuery) SetDefaults() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 20
	}
}
