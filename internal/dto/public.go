package dto

// PublicRegisterRequest represents anonymous self-registration through a
// tenant registration link
type PublicRegisterRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=255"`
	Email        string `json:"email" binding:"omitempty,email"`
	Phone        string `json:"phone" binding:"required"`
	CaptchaToken string `json:"captcha_token" binding:"omitempty"`
}

// PublicRegisterResult represents the outcome of self-registration
type PublicRegisterResult struct {
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	QRCodeImage string `json:"qr_code_image"`
	GroupLink   string `json:"group_link,omitempty"`
}

// PublicLookupRequest represents a phone lookup for QR recovery
type PublicLookupRequest struct {
	Phone        string `json:"phone" binding:"required"`
	CaptchaToken string `json:"captcha_token" binding:"omitempty"`
}

// LoginRequest represents an organizer login. The tenant is resolved from
// the username.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	Token    string `json:"token"`
	TenantID string `json:"tenant_id"`
	Username string `json:"username"`
}
