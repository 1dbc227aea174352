package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// ErrNameRequired is returned when a user is created without a name
	ErrNameRequired = errors.New("name is required")
	// ErrInvalidPhone is returned when a phone number fails validation
	ErrInvalidPhone = errors.New("invalid phone number")
)

// turkishPhoneRegex matches Turkish mobile numbers after normalization,
// e.g. 05551112233, 5551112233 or +905551112233
var turkishPhoneRegex = regexp.MustCompile(`^(\+90|0)?5\d{9}$`)

// phoneSeparatorRegex strips spaces, dashes and parentheses
var phoneSeparatorRegex = regexp.MustCompile(`[\s\-()]`)

// multiSpaceRegex collapses runs of whitespace
var multiSpaceRegex = regexp.MustCompile(`\s+`)

var (
	turkishLower = cases.Lower(language.Turkish)
	turkishTitle = cases.Title(language.Turkish)
)

// User is a registered participant within a tenant's store
type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone"`
	QRCode      string    `json:"qr_code"`
	QRCodeImage string    `json:"qr_code_image,omitempty"` // Base64 PNG
	CreatedAt   time.Time `json:"created_at"`
}

// NewUser creates a user with a normalized name, a normalized phone and a
// deterministic QR code derived from the generated ID
func NewUser(name, email, phone string) (*User, error) {
	name = NormalizeName(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	normalizedPhone, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	return &User{
		ID:        id.String(),
		Name:      name,
		Email:     strings.TrimSpace(email),
		Phone:     normalizedPhone,
		QRCode:    QRCodeForUser(id),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// QRCodeForUser derives the opaque QR payload for a user ID.
// The dashes are dropped so the payload stays compact when rendered.
func QRCodeForUser(id uuid.UUID) string {
	return "USER-" + strings.ReplaceAll(id.String(), "-", "")
}

// NormalizeName trims, collapses inner whitespace and title-cases the name
// using Turkish casing rules (dotted/dotless i)
func NormalizeName(name string) string {
	name = multiSpaceRegex.ReplaceAllString(strings.TrimSpace(name), " ")
	if name == "" {
		return ""
	}
	return turkishTitle.String(turkishLower.String(name))
}

// NormalizePhone strips separators and validates the result against the
// Turkish mobile pattern, returning the digits-only canonical form with a
// leading zero (e.g. "0555 111 22 33" -> "05551112233")
func NormalizePhone(phone string) (string, error) {
	normalized := phoneSeparatorRegex.ReplaceAllString(strings.TrimSpace(phone), "")
	if !turkishPhoneRegex.MatchString(normalized) {
		return "", ErrInvalidPhone
	}

	switch {
	case strings.HasPrefix(normalized, "+90"):
		normalized = "0" + normalized[3:]
	case strings.HasPrefix(normalized, "5"):
		normalized = "0" + normalized
	}
	return normalized, nil
}
