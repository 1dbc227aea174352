// Package captcha verifies reCAPTCHA tokens on anonymous endpoints.
package captcha

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alisettar/Attend/pkg/logger"
)

const verifyURL = "https://www.google.com/recaptcha/api/siteverify"

// Verifier decides whether an anonymous request may proceed
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) bool
}

// NewVerifier returns a reCAPTCHA verifier, or a pass-through verifier
// when no secret is configured
func NewVerifier(secretKey string, minScore float64) Verifier {
	if secretKey == "" {
		return noopVerifier{}
	}
	return &recaptchaVerifier{
		secretKey: secretKey,
		minScore:  minScore,
		endpoint:  verifyURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type noopVerifier struct{}

func (noopVerifier) Verify(ctx context.Context, token, remoteIP string) bool {
	return true
}

type recaptchaVerifier struct {
	secretKey string
	minScore  float64
	endpoint  string
	client    *http.Client
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	Score      float64  `json:"score"`
	Action     string   `json:"action"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify posts the token to the siteverify endpoint. Verification failures
// and transport errors both reject the request; they never surface as
// server errors to the caller.
func (v *recaptchaVerifier) Verify(ctx context.Context, token, remoteIP string) bool {
	if token == "" {
		return false
	}

	form := url.Values{}
	form.Set("secret", v.secretKey)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		logger.WarnCtx(ctx, "captcha verification request failed", zap.Error(err))
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		logger.WarnCtx(ctx, "captcha verification request failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	var result verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		logger.WarnCtx(ctx, "captcha verification response invalid", zap.Error(err))
		return false
	}

	if !result.Success {
		logger.InfoCtx(ctx, "captcha verification rejected", zap.Strings("error_codes", result.ErrorCodes))
		return false
	}
	return result.Score >= v.minScore
}
