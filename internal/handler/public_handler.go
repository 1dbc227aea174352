package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alisettar/Attend/internal/captcha"
	"github.com/alisettar/Attend/internal/dto"
	"github.com/alisettar/Attend/internal/service"
	"github.com/alisettar/Attend/internal/tenant"
	"github.com/alisettar/Attend/pkg/response"
)

// PublicHandler handles the anonymous self-service endpoints behind a
// tenant registration link
type PublicHandler struct {
	publicService service.PublicService
	resolver      *tenant.Resolver
	verifier      captcha.Verifier
}

// NewPublicHandler creates a new PublicHandler
func NewPublicHandler(publicService service.PublicService, resolver *tenant.Resolver, verifier captcha.Verifier) *PublicHandler {
	return &PublicHandler{
		publicService: publicService,
		resolver:      resolver,
		verifier:      verifier,
	}
}

// bindTenantByHash resolves the link hash and binds the tenant onto the
// request context
func (h *PublicHandler) bindTenantByHash(c *gin.Context) bool {
	hash := c.Param("hash")
	tenantID, err := h.publicService.ResolveTenant(hash)
	if err != nil {
		writeError(c, err)
		return false
	}

	ctx, err := h.resolver.Bind(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(response.ErrCodeInvalidTenant, "Unknown tenant"))
		return false
	}
	c.Request = c.Request.WithContext(ctx)
	return true
}

// Register handles anonymous self-registration
// POST /api/public/:hash/register
func (h *PublicHandler) Register(c *gin.Context) {
	var req dto.PublicRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	// The captcha token is optional; only supplied tokens are verified,
	// and before any tenant work so bots never probe link hashes
	if req.CaptchaToken != "" && !h.verifier.Verify(c.Request.Context(), req.CaptchaToken, c.ClientIP()) {
		c.JSON(http.StatusBadRequest, response.Error(response.ErrCodeBadRequest, "Captcha verification failed"))
		return
	}

	if !h.bindTenantByHash(c) {
		return
	}

	result, err := h.publicService.SelfRegister(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(result))
}

// Lookup handles QR recovery by phone number
// POST /api/public/:hash/lookup
func (h *PublicHandler) Lookup(c *gin.Context) {
	var req dto.PublicLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	if req.CaptchaToken != "" && !h.verifier.Verify(c.Request.Context(), req.CaptchaToken, c.ClientIP()) {
		c.JSON(http.StatusBadRequest, response.Error(response.ErrCodeBadRequest, "Captcha verification failed"))
		return
	}

	if !h.bindTenantByHash(c) {
		return
	}

	result, err := h.publicService.LookupByPhone(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}
