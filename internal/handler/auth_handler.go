package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alisettar/Attend/internal/dto"
	"github.com/alisettar/Attend/internal/middleware"
	"github.com/alisettar/Attend/internal/service"
	"github.com/alisettar/Attend/pkg/response"
)

// AuthHandler handles organizer authentication HTTP requests
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles organizer login. On success the tenant cookie is set so
// browser sessions are bound without sending the header on every request.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.SetCookie(middleware.CookieTenantID, result.TenantID, 0, "/", "", false, true)
	c.JSON(http.StatusOK, response.Success(result))
}

// Logout clears the tenant cookie
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.CookieTenantID, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, response.Success(gin.H{"logged_out": true}))
}
