package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alisettar/Attend/pkg/response"
)

// StorePinger reports connectivity of the open tenant stores
type StorePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles liveness checks
type HealthHandler struct {
	version string
	stores  StorePinger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(version string, stores StorePinger) *HealthHandler {
	return &HealthHandler{version: version, stores: stores}
}

// Health reports service liveness and tenant store connectivity
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	if h.stores != nil {
		if err := h.stores.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, response.Error(response.ErrCodeServiceUnavailable, err.Error()))
			return
		}
	}

	c.JSON(http.StatusOK, response.Success(gin.H{
		"status":  "ok",
		"version": h.version,
	}))
}
