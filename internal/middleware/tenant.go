// Package middleware provides the gin middleware chain: tenant binding,
// authentication, request IDs and rate limiting.
package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alisettar/Attend/internal/tenant"
	"github.com/alisettar/Attend/pkg/logger"
	"github.com/alisettar/Attend/pkg/response"
)

const (
	// HeaderTenantID carries the tenant on API requests
	HeaderTenantID = "X-Tenant-Id"
	// CookieTenantID carries the tenant for browser sessions
	CookieTenantID = "TenantId"
)

// TenantMiddleware binds the request to a tenant. The header wins over the
// cookie; requests naming an unknown tenant are rejected before reaching
// any handler.
func TenantMiddleware(resolver *tenant.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetHeader(HeaderTenantID)
		if tenantID == "" {
			if cookie, err := c.Cookie(CookieTenantID); err == nil {
				tenantID = cookie
			}
		}

		if tenantID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, response.Error(response.ErrCodeInvalidTenant, "Tenant is required"))
			return
		}

		ctx, err := resolver.Bind(c.Request.Context(), tenantID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, response.Error(response.ErrCodeInvalidTenant, "Unknown tenant"))
			return
		}
		ctx = context.WithValue(ctx, logger.TenantIDKey, tenantID)

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
