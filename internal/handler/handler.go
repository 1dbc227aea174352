// Package handler exposes the HTTP API over the service layer.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alisettar/Attend/internal/apperr"
	"github.com/alisettar/Attend/pkg/logger"
	"github.com/alisettar/Attend/pkg/response"
)

// writeError maps application errors onto the response envelope. Unknown
// errors are logged and surface as a generic internal error.
func writeError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		logger.ErrorCtx(c.Request.Context(), "request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, response.InternalError("Something went wrong"))
		return
	}

	code := string(appErr.Kind)
	status := response.GetHTTPStatus(code)
	if len(appErr.Fields) > 0 {
		c.JSON(status, response.ErrorWithDetails(code, appErr.Message, appErr.Fields))
		return
	}
	c.JSON(status, response.Error(code, appErr.Message))
}
