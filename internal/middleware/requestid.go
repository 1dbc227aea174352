package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alisettar/Attend/pkg/logger"
)

// HeaderRequestID echoes the request ID back to the client
const HeaderRequestID = "X-Request-Id"

// RequestID assigns each request an ID, reusing one supplied by the client
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(HeaderRequestID, requestID)
		c.Next()
	}
}

// RequestLogger logs each request with its outcome and latency
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}

		ctx := c.Request.Context()
		switch {
		case c.Writer.Status() >= 500:
			logger.ErrorCtx(ctx, "request failed", fields...)
		case c.Writer.Status() >= 400:
			logger.WarnCtx(ctx, "request rejected", fields...)
		default:
			logger.InfoCtx(ctx, "request completed", fields...)
		}
	}
}
