package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/alisettar/Attend/pkg/logger"
	"github.com/alisettar/Attend/pkg/response"
)

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// Rate limit per second per client IP
	RequestsPerSecond int
	// Burst size (token bucket capacity)
	BurstSize int
	// Redis client for distributed limiting
	Client *redis.Client
	// Key prefix for Redis
	KeyPrefix string
}

// DefaultRateLimitConfig returns defaults suited to public form endpoints
func DefaultRateLimitConfig(client *redis.Client) RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 5,
		BurstSize:         10,
		Client:            client,
		KeyPrefix:         "ratelimit:",
	}
}

// Atomic token bucket in Redis, shared across instances
const rateLimitScript = `
local key = KEYS[1]
local rate = tonumber(ARGV[1])
local burst = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local requested = 1

local data = redis.call("HMGET", key, "tokens", "last_update")
local tokens = tonumber(data[1]) or burst
local last_update = tonumber(data[2]) or now

local elapsed = now - last_update
tokens = math.min(burst, tokens + elapsed * rate)

if tokens >= requested then
    tokens = tokens - requested
    redis.call("HMSET", key, "tokens", tokens, "last_update", now)
    redis.call("EXPIRE", key, 60)
    return 1
else
    redis.call("HMSET", key, "tokens", tokens, "last_update", now)
    redis.call("EXPIRE", key, 60)
    return 0
end
`

// RateLimiter limits requests per client IP using Redis. Redis outages
// fail open so the door keeps working.
func RateLimiter(config RateLimitConfig) gin.HandlerFunc {
	script := redis.NewScript(rateLimitScript)

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := config.KeyPrefix + c.ClientIP()
		now := float64(time.Now().UnixNano()) / 1e9

		result, err := script.Run(ctx, config.Client,
			[]string{key},
			float64(config.RequestsPerSecond),
			float64(config.BurstSize),
			now,
		).Int64()
		if err != nil {
			logger.WarnCtx(ctx, "rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		if result != 1 {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.TooManyRequests("Too many requests, slow down"))
			return
		}
		c.Next()
	}
}
