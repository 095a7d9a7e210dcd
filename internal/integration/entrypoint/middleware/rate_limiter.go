package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger-api/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger-api/internal/domain/error"
	"github.com/finance-tracker/ledger-api/internal/integration/entrypoint/dto"
)

const (
	// DefaultRateLimit is the default number of requests allowed per window.
	DefaultRateLimit = 1000
	// DefaultRateWindow is the default time window for rate limiting.
	DefaultRateWindow = 1 * time.Minute
)

// RateLimiter provides IP-based rate limiting on top of a RateLimitStore.
type RateLimiter struct {
	store  adapter.RateLimitStore
	limit  int
	window time.Duration
}

// NewRateLimiter creates a new rate limiter. Non-positive settings fall back to the defaults.
func NewRateLimiter(store adapter.RateLimitStore, limit int, window time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	if window <= 0 {
		window = DefaultRateWindow
	}
	return &RateLimiter{
		store:  store,
		limit:  limit,
		window: window,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
// A failing store lets the request through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		allowed, err := rl.store.Allow(c.Request.Context(), clientIP, rl.limit, rl.window)
		if err != nil {
			slog.Warn("Rate limit store unavailable, allowing request",
				"client_ip", clientIP,
				"error", err,
			)
			c.Next()
			return
		}

		if !allowed {
			c.Header("Retry-After", retryAfterSeconds(rl.window))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			return
		}

		c.Next()
	}
}

func retryAfterSeconds(window time.Duration) string {
	seconds := int(window / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	return strconv.Itoa(seconds)
}
