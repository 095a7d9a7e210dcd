package adapter

import (
	"context"
	"time"
)

// RateLimitStore counts requests per key inside fixed windows.
type RateLimitStore interface {
	// Allow records a hit for key and reports whether it is still within limit for the current window.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}
