package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/ledger-api/internal/application/adapter"
)

const rateLimitKeyPrefix = "ratelimit:"

// redisRateLimitStore shares fixed-window counters between API instances.
type redisRateLimitStore struct {
	client redis.UniversalClient
}

// NewRedisRateLimitStore creates a rate limit store backed by redis.
func NewRedisRateLimitStore(client redis.UniversalClient) adapter.RateLimitStore {
	return &redisRateLimitStore{
		client: client,
	}
}

// Allow increments the window counter of key and reads its TTL in the same MULTI block.
// A counter without a TTL, whether new or left behind by a failed expiry, gets the window
// expiry, so a key can never outlive its window.
func (s *redisRateLimitStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	redisKey := rateLimitKeyPrefix + key

	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		ttl = pipe.PTTL(ctx, redisKey)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	if ttl.Val() < 0 {
		if err := s.client.PExpire(ctx, redisKey, window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	return incr.Val() <= int64(limit), nil
}
