package execution

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrQuotaExceeded means the user burned through their run allowance for the
// current window. Safe to retry after the window rolls over.
var ErrQuotaExceeded = errors.New("run quota exceeded")

const quotaKeyPrefix = "ws:runquota:" // ws:runquota:{user_id}

// Quota enforces a per-user cap on judge submissions per window, counted in
// Redis so the cap holds across instances.
type Quota struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewQuota builds a quota. A nil client disables enforcement; every check
// passes, matching how the service degrades when Redis is not configured.
func NewQuota(client *redis.Client, runsPerWindow int, window time.Duration) *Quota {
	if window == 0 {
		window = time.Minute
	}
	return &Quota{
		client: client,
		limit:  int64(runsPerWindow),
		window: window,
	}
}

// Check counts this run against the user's window and returns
// ErrQuotaExceeded once the cap is passed.
func (q *Quota) Check(ctx context.Context, userID string) error {
	if q == nil || q.client == nil || q.limit <= 0 {
		return nil
	}

	key := quotaKeyPrefix + userID

	// ExpireNX arms the TTL only on a key that has none. A plain EXPIRE here
	// would let denied retries keep pushing the window out, so an over-limit
	// user who keeps retrying would never recover.
	pipe := q.client.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, q.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("run quota check: %w", err)
	}

	if incr.Val() > q.limit {
		return ErrQuotaExceeded
	}
	return nil
}
