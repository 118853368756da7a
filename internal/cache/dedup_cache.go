package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// dedupTTL bounds how long a submission id is remembered. Retries of a
// failed delivery reuse the same id, so the window is generous.
const dedupTTL = 7 * 24 * time.Hour

// DedupCache remembers recently seen submission ids so retried
// submissions are acknowledged without being processed twice.
type DedupCache interface {
	MarkSeen(ctx context.Context, submissionID string) (first bool, err error)
	Forget(ctx context.Context, submissionID string) error
}

type dedupCache struct {
	client *redis.Client
}

// NewDedupCache creates the Redis-backed dedup cache.
func NewDedupCache(client *redis.Client) DedupCache {
	return &dedupCache{client: client}
}

// MarkSeen records the id and reports whether this was its first
// appearance.
func (c *dedupCache) MarkSeen(ctx context.Context, submissionID string) (bool, error) {
	return c.client.SetNX(ctx, "submission:"+submissionID, 1, dedupTTL).Result()
}

// Forget drops the id so a retry of a submission that was never durably
// handled is processed as new.
func (c *dedupCache) Forget(ctx context.Context, submissionID string) error {
	return c.client.Del(ctx, "submission:"+submissionID).Err()
}
