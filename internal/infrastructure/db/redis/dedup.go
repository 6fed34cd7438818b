package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultDedupTTL = 7 * 24 * time.Hour

// DedupStore provides idempotency checks for inbound email backed by Redis.
// Key format: dedup:<message_id>
type DedupStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDedupStore creates a DedupStore wrapping the given Redis client. A TTL
// of zero falls back to one week, long enough to outlive webhook retries.
func NewDedupStore(client *redis.Client, ttl time.Duration) *DedupStore {
	if ttl <= 0 {
		ttl = defaultDedupTTL
	}
	return &DedupStore{client: client, ttl: ttl}
}

// IsDuplicate reports whether this Message-ID has already been processed.
func (d *DedupStore) IsDuplicate(ctx context.Context, messageID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(messageID)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this Message-ID has been processed (expires after the TTL).
func (d *DedupStore) Mark(ctx context.Context, messageID string) error {
	return d.client.Set(ctx, d.key(messageID), "1", d.ttl).Err()
}

func (d *DedupStore) key(messageID string) string {
	return "dedup:" + messageID
}
