package stats

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "mess:stats:attendance:"
	counterTTL = 60 * 24 * time.Hour
)

// Counter maintains per-day attendance counts in Redis. The worker
// increments; the admin stats endpoint reads. A cold Redis reads as zero.
type Counter struct {
	client *redis.Client
}

// NewCounter wraps a redis client.
func NewCounter(client *redis.Client) *Counter {
	return &Counter{client: client}
}

// IncrDay bumps the counter for a calendar day ("2006-01-02").
func (c *Counter) IncrDay(ctx context.Context, date string) error {
	key := keyPrefix + date
	if err := c.client.Incr(ctx, key).Err(); err != nil {
		return err
	}
	return c.client.Expire(ctx, key, counterTTL).Err()
}

// DayCount reads the counter for a calendar day; missing keys count as zero.
func (c *Counter) DayCount(ctx context.Context, date string) (int64, error) {
	n, err := c.client.Get(ctx, keyPrefix+date).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}
