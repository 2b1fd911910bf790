package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

func linkKey(alias string) string { return "link:alias:" + alias }

// LinkCache is a read-through cache of alias -> target URL. Aliases are immutable,
// so entries never need invalidation; the TTL only bounds memory.
type LinkCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewLinkCache(rdb *redis.Client, ttl time.Duration) *LinkCache {
	return &LinkCache{rdb: rdb, ttl: ttl}
}

func (c *LinkCache) Get(ctx context.Context, alias string) (string, bool, error) {
	v, err := c.rdb.Get(ctx, linkKey(alias)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (c *LinkCache) Set(ctx context.Context, alias, target string) error {
	return c.rdb.Set(ctx, linkKey(alias), target, c.ttl).Err()
}
