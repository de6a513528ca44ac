package cache

import (
	"context"
	"encoding/json"
	"time"

	dom "UserAPI/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyUser = "user:"

// UserCache caches user records by ID in Redis. Tokens themselves are
// stateless and never cached; only the read path for GET /user/:id goes
// through here.
type UserCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewUserCache returns a new UserCache.
func NewUserCache(rdb *redis.Client, ttl time.Duration) *UserCache {
	return &UserCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached user or nil if miss.
func (c *UserCache) Get(ctx context.Context, id string) (*dom.User, error) {
	b, err := c.rdb.Get(ctx, keyUser+id).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var u dom.User
	if err := json.Unmarshal(b, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Set stores the user in cache.
func (c *UserCache) Set(ctx context.Context, u dom.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyUser+u.ID, b, c.ttl).Err()
}

// Invalidate removes the cached user (cache invalidation on write, e.g.
// after a last-login update).
func (c *UserCache) Invalidate(ctx context.Context, id string) error {
	return c.rdb.Del(ctx, keyUser+id).Err()
}
