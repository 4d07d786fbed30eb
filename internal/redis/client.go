package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrCacheMiss is returned when a role entry or cart slot does not exist.
var ErrCacheMiss = errors.New("cache miss")

type Client struct {
	rdb     *redis.Client
	roleTTL time.Duration
}

func Initialize(redisURL string, roleTTL time.Duration) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb, roleTTL: roleTTL}, nil
}

// Role cache. The entry is a staleness-bounded hint for the route guard; the
// users table stays authoritative. A deactivated user can linger here until
// the TTL runs out, which is the accepted trade for skipping a DB roundtrip
// per navigation.

func (c *Client) CacheRole(ctx context.Context, userID, role string) error {
	return c.rdb.Set(ctx, "role:"+userID, role, c.roleTTL).Err()
}

func (c *Client) CachedRole(ctx context.Context, userID string) (string, error) {
	val, err := c.rdb.Get(ctx, "role:"+userID).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrCacheMiss
		}
		return "", fmt.Errorf("failed to get cached role: %w", err)
	}
	return val, nil
}

func (c *Client) ClearRole(ctx context.Context, userID string) error {
	return c.rdb.Del(ctx, "role:"+userID).Err()
}

// Cart slots. One serialized line list per retailer, overwritten whole on
// every mutation (last write wins). No expiry: the cart survives reloads and
// sessions until it is cleared.

func (c *Client) SaveCart(ctx context.Context, retailerID string, payload []byte) error {
	return c.rdb.Set(ctx, "cart:"+retailerID, payload, 0).Err()
}

func (c *Client) LoadCart(ctx context.Context, retailerID string) ([]byte, error) {
	val, err := c.rdb.Get(ctx, "cart:"+retailerID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return val, nil
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
