package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fluentos/desktop-admin-api/src/models"
	"github.com/redis/go-redis/v9"
)

const (
	activeBroadcastKey = "broadcast:active"
	// stored when no broadcast is active so pollers don't hit the store
	noneMarker = "null"
)

// redisClient is the subset of *redis.Client used here, swappable in tests
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

var redisNewClient = func(opt *redis.Options) redisClient {
	return redis.NewClient(opt)
}

// RedisBroadcastCache keeps the active broadcast in Redis with a short TTL
type RedisBroadcastCache struct {
	client redisClient
	ttl    time.Duration
}

// NewRedisBroadcastCache connects to Redis and verifies the connection
func NewRedisBroadcastCache(ctx context.Context, addr, password string, db int, ttl time.Duration) (*RedisBroadcastCache, error) {
	client := redisNewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &RedisBroadcastCache{client: client, ttl: ttl}, nil
}

func (c *RedisBroadcastCache) Get(ctx context.Context) (*models.Broadcast, bool, error) {
	raw, err := c.client.Get(ctx, activeBroadcastKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read active broadcast: %w", err)
	}
	if raw == noneMarker {
		return nil, true, nil
	}

	var b models.Broadcast
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		return nil, false, fmt.Errorf("failed to decode active broadcast: %w", err)
	}
	return &b, true, nil
}

func (c *RedisBroadcastCache) Set(ctx context.Context, b *models.Broadcast) error {
	value := noneMarker
	if b != nil {
		data, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("failed to encode active broadcast: %w", err)
		}
		value = string(data)
	}
	if err := c.client.Set(ctx, activeBroadcastKey, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache active broadcast: %w", err)
	}
	return nil
}

func (c *RedisBroadcastCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, activeBroadcastKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate active broadcast: %w", err)
	}
	return nil
}

func (c *RedisBroadcastCache) Close() error {
	return c.client.Close()
}

var _ BroadcastCache = (*RedisBroadcastCache)(nil)
