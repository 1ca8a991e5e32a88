package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/voluntree/backend/config"
	"github.com/voluntree/backend/pkg/logger"
	"go.uber.org/zap"
)

// ErrCacheMiss is returned when a key does not exist.
var ErrCacheMiss = fmt.Errorf("cache: key not found")

// Client wraps go-redis for JSON value caching. When Redis is disabled the
// client degrades to a no-op: every Get is a miss and every Set succeeds.
type Client struct {
	rdb     *redis.Client
	enabled bool
}

// NewClient connects to Redis per the configuration. A connection failure
// is returned to the caller; a disabled configuration yields a no-op client.
func NewClient(cfg *config.Config) (*Client, error) {
	if !cfg.Redis.Enabled {
		logger.GetLogger().Info("redis disabled, caching is a no-op")
		return &Client{enabled: false}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddress(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.Database,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.GetLogger().Info("redis connection established",
		zap.String("addr", cfg.RedisAddress()),
		zap.Int("db", cfg.Redis.Database),
	)

	return &Client{rdb: rdb, enabled: true}, nil
}

// IsEnabled reports whether the client is backed by a live connection.
func (c *Client) IsEnabled() bool {
	return c.enabled
}

// GetJSON fetches a key and unmarshals it into dest. Returns ErrCacheMiss
// when the key is absent or the client is disabled.
func (c *Client) GetJSON(ctx context.Context, key string, dest interface{}) error {
	if !c.enabled {
		return ErrCacheMiss
	}

	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("cache get failed: %w", err)
	}

	return json.Unmarshal(data, dest)
}

// SetJSON marshals value and stores it under key with the given TTL.
func (c *Client) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !c.enabled {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}

	return c.rdb.Set(ctx, key, data, ttl).Err()
}

// Delete removes one or more keys.
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	if !c.enabled || len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// Ping checks the connection health.
func (c *Client) Ping(ctx context.Context) error {
	if !c.enabled {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c *Client) Close() error {
	if !c.enabled {
		return nil
	}
	return c.rdb.Close()
}
