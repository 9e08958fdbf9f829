package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/daolens/daolens/pkg/utils"
)

// Client wraps a Redis connection used as a short-TTL response cache for
// the series endpoints. The aggregation core itself never caches; only
// serialized HTTP responses land here.
type Client struct {
	client *redis.Client
	logger *zap.Logger
}

// NewClient creates a new Redis client using environment variables for configuration.
// Environment variables:
//   - REDIS_HOST: Redis host (default: "localhost")
//   - REDIS_PORT: Redis port (default: "6379")
//   - REDIS_PASSWORD: Redis password (default: "")
//   - REDIS_DB: Redis database number (default: "0")
func NewClient(ctx context.Context, logger *zap.Logger) (*Client, error) {
	host := utils.Env("REDIS_HOST", "localhost")
	port := utils.Env("REDIS_PORT", "6379")
	password := utils.Env("REDIS_PASSWORD", "")
	db := utils.EnvInt("REDIS_DB", 0)

	addr := fmt.Sprintf("%s:%s", host, port)

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,

		// Connection pool
		PoolSize:     10,
		MinIdleConns: 2,

		// Timeouts
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	logger.Info("Connected to Redis",
		zap.String("addr", addr),
		zap.Int("db", db))

	return &Client{
		client: rdb,
		logger: logger,
	}, nil
}

// Get returns the cached value for key, or false when absent or on error.
// Cache failures are never surfaced to the request path.
func (c *Client) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("Redis get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return val, true
}

// Set stores a value under key with the given TTL, best-effort.
func (c *Client) Set(ctx context.Context, key string, val []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, val, ttl).Err(); err != nil {
		c.logger.Debug("Redis set failed", zap.String("key", key), zap.Error(err))
	}
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.client.Close()
}
