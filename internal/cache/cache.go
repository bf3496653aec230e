// Package cache provides an optional Redis-backed response cache. The
// prediction engine is deterministic, so an assembled response can be reused
// for any byte-identical request until the model artifact changes.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/hemoscan-screening-server/internal/domain"
)

// Client wraps a Redis client with prediction-response caching.
type Client struct {
	redis      *redis.Client
	defaultTTL time.Duration
	logger     *logrus.Logger
}

// NewClient connects to Redis and verifies the connection.
func NewClient(config domain.CacheConfig, logger *logrus.Logger) (*Client, error) {
	opts, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opts.PoolSize = config.PoolSize
	opts.PoolTimeout = config.PoolTimeout
	opts.MaxRetries = config.MaxRetries

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{
		redis:      client,
		defaultTTL: config.DefaultTTL,
		logger:     logger,
	}, nil
}

// Key derives the cache key for a request: the mode plus a digest of the
// canonical input JSON.
func Key(mode domain.Mode, input *domain.PatientInput) (string, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("failed to marshal input for cache key: %w", err)
	}
	digest := sha256.Sum256(payload)
	return fmt.Sprintf("hemoscan:prediction:%s:%x", mode, digest), nil
}

// Get retrieves a cached response. A miss is not an error.
func (c *Client) Get(ctx context.Context, key string) (*domain.PredictionResponse, bool, error) {
	data, err := c.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cached response: %w", err)
	}

	response := &domain.PredictionResponse{}
	if err := json.Unmarshal(data, response); err != nil {
		// A corrupt entry is treated as a miss; it will be overwritten.
		c.logger.WithError(err).WithField("key", key).Warn("Discarding corrupt cache entry")
		return nil, false, nil
	}

	return response, true, nil
}

// Set stores an assembled response under the given key.
func (c *Client) Set(ctx context.Context, key string, response *domain.PredictionResponse) error {
	data, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to marshal response for caching: %w", err)
	}

	if err := c.redis.Set(ctx, key, data, c.defaultTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache response: %w", err)
	}

	return nil
}

// Close releases the Redis connection.
func (c *Client) Close() error {
	return c.redis.Close()
}
