// ABOUTME: Redis page cache using go-redis with RedisJSON envelopes
// ABOUTME: Entries are stored as JSON documents so operators can inspect them server-side

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nitishm/go-rejson/v4"
	"github.com/redis/go-redis/v9"

	"releaseradar/pkg/config"
)

// pageEntry is the stored document. Body is base64 in the JSON encoding;
// StoredAt makes entries legible when inspected with JSON.GET.
type pageEntry struct {
	StoredAt time.Time `json:"storedAt"`
	Body     []byte    `json:"body"`
}

// RedisCache implements the Cache interface using Redis.
type RedisCache struct {
	client  *redis.Client
	handler *rejson.Handler
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(cfg config.RedisConfig) (*RedisCache, error) {
	if cfg.Address == "" {
		return nil, errors.New("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	handler := rejson.NewReJSONHandler()
	handler.SetGoRedisClientWithContext(context.Background(), client)

	return &RedisCache{
		client:  client,
		handler: handler,
	}, nil
}

// Get retrieves a cached page body.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := c.handler.JSONGet(key, ".")
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errors.New("key not found")
		}
		return nil, err
	}

	var encoded []byte
	switch v := raw.(type) {
	case []byte:
		encoded = v
	case string:
		encoded = []byte(v)
	default:
		return nil, fmt.Errorf("unexpected reply type %T for key", raw)
	}

	var entry pageEntry
	if err := json.Unmarshal(encoded, &entry); err != nil {
		return nil, fmt.Errorf("corrupt cache entry: %w", err)
	}

	return entry.Body, nil
}

// Set stores a page body with the given TTL. A zero TTL stores it without
// expiration.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	entry := pageEntry{
		StoredAt: time.Now().UTC(),
		Body:     value,
	}

	if _, err := c.handler.JSONSet(key, ".", entry); err != nil {
		return err
	}

	if ttl > 0 {
		if err := c.client.Expire(ctx, key, ttl).Err(); err != nil {
			return err
		}
	}

	return nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	c.client.Del(ctx, key)
	return nil
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
