package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Entries expire after a day, which comfortably covers the alert
// deduplication window without letting stale keys pile up.
const entryTTL = 24 * time.Hour

// RedisCache implements CacheInterface on top of a Redis instance.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache returns an unconnected RedisCache. Call Connect before use.
func NewRedisCache() *RedisCache {
	return &RedisCache{}
}

// Connect parses the given Redis URL, opens a client, and pings the server
// to verify reachability.
func (r *RedisCache) Connect(redisURL string) error {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("invalid redis url: %w", err)
	}

	r.client = redis.NewClient(opt)

	_, err = r.client.Ping(context.Background()).Result()
	return err
}

// Disconnect closes the connection to the Redis server.
func (r *RedisCache) Disconnect() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// Set stores a key-value pair, marshalling the value as JSON. The entry
// expires after entryTTL.
func (r *RedisCache) Set(ctx context.Context, key string, value interface{}) error {
	marshaled, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, marshaled, entryTTL).Err()
}

// Get retrieves and unmarshals the value stored under the given key.
func (r *RedisCache) Get(ctx context.Context, key string) (interface{}, error) {
	value, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("key does not exist")
	} else if err != nil {
		return nil, err
	}

	var result interface{}
	if err = json.Unmarshal([]byte(value), &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Clear removes all keys from the currently selected database.
func (r *RedisCache) Clear(ctx context.Context) error {
	return r.client.FlushDB(ctx).Err()
}
