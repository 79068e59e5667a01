package storage

import (
	"context"
	"fmt"
)

// CacheInterface defines the operations the backend expects from its
// short-lived key-value store, used for alert deduplication and auth
// token bookkeeping.
type CacheInterface interface {
	Connect(url string) error
	Disconnect() error
	Set(ctx context.Context, key string, value interface{}) error
	Get(ctx context.Context, key string) (interface{}, error)
	Clear(ctx context.Context) error
}

// NewCache returns a CacheInterface backed by Redis, connected to the
// given address.
func NewCache(url string) (CacheInterface, error) {
	cache := NewRedisCache()
	if err := cache.Connect(url); err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}
	return cache, nil
}
