package services

import (
	"context"
	"errors"
	"time"

	"cybertrax/pkg/cache"
)

// CacheService is the part of the Redis cache the services rely on. A nil
// CacheService turns caching off.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) (int64, error)
}

// EventBroker fans order events out to every running instance.
type EventBroker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
}

const (
	distanceCachePrefix = "distance:"
	cacheOpTimeout      = 2 * time.Second
)

func isCacheMiss(err error) bool {
	return errors.Is(err, cache.ErrCacheMiss)
}
