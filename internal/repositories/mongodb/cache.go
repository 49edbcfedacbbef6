package mongodb

import (
	"context"
	"time"
)

// CacheService is the subset of the Redis cache the repositories use. A nil
// CacheService disables caching.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) (int64, error)
}

const defaultCacheTTL = 15 * time.Minute
