// internal/core/ports/cache.go
package ports

import (
	"context"
	"time"
)

// CacheRepository stores catalog pages and dashboard snapshots as JSON.
// Get reports a miss with an error; callers fall back to the store.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest any) error
	SetWithTTL(ctx context.Context, key string, value any, ttl time.Duration) error

	// GetOrSet fills dest from key, calling fetch and storing its result on a miss
	GetOrSet(ctx context.Context, key string, dest any, fetch func() (any, error), ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error
	// DeletePattern drops every key matching a glob such as "catalog:stock:*"
	DeletePattern(ctx context.Context, pattern string) error

	Ping(ctx context.Context) error
}
