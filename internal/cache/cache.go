package cache

import (
	"context"
	"time"
)

// Cache is a small string cache used for price-comparison responses.
// A miss returns ("", nil).
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
