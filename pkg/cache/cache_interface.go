package cache

import (
	"context"
	"time"
)

// Cache là read-through cache cho entity theo id.
// Values are stored as JSON; implementations must treat a missing key as a
// miss (false, nil), never as an error.
type Cache interface {
	// Get decodes the cached value into dest; dest is untouched on a miss
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete is a no-op for keys that do not exist
	Delete(ctx context.Context, keys ...string) error

	Ping(ctx context.Context) error
}
