package credential

import "context"

// Store is a durable client-side key-value store.
//
// Get returns (nil, nil) when the key is absent. Implementations must be safe
// for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
