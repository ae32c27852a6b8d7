package shared

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KeyValueStore.Get when the key has no value
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore persists small serialized documents under well-known keys.
// Implementations must be safe for use by a single writer and reader.
type KeyValueStore interface {
	// Get returns the value stored under key or ErrKeyNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the store
	Close() error
}
