package persistence

import "context"

// KeyValueStore is the opaque durable store the core persists through.
// Implementations must make Set durable before returning: a mutation is
// only considered complete once its write has been accepted by the
// backing store.
type KeyValueStore interface {
	// Get returns the value for a key. The second return value is false
	// when the key does not exist; that is not an error.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set durably writes a value under a key, replacing any previous value
	Set(ctx context.Context, key, value string) error
}
