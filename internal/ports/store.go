// Package ports defines the interfaces (driven and driving ports)
// between the timer core and external infrastructure.
package ports

import "context"

// Storage keys for the two persisted documents.
const (
	// KeySettings holds the serialized domain.Settings.
	KeySettings = "settings"

	// KeyStats holds the serialized daily counts and session history.
	KeyStats = "stats"
)

// StateStore is the key/value persistence boundary. Values are JSON
// documents; writes are best-effort and independent per key.
// This is a driven port (implemented by adapters).
type StateStore interface {
	// Get retrieves the value for a key. The second result is false
	// when the key is absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores the value for a key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Subscribe registers a callback fired with the new value whenever
	// another process changes the key. Changes made through this store
	// instance do not fire. The returned func cancels the subscription.
	Subscribe(key string, fn func(value []byte)) (cancel func())

	// Close releases the underlying storage.
	Close() error
}
