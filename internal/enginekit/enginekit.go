// Package enginekit defines the contract every storage engine implementation
// must satisfy so the server can select among them at startup. Only the
// native log-structured engine (internal/engine) is implemented against this
// contract; an alternate engine — a thin wrapper over a third-party embedded
// database — need only satisfy it too.
package enginekit

import "context"

// Engine is the minimal, thread-safe surface the server drives.
// Every method must be safe for concurrent use by multiple callers.
type Engine interface {
	// Set durably stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Get returns the value stored under key and true, or ("", false) if the
	// key is absent. It never returns an error for a clean miss.
	Get(ctx context.Context, key string) (string, bool, error)

	// Remove deletes key. It returns an error satisfying errors.IsKeyNotFound
	// if key was already absent.
	Remove(ctx context.Context, key string) error

	// Close releases the engine's resources. The engine must not be used
	// after Close returns.
	Close() error

	// Name reports the engine implementation's identity, e.g. "kvs". The
	// server persists this in the store directory's sticky engine marker.
	Name() string
}
