// Package repo contains the key-value persistence backends for the travel
// calendar. The store serializes the whole travel collection to one string
// and writes it under one key, so a backend only needs Get and Put.
// No business logic lives here.
package repo

import "context"

// KV is a durable string key-value store.
// The store package depends on this interface, not a concrete backend,
// which lets it be unit-tested with the in-memory implementation.
type KV interface {
	// Get returns the value stored under key.
	// Returns domain.ErrNotFound if the key has never been written.
	Get(ctx context.Context, key string) (string, error)

	// Put writes value under key, overwriting any previous value.
	Put(ctx context.Context, key, value string) error
}
