// Package kv provides the key-value persistence boundary: a minimal
// backend contract and a lazily-resolved client that degrades to soft
// failures when the backend cannot be reached.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Backend when a key has no value.
var ErrNotFound = errors.New("kv: key not found")

// Backend is the full contract a backing store must provide. No
// ordering or transactional guarantees are assumed across keys.
type Backend interface {
	// Get returns the stored value for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend's resources.
	Close() error
}
