// Package kv provides a key-value store abstraction for short-lived auth
// state. Backends are redis (production) and memory (tests, single-process
// development).
package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key does not exist in the store.
var ErrNotFound = errors.New("kv: key not found")

// Store defines a minimal key-value interface. Keys are strings, values are
// byte slices. All writes take a TTL; 0 means the key does not expire.
type Store interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get returns ErrNotFound if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// GetDel returns the value and removes the key in one step, so only one
	// caller can ever observe it. Missing keys give ErrNotFound.
	GetDel(ctx context.Context, key string) ([]byte, error)

	// Delete returns nil if the key doesn't exist.
	Delete(ctx context.Context, key string) error

	// SetNX sets a value only if the key doesn't exist (atomic).
	// Returns true if the key was set, false if it already existed.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)

	Close() error
}
