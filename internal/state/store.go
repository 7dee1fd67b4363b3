// Package state keeps the per-client blobs of the quiz (answers, cached
// analysis result and chat session) in a memory or Redis backend.
package state

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key has no live value
var ErrNotFound = errors.New("state: not found")

// Store is a string-keyed blob store with optional per-key expiry
type Store interface {
	// Get returns the value of key or ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes keys; missing keys are ignored
	Delete(ctx context.Context, keys ...string) error

	// DeletePrefix removes every key starting with prefix and returns how many were removed
	DeletePrefix(ctx context.Context, prefix string) (int, error)

	// PurgeExpired drops expired entries the backend does not evict by itself
	PurgeExpired(ctx context.Context) (int, error)

	// Type returns the backend name
	Type() string

	// HealthCheck verifies the backend is reachable
	HealthCheck(ctx context.Context) error

	// Close releases backend resources
	Close() error
}
