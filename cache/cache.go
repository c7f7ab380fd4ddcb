// Package cache provides the response cache used in front of read-heavy
// movie endpoints. It is a performance layer only, never a source of truth:
// callers must treat every miss or cache failure as a plain database read.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss reports that a key is absent or expired.
var ErrMiss = errors.New("cache: miss")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Clear drops every cached entry. Mutating movie and favorite
	// operations call this wholesale instead of keyed invalidation,
	// trading hit-rate for simplicity.
	Clear(ctx context.Context) error
}
