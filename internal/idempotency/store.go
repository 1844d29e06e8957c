// Package idempotency rejects replays of requests that carry an Idempotency-Key.
package idempotency

import (
	"context"
	"time"
)

type Store interface {
	// Reserve claims key for ttl. It reports false if key is already held.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release gives key up so a later request may reserve it again.
	Release(ctx context.Context, key string) error
	Close() error
}
