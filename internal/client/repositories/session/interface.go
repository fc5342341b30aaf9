// Package session provides the key-value port backing the local session
// store, plus its SQLite implementation.
package session

import (
	"context"
)

// Repository is a small key-value port over the durable local medium.
// Get returns (nil, nil) for a missing key. Delete and Clear are idempotent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
