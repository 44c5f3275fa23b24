// Package storage provides the key-value backing store for deck bundles and
// the library index, with a SQLite implementation for the CLI and an
// in-memory one for tests.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound indicates a requested key does not exist.
var ErrNotFound = errors.New("storage: not found")

// Store is the minimal contract the persistence adapter depends on. Values
// are opaque text; interpretation belongs to the caller.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
