package store

import (
	"context"
	"errors"

	"simplecache/internal/models"
)

// ErrNotFound is returned by FindByKey when no element exists for the key.
var ErrNotFound = errors.New("store: element not found")

// Backend is the table-shaped persistent store the cache is built on.
// Implementations own the serialization of concurrent access.
type Backend interface {
	// FindByKey returns the element stored under key, or ErrNotFound.
	FindByKey(ctx context.Context, key string) (*models.CacheElement, error)

	// FindWhere returns every element matching the predicate.
	FindWhere(ctx context.Context, query string, args ...any) ([]models.CacheElement, error)

	// Upsert inserts the element or replaces every column of an existing one.
	Upsert(ctx context.Context, element *models.CacheElement) (int64, error)

	// Delete removes the element by primary key.
	Delete(ctx context.Context, element *models.CacheElement) (int64, error)

	// DeleteWhere removes every element matching the predicate.
	DeleteWhere(ctx context.Context, query string, args ...any) (int64, error)

	// Execute runs a raw statement and returns the rows affected.
	Execute(ctx context.Context, statement string, args ...any) (int64, error)

	// EnsureTable creates the cache table and its indexes if missing.
	EnsureTable(ctx context.Context) error

	// Close releases the underlying connection pool.
	Close() error
}
