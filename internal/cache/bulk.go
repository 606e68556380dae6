package cache

import (
	"context"
	"errors"
	"maps"
	"slices"
	"time"
)

// The bulk operations below are sequential compositions of the single-key
// ones. They are not transactional: when one fails, the sub-operations
// before it stay committed.

// GetMany returns the entries for keys decoded as T. Keys with no entry are
// left out of the result.
func GetMany[T any](ctx context.Context, c *SqliteObjectCache, keys []string) (map[string]T, error) {
	results := make(map[string]T, len(keys))
	for _, key := range keys {
		v, err := Get[T](ctx, c, key)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		results[key] = v
	}
	return results, nil
}

// InsertMany inserts every pair in ascending key order with the same
// options and returns the total rows affected.
func InsertMany[T any](ctx context.Context, c *SqliteObjectCache, pairs map[string]T, opts ...InsertOption) (int64, error) {
	var inserted int64
	for _, key := range slices.Sorted(maps.Keys(pairs)) {
		n, err := Insert(ctx, c, key, pairs[key], opts...)
		if err != nil {
			return inserted, err
		}
		inserted += n
	}
	return inserted, nil
}

// InvalidateMany invalidates each key as T. Missing keys are skipped and not
// counted. ErrTypeMismatch is not skipped: it stops the batch and is
// returned together with the number of entries already deleted, which
// remain deleted.
func InvalidateMany[T any](ctx context.Context, c *SqliteObjectCache, keys []string) (int64, error) {
	var invalidated int64
	for _, key := range keys {
		n, err := Invalidate[T](ctx, c, key)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return invalidated, err
		}
		invalidated += n
	}
	return invalidated, nil
}

// GetCreatedAtMany implements ObjectCache.GetCreatedAtMany. Every key is in
// the result; absent keys, including the empty key, map to nil.
func (c *SqliteObjectCache) GetCreatedAtMany(ctx context.Context, keys []string) (map[string]*time.Time, error) {
	results := make(map[string]*time.Time, len(keys))
	for _, key := range keys {
		if key == "" {
			// never stored, since Insert rejects it
			results[key] = nil
			continue
		}
		createdAt, ok, err := c.GetCreatedAt(ctx, key)
		if err != nil {
			return nil, err
		}
		if !ok {
			results[key] = nil
			continue
		}
		results[key] = &createdAt
	}
	return results, nil
}
