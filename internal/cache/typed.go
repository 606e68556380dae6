package cache

import (
	"context"
)

// Get decodes the entry under key as T. The stored type tag is not
// checked. Returns ErrNotFound if there is no entry; expired entries are
// returned until a Vacuum removes them.
func Get[T any](ctx context.Context, c *SqliteObjectCache, key string) (T, error) {
	var out T
	element, err := c.find(ctx, key)
	if err != nil {
		return out, err
	}
	if err := c.decode(element, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// GetAll returns every entry stored under T's tag, in storage order. The
// result is empty, not nil, when nothing matches.
func GetAll[T any](ctx context.Context, c *SqliteObjectCache) ([]T, error) {
	elements, err := c.findTagged(ctx, TagOf[T](c.registry))
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(elements))
	for i := range elements {
		var v T
		if err := c.decode(&elements[i], &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// KeysOf lists the keys stored under T's tag.
func KeysOf[T any](ctx context.Context, c *SqliteObjectCache) ([]string, error) {
	return c.Keys(ctx, TagOf[T](c.registry))
}

// Insert stores value under key, tagged with T. Any existing entry for key
// is replaced, including one stored under another type. Returns the rows
// affected (1).
func Insert[T any](ctx context.Context, c *SqliteObjectCache, key string, value T, opts ...InsertOption) (int64, error) {
	return c.InsertTagged(ctx, key, TagOf[T](c.registry), value, opts...)
}

// Invalidate deletes the entry under key. It fails with ErrNotFound if the
// key is absent and with ErrTypeMismatch, leaving the entry in place, if
// the entry was stored as another type.
func Invalidate[T any](ctx context.Context, c *SqliteObjectCache, key string) (int64, error) {
	return c.InvalidateTagged(ctx, key, TagOf[T](c.registry))
}

// InvalidateAll deletes every entry stored under T's tag and returns how
// many were removed.
func InvalidateAll[T any](ctx context.Context, c *SqliteObjectCache) (int64, error) {
	return c.InvalidateTag(ctx, TagOf[T](c.registry))
}
