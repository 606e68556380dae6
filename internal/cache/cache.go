package cache

import (
	"context"
	"time"
)

// ObjectCache is the untyped surface of the cache: everything that does not
// need a Go type parameter. Typed access goes through the package-level
// generic functions (Get, GetAll, Insert, Invalidate, InvalidateAll and
// their bulk variants).
type ObjectCache interface {
	// GetValue decodes the entry under key without a target type.
	GetValue(ctx context.Context, key string) (any, error)

	// GetCreatedAt returns when key was inserted, and false if it is absent.
	GetCreatedAt(ctx context.Context, key string) (time.Time, bool, error)

	// GetCreatedAtMany returns an insertion time for every key, nil when
	// absent. An empty key is reported as absent rather than rejected.
	GetCreatedAtMany(ctx context.Context, keys []string) (map[string]*time.Time, error)

	// Stat returns entry metadata without decoding the payload.
	Stat(ctx context.Context, key string) (EntryInfo, error)

	// Keys lists every key, or only those stored under tag when tag is set.
	Keys(ctx context.Context, tag string) ([]string, error)

	// InsertTagged stores value under key with an explicit type tag.
	InsertTagged(ctx context.Context, key, tag string, value any, opts ...InsertOption) (int64, error)

	// InvalidateTagged removes key if it is stored under tag.
	InvalidateTagged(ctx context.Context, key, tag string) (int64, error)

	// InvalidateTag removes every entry stored under tag.
	InvalidateTag(ctx context.Context, tag string) (int64, error)

	// Vacuum deletes expired entries and compacts the database.
	Vacuum(ctx context.Context) (int64, error)

	// Flush makes every committed write durable in the main database file.
	Flush(ctx context.Context) error

	// Close releases the database. Later calls fail with ErrClosed.
	Close() error
}

// EntryInfo describes a stored entry.
type EntryInfo struct {
	Key       string    `json:"key"`
	TypeTag   string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	Expires   bool      `json:"expires"`
	ExpiresAt time.Time `json:"expiresAt,omitzero"`
	Size      int       `json:"size"`
}

type insertOptions struct {
	expiresAt time.Time
	hasExpiry bool
}

// InsertOption configures an insert.
type InsertOption func(*insertOptions)

// ExpiresAt sets an absolute expiration. Vacuum removes the entry once t
// has passed; reads are not affected.
func ExpiresAt(t time.Time) InsertOption {
	return func(o *insertOptions) {
		o.expiresAt = t
		o.hasExpiry = true
	}
}

// ExpiresIn sets an expiration relative to the time of the insert.
func ExpiresIn(d time.Duration) InsertOption {
	return func(o *insertOptions) {
		o.expiresAt = now().Add(d)
		o.hasExpiry = true
	}
}
