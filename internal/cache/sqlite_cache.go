package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"simplecache/internal/codec"
	"simplecache/internal/database"
	"simplecache/internal/models"
	"simplecache/internal/platform"
	"simplecache/internal/store"
)

// SqliteObjectCache is the persistent object cache. It owns a database
// handle, which is opened on first use, and holds no locks of its own:
// concurrent callers are serialized by the storage backend.
type SqliteObjectCache struct {
	handle   *database.Handle
	codec    codec.Codec
	filter   codec.Filter
	registry *Registry
	listener func(Event)
	log      *slog.Logger
}

// Option configures a SqliteObjectCache.
type Option func(*SqliteObjectCache)

// WithCodec replaces the msgpack codec.
func WithCodec(c codec.Codec) Option {
	return func(sc *SqliteObjectCache) { sc.codec = c }
}

// WithFilter installs the before-write / after-read payload filter.
func WithFilter(f codec.Filter) Option {
	return func(sc *SqliteObjectCache) { sc.filter = f }
}

// WithRegistry sets explicit type tags.
func WithRegistry(r *Registry) Option {
	return func(sc *SqliteObjectCache) { sc.registry = r }
}

// WithListener receives an Event after every successful mutation. It is
// called synchronously and must not block.
func WithListener(fn func(Event)) Option {
	return func(sc *SqliteObjectCache) { sc.listener = fn }
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(sc *SqliteObjectCache) { sc.log = l }
}

// New returns a cache over handle.
func New(handle *database.Handle, opts ...Option) *SqliteObjectCache {
	c := &SqliteObjectCache{
		handle:   handle,
		codec:    codec.Default,
		filter:   codec.Identity,
		registry: NewRegistry(),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewForApplication returns a cache stored at the platform location for
// loc.ApplicationName. Nothing touches the disk until the first operation,
// which fails with ErrApplicationNotConfigured if the name is empty.
func NewForApplication(loc platform.Locator, dbOpts database.Options, opts ...Option) *SqliteObjectCache {
	return New(database.NewHandle(database.FileOpener(loc, dbOpts)), opts...)
}

// now is a small indirection to allow test stubbing if needed.
var now = time.Now

// Registry returns the registry used to resolve type tags.
func (c *SqliteObjectCache) Registry() *Registry {
	return c.registry
}

func (c *SqliteObjectCache) backend(ctx context.Context) (store.Backend, error) {
	return c.handle.Backend(ctx)
}

func (c *SqliteObjectCache) find(ctx context.Context, key string) (*models.CacheElement, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: empty key", ErrInvalidArgument)
	}
	b, err := c.backend(ctx)
	if err != nil {
		return nil, err
	}
	element, err := b.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
		}
		return nil, fmt.Errorf("cache: find %q: %w", key, err)
	}
	return element, nil
}

func (c *SqliteObjectCache) decode(element *models.CacheElement, v any) error {
	data, err := c.filter.AfterRead(element.Value)
	if err != nil {
		return fmt.Errorf("cache: read filter for %q: %w", element.Key, err)
	}
	if err := c.codec.Unmarshal(data, v); err != nil {
		return fmt.Errorf("cache: decode %q: %w", element.Key, err)
	}
	return nil
}

func (c *SqliteObjectCache) emit(e Event) {
	if c.listener == nil {
		return
	}
	e.At = now().UTC()
	c.listener(e)
}

// GetValue implements ObjectCache.GetValue.
func (c *SqliteObjectCache) GetValue(ctx context.Context, key string) (any, error) {
	element, err := c.find(ctx, key)
	if err != nil {
		return nil, err
	}
	var v any
	if err := c.decode(element, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// GetCreatedAt implements ObjectCache.GetCreatedAt. A missing key is not an
// error.
func (c *SqliteObjectCache) GetCreatedAt(ctx context.Context, key string) (time.Time, bool, error) {
	element, err := c.find(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	return element.CreatedAt(), true, nil
}

// Stat implements ObjectCache.Stat.
func (c *SqliteObjectCache) Stat(ctx context.Context, key string) (EntryInfo, error) {
	element, err := c.find(ctx, key)
	if err != nil {
		return EntryInfo{}, err
	}
	return EntryInfo{
		Key:       element.Key,
		TypeTag:   element.TypeName,
		CreatedAt: element.CreatedAt(),
		Expires:   element.Expires(),
		ExpiresAt: element.ExpiresAt(),
		Size:      len(element.Value),
	}, nil
}

// Keys implements ObjectCache.Keys.
func (c *SqliteObjectCache) Keys(ctx context.Context, tag string) ([]string, error) {
	b, err := c.backend(ctx)
	if err != nil {
		return nil, err
	}
	var elements []models.CacheElement
	if tag == "" {
		elements, err = b.FindWhere(ctx, "")
	} else {
		elements, err = b.FindWhere(ctx, "type_name = ?", tag)
	}
	if err != nil {
		return nil, fmt.Errorf("cache: list keys: %w", err)
	}
	keys := make([]string, 0, len(elements))
	for _, e := range elements {
		keys = append(keys, e.Key)
	}
	return keys, nil
}

func (c *SqliteObjectCache) findTagged(ctx context.Context, tag string) ([]models.CacheElement, error) {
	b, err := c.backend(ctx)
	if err != nil {
		return nil, err
	}
	elements, err := b.FindWhere(ctx, "type_name = ?", tag)
	if err != nil {
		return nil, fmt.Errorf("cache: scan %q: %w", tag, err)
	}
	return elements, nil
}

// InsertTagged implements ObjectCache.InsertTagged. An existing entry under
// key is replaced whatever its tag.
func (c *SqliteObjectCache) InsertTagged(ctx context.Context, key, tag string, value any, opts ...InsertOption) (int64, error) {
	if key == "" {
		return 0, fmt.Errorf("%w: empty key", ErrInvalidArgument)
	}
	if tag == "" {
		return 0, fmt.Errorf("%w: empty type tag", ErrInvalidArgument)
	}

	var o insertOptions
	for _, opt := range opts {
		opt(&o)
	}
	expiration := models.NeverExpires
	if o.hasExpiry {
		expiration = models.Ticks(o.expiresAt)
	}

	data, err := c.codec.Marshal(value)
	if err != nil {
		return 0, fmt.Errorf("cache: encode %q: %w", key, err)
	}
	if data, err = c.filter.BeforeWrite(data); err != nil {
		return 0, fmt.Errorf("cache: write filter for %q: %w", key, err)
	}

	b, err := c.backend(ctx)
	if err != nil {
		return 0, err
	}
	n, err := b.Upsert(ctx, &models.CacheElement{
		Key:        key,
		TypeName:   tag,
		Value:      data,
		Expiration: expiration,
		Created:    models.Ticks(now()),
	})
	if err != nil {
		return 0, fmt.Errorf("cache: insert %q: %w", key, err)
	}
	c.emit(Event{Op: OpInsert, Key: key, TypeTag: tag, Count: n})
	return n, nil
}

// InvalidateTagged implements ObjectCache.InvalidateTagged. The entry is
// left untouched on ErrTypeMismatch.
func (c *SqliteObjectCache) InvalidateTagged(ctx context.Context, key, tag string) (int64, error) {
	element, err := c.find(ctx, key)
	if err != nil {
		return 0, err
	}
	if element.TypeName != tag {
		return 0, fmt.Errorf("%w: %q is stored as %s, not %s", ErrTypeMismatch, key, element.TypeName, tag)
	}
	b, err := c.backend(ctx)
	if err != nil {
		return 0, err
	}
	n, err := b.Delete(ctx, element)
	if err != nil {
		return 0, fmt.Errorf("cache: invalidate %q: %w", key, err)
	}
	c.emit(Event{Op: OpInvalidate, Key: key, TypeTag: tag, Count: n})
	return n, nil
}

// InvalidateTag implements ObjectCache.InvalidateTag.
func (c *SqliteObjectCache) InvalidateTag(ctx context.Context, tag string) (int64, error) {
	if tag == "" {
		return 0, fmt.Errorf("%w: empty type tag", ErrInvalidArgument)
	}
	b, err := c.backend(ctx)
	if err != nil {
		return 0, err
	}
	n, err := b.DeleteWhere(ctx, "type_name = ?", tag)
	if err != nil {
		return 0, fmt.Errorf("cache: invalidate all %q: %w", tag, err)
	}
	c.log.Debug("invalidated type", "type", tag, "deleted", n)
	c.emit(Event{Op: OpInvalidateAll, TypeTag: tag, Count: n})
	return n, nil
}

// Vacuum implements ObjectCache.Vacuum. Entries whose expiration is strictly
// before the current time are deleted, then the database file is compacted.
// This is the only place expiration is enforced.
func (c *SqliteObjectCache) Vacuum(ctx context.Context) (int64, error) {
	b, err := c.backend(ctx)
	if err != nil {
		return 0, err
	}
	deleted, err := b.DeleteWhere(ctx, "expiration < ?", models.Ticks(now()))
	if err != nil {
		return 0, fmt.Errorf("cache: delete expired: %w", err)
	}
	if _, err := b.Execute(ctx, "VACUUM"); err != nil {
		return deleted, fmt.Errorf("cache: vacuum: %w", err)
	}
	c.log.Debug("vacuum complete", "deleted", deleted)
	c.emit(Event{Op: OpVacuum, Count: deleted})
	return deleted, nil
}

// Flush implements ObjectCache.Flush.
func (c *SqliteObjectCache) Flush(ctx context.Context) error {
	b, err := c.backend(ctx)
	if err != nil {
		return err
	}
	if _, err := b.Execute(ctx, "PRAGMA wal_checkpoint(FULL)"); err != nil {
		return fmt.Errorf("cache: flush: %w", err)
	}
	return nil
}

// Close implements ObjectCache.Close. The underlying database is closed
// synchronously.
func (c *SqliteObjectCache) Close() error {
	return c.handle.Close()
}

// Ensure SqliteObjectCache implements ObjectCache at compile time.
var _ ObjectCache = (*SqliteObjectCache)(nil)
