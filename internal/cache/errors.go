package cache

import (
	"errors"

	"simplecache/internal/database"
	"simplecache/internal/platform"
)

var (
	// ErrInvalidArgument is returned for an empty key or type tag.
	ErrInvalidArgument = errors.New("cache: invalid argument")

	// ErrNotFound is returned when no entry exists for a key.
	ErrNotFound = errors.New("cache: key not found")

	// ErrTypeMismatch is returned when an entry exists but was stored under
	// a different type tag than the one requested.
	ErrTypeMismatch = errors.New("cache: type mismatch")

	// ErrApplicationNotConfigured is returned on first use when the
	// database location depends on an application name that was never set.
	ErrApplicationNotConfigured = platform.ErrApplicationNotConfigured

	// ErrClosed is returned by every operation after Close.
	ErrClosed = database.ErrClosed
)
