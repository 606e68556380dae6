package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"simplecache/internal/store"
)

// ErrClosed is returned by a Handle after Close.
var ErrClosed = errors.New("cache handle is closed")

// Handle lazily opens one storage backend and shares it between callers
// until Close.
type Handle struct {
	mu      sync.Mutex
	open    Opener
	backend store.Backend
	closed  bool
}

// NewHandle returns a handle that calls open on first use.
func NewHandle(open Opener) *Handle {
	return &Handle{open: open}
}

// Backend returns the shared backend, opening it and ensuring the cache
// table exists on the first call.
func (h *Handle) Backend(ctx context.Context) (store.Backend, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrClosed
	}
	if h.backend != nil {
		return h.backend, nil
	}

	backend, err := h.open(ctx)
	if err != nil {
		return nil, err
	}
	if err := backend.EnsureTable(ctx); err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("ensure cache table: %w", err)
	}
	slog.Info("cache database connected and migrated")
	h.backend = backend
	return backend, nil
}

// Close releases the backend, if one was opened. Later calls to Backend
// fail with ErrClosed. Close is idempotent.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true
	if h.backend == nil {
		return nil
	}
	err := h.backend.Close()
	h.backend = nil
	return err
}
