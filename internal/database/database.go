package database

import (
	"context"
	"fmt"
	"log/slog"

	"simplecache/internal/platform"
	"simplecache/internal/store"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options controls how the SQLite database is opened.
type Options struct {
	// LogLevel is the GORM SQL log level. Zero means silent.
	LogLevel logger.LogLevel
	// BusyTimeoutMillis is how long a writer waits on a locked database.
	BusyTimeoutMillis int
}

// Opener produces an open storage backend. It is the platform hook: callers
// decide where the database lives and how it is opened.
type Opener func(ctx context.Context) (store.Backend, error)

// Open opens (creating if needed) the SQLite database at path.
// Using glebarez/sqlite which is a pure Go implementation (no CGO required)
func Open(path string, opts Options) (*gorm.DB, error) {
	level := opts.LogLevel
	if level == 0 {
		level = logger.Silent
	}
	busy := opts.BusyTimeoutMillis
	if busy <= 0 {
		busy = 5000
	}

	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)", path, busy)
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("open cache database %q: %w", path, err)
	}
	if path == ":memory:" {
		// every connection to :memory: is a separate database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// PathOpener opens the database at a fixed path.
func PathOpener(path string, opts Options) Opener {
	return func(ctx context.Context) (store.Backend, error) {
		db, err := Open(path, opts)
		if err != nil {
			return nil, err
		}
		slog.Debug("cache database opened", "path", path)
		return store.NewGormBackend(db), nil
	}
}

// FileOpener opens the database at the location resolved by loc.
func FileOpener(loc platform.Locator, opts Options) Opener {
	return func(ctx context.Context) (store.Backend, error) {
		path, err := loc.DatabasePath()
		if err != nil {
			return nil, err
		}
		return PathOpener(path, opts)(ctx)
	}
}

// Static wraps an already open connection.
func Static(db *gorm.DB) Opener {
	return func(context.Context) (store.Backend, error) {
		return store.NewGormBackend(db), nil
	}
}
