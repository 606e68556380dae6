package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrApplicationNotConfigured is returned when the database location is
// resolved before an application name was set.
var ErrApplicationNotConfigured = errors.New("make sure to set ApplicationName on startup")

const (
	cacheFolder    = "SimpleCache"
	sqliteFilename = "cache.db3"
)

// Locator resolves where the cache database lives on disk.
type Locator struct {
	// ApplicationName scopes the cache directory. Required.
	ApplicationName string
	// BaseDir overrides the per-user configuration directory.
	BaseDir string
}

// Dir returns <base>/<ApplicationName>/SimpleCache without creating it.
func (l Locator) Dir() (string, error) {
	if l.ApplicationName == "" {
		return "", ErrApplicationNotConfigured
	}
	base := l.BaseDir
	if base == "" {
		var err error
		base, err = userDataDir()
		if err != nil {
			return "", fmt.Errorf("resolve data directory: %w", err)
		}
	}
	return filepath.Join(base, l.ApplicationName, cacheFolder), nil
}

// DatabasePath returns the database file path, creating its directory if
// it does not exist yet.
func (l Locator) DatabasePath() (string, error) {
	dir, err := l.Dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create cache directory: %w", err)
	}
	return filepath.Join(dir, sqliteFilename), nil
}

// userDataDir is a small indirection to allow test stubbing.
var userDataDir = os.UserConfigDir
