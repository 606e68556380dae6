package cache

import (
	"context"
	"errors"
	"time"
)

// RunVacuum calls Vacuum every interval until ctx is done or the cache is
// closed. Failures are logged and the loop keeps going.
func (c *SqliteObjectCache) RunVacuum(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := c.Vacuum(ctx)
			if err != nil {
				if errors.Is(err, ErrClosed) {
					return
				}
				c.log.Error("scheduled vacuum failed", "error", err)
				continue
			}
			if deleted > 0 {
				c.log.Info("scheduled vacuum removed expired entries", "deleted", deleted)
			}
		}
	}
}
