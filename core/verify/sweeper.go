package verify

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RunSweeper purges expired entries at the configured interval until the
// context is cancelled. Meant to run in its own goroutine next to the server.
func (c *Cache) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := c.PurgeExpired(ctx)
			if err != nil {
				c.logger.Warn("cache sweep failed", zap.Error(err))
				continue
			}
			if purged > 0 {
				c.logger.Info("purged expired cache entries", zap.Int64("count", purged))
			}
		}
	}
}
