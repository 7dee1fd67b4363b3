package cleanup

import (
	"context"
	"log/slog"
	"time"
)

// Purger drops expired entries from a backend
type Purger interface {
	PurgeExpired(ctx context.Context) (int, error)
	Type() string
}

// Cleaner handles periodic purging of expired client state
type Cleaner struct {
	purger   Purger
	interval time.Duration
}

// NewCleaner creates a new cleanup worker
func NewCleaner(purger Purger, interval time.Duration) *Cleaner {
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	return &Cleaner{
		purger:   purger,
		interval: interval,
	}
}

// Run is the main loop of the cleanup worker. It returns when ctx is cancelled.
func (c *Cleaner) Run(ctx context.Context) {
	slog.Info("cleanup worker started", "interval", c.interval, "backend", c.purger.Type())

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	// Run immediately on start
	c.cleanup(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("cleanup worker stopped")
			return
		case <-ticker.C:
			c.cleanup(ctx)
		}
	}
}

// cleanup purges expired entries once
func (c *Cleaner) cleanup(ctx context.Context) {
	slog.Debug("running cleanup cycle")

	purged, err := c.purger.PurgeExpired(ctx)
	if err != nil {
		slog.Error("failed to purge expired client state", "error", err)
		return
	}

	if purged == 0 {
		slog.Debug("no expired client state found")
		return
	}

	slog.Info("expired client state purged", "count", purged)
}
