package idempotency

import (
	"context"
	"log/slog"
	"time"
)

// Cleaner periodically sweeps expired records from a MemoryStore. Redis expires keys on its own.
type Cleaner struct {
	store    *MemoryStore
	log      *slog.Logger
	interval time.Duration
}

func NewCleaner(store *MemoryStore, log *slog.Logger, interval time.Duration) *Cleaner {
	if log == nil {
		log = slog.Default()
	}
	if interval <= 0 {
		interval = time.Minute
	}

	return &Cleaner{
		store:    store,
		log:      log,
		interval: interval,
	}
}

func (c *Cleaner) Run(ctx context.Context) {
	if c == nil || c.store == nil {
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := c.store.Sweep(); removed > 0 {
				c.log.Debug("idempotency records swept", slog.Int("removed", removed))
			}
		}
	}
}
