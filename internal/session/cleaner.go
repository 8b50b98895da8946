package session

import (
	"context"
	"log/slog"
	"time"
)

// Cleaner drops idle forms on a schedule.
type Cleaner struct {
	engine   *Engine
	log      *slog.Logger
	ttl      time.Duration
	interval time.Duration
}

// NewCleaner constructs a Cleaner instance. A zero ttl disables it.
func NewCleaner(engine *Engine, log *slog.Logger, ttl, interval time.Duration) *Cleaner {
	if log == nil {
		log = slog.Default()
	}
	if interval <= 0 {
		interval = time.Minute
	}

	return &Cleaner{
		engine:   engine,
		log:      log,
		ttl:      ttl,
		interval: interval,
	}
}

// Run starts the cleanup loop until the context is cancelled.
func (c *Cleaner) Run(ctx context.Context) {
	if c == nil || c.engine == nil || c.ttl <= 0 {
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.log.Info("session cleaner stopped", slog.Any("reason", ctx.Err()))
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *Cleaner) cleanup() {
	expired := c.engine.Expire(c.ttl)
	for _, chatID := range expired {
		c.log.Info("idle session expired", slog.Int64("chat_id", chatID))
	}
}
