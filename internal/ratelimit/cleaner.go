package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// staleAfter bounds the longest configured window worth remembering.
const staleAfter = 10 * time.Minute

// Cleaner drops idle limiter state. Either backend may be nil.
type Cleaner struct {
	redisClient redis.UniversalClient
	memory      *MemoryLimiter
	log         *slog.Logger
	interval    time.Duration
}

// NewCleaner constructs a Cleaner.
func NewCleaner(client redis.UniversalClient, memory *MemoryLimiter, log *slog.Logger, interval time.Duration) *Cleaner {
	if log == nil {
		log = slog.Default()
	}

	return &Cleaner{
		redisClient: client,
		memory:      memory,
		log:         log,
		interval:    interval,
	}
}

// Run sweeps every interval until ctx is canceled.
func (c *Cleaner) Run(ctx context.Context) {
	if (c.redisClient == nil && c.memory == nil) || c.interval <= 0 {
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.log.Debug("rate limit cleaner stopped")
			return
		case <-ticker.C:
			c.Sweep(ctx)
		}
	}
}

// Sweep runs a single cleanup pass over both backends.
func (c *Cleaner) Sweep(ctx context.Context) {
	if c.memory != nil {
		if n := c.memory.Cleanup(staleAfter); n > 0 {
			c.log.Debug("in-memory rate limit keys cleaned", slog.Int("keys_removed", n))
		}
	}
	if c.redisClient != nil {
		if n := c.sweepRedis(ctx); n > 0 {
			c.log.Info("rate limit keys cleaned", slog.Int("keys_removed", n))
		}
	}
}

// sweepRedis trims stale hits and deletes sets left empty. Keys normally
// expire on their own; this catches sets written without a TTL.
func (c *Cleaner) sweepRedis(ctx context.Context) int {
	const scanCount = 100

	cutoff := fmt.Sprintf("(%d", time.Now().Add(-staleAfter).UnixMilli())
	removed := 0

	iter := c.redisClient.Scan(ctx, 0, KeyPrefix+"*", scanCount).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		pipe := c.redisClient.TxPipeline()
		pipe.ZRemRangeByScore(ctx, key, "-inf", cutoff)
		card := pipe.ZCard(ctx, key)
		if _, err := pipe.Exec(ctx); err != nil {
			c.log.Warn("rate limit cleanup failed", slog.String("key", key), slog.Any("error", err))
			continue
		}
		if card.Val() > 0 {
			continue
		}

		if err := c.redisClient.Del(ctx, key).Err(); err != nil {
			c.log.Warn("failed to delete empty rate limit key", slog.String("key", key), slog.Any("error", err))
			continue
		}
		removed++
	}
	if err := iter.Err(); err != nil {
		c.log.Error("rate limit scan failed", slog.Any("error", err))
	}

	return removed
}
