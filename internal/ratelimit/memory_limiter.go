package ratelimit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// MemoryLimiter is an in-process sliding-window Limiter. It backs the bot
// when Redis is disabled and serves as the fallback when Redis fails.
type MemoryLimiter struct {
	mu   sync.Mutex
	hits map[string][]time.Time
	log  *slog.Logger
	now  func() time.Time
}

var _ Limiter = (*MemoryLimiter)(nil)

// NewMemoryLimiter returns an in-memory limiter.
func NewMemoryLimiter(log *slog.Logger) *MemoryLimiter {
	if log == nil {
		log = slog.Default()
	}

	return &MemoryLimiter{
		hits: make(map[string][]time.Time),
		log:  log,
		now:  time.Now,
	}
}

// Allow records a hit for key if it fits rule.
func (m *MemoryLimiter) Allow(_ context.Context, key string, rule Rule) (Decision, error) {
	if rule.Limit <= 0 {
		return Decision{RetryAfter: rule.Window}, nil
	}

	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	hits := dropBefore(m.hits[key], now.Add(-rule.Window))
	if len(hits) >= rule.Limit {
		m.hits[key] = hits
		return Decision{RetryAfter: hits[0].Add(rule.Window).Sub(now)}, nil
	}

	hits = append(hits, now)
	m.hits[key] = hits

	return Decision{Allowed: true, Remaining: rule.Limit - len(hits)}, nil
}

// Cleanup forgets keys without a hit in the last maxAge and returns how many were dropped.
func (m *MemoryLimiter) Cleanup(maxAge time.Duration) int {
	if maxAge <= 0 {
		return 0
	}

	cutoff := m.now().Add(-maxAge)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, hits := range m.hits {
		if len(hits) == 0 || hits[len(hits)-1].Before(cutoff) {
			delete(m.hits, key)
			removed++
		}
	}

	return removed
}

// dropBefore removes hits at or before cutoff; hits are in ascending order.
func dropBefore(hits []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	if i == 0 {
		return hits
	}

	return append(hits[:0], hits[i:]...)
}
