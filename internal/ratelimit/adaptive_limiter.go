package ratelimit

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Proton-105/warung-bot/pkg/metrics"
)

// AdaptiveLimiter delegates to a primary (Redis) limiter and falls back to
// a stricter in-memory limiter when the primary fails. A nil primary means
// Redis is disabled and the fallback enforces the full limit.
type AdaptiveLimiter struct {
	primary  Limiter
	fallback Limiter
	log      *slog.Logger
}

var _ Limiter = (*AdaptiveLimiter)(nil)

// NewAdaptiveLimiter combines a primary and a fallback backend. primary may be nil.
func NewAdaptiveLimiter(primary, fallback Limiter, log *slog.Logger) *AdaptiveLimiter {
	if log == nil {
		log = slog.Default()
	}

	return &AdaptiveLimiter{
		primary:  primary,
		fallback: fallback,
		log:      log,
	}
}

// Allow evaluates key on the primary backend. When the primary errors the
// fallback runs at half the limit, since each instance then counts alone.
// A rejected hit is reported as ErrLimitExceeded alongside the decision.
func (a *AdaptiveLimiter) Allow(ctx context.Context, key string, rule Rule) (Decision, error) {
	if a.primary == nil {
		return a.decide(ctx, a.fallback, "memory", key, rule)
	}

	decision, err := a.decide(ctx, a.primary, "redis", key, rule)
	if err == nil || errors.Is(err, ErrLimitExceeded) {
		return decision, err
	}

	metrics.RecordRateLimitFallback()
	a.log.Warn("redis limiter failed, falling back to in-memory", slog.String("key", key), slog.Any("error", err))

	degraded := rule
	degraded.Limit = max(rule.Limit/2, 1)

	return a.decide(ctx, a.fallback, "fallback", key, degraded)
}

func (a *AdaptiveLimiter) decide(ctx context.Context, backend Limiter, label, key string, rule Rule) (Decision, error) {
	decision, err := backend.Allow(ctx, key, rule)
	if err != nil {
		return decision, err
	}

	metrics.RecordRateLimitCheck(label, decision.Allowed)
	if !decision.Allowed {
		return decision, ErrLimitExceeded
	}

	return decision, nil
}
