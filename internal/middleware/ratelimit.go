package middleware

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"github.com/Proton-105/warung-bot/internal/bot/handlers"
	apperrors "github.com/Proton-105/warung-bot/internal/errors"
	"github.com/Proton-105/warung-bot/internal/ratelimit"
)

// RateLimitMiddleware enforces global, per-user and checkout limits for incoming updates.
type RateLimitMiddleware struct {
	limiter   ratelimit.Limiter
	rules     *ratelimit.Rules
	messenger handlers.Messenger
	log       *slog.Logger
}

// NewRateLimitMiddleware constructs a rate-limit middleware component.
func NewRateLimitMiddleware(limiter ratelimit.Limiter, rules *ratelimit.Rules, messenger handlers.Messenger, log *slog.Logger) *RateLimitMiddleware {
	if log == nil {
		log = slog.Default()
	}

	return &RateLimitMiddleware{
		limiter:   limiter,
		rules:     rules,
		messenger: messenger,
		log:       log,
	}
}

// Handle drops updates over any applicable limit after telling the sender.
// Limiter failures let the update through.
func (m *RateLimitMiddleware) Handle(next handlers.Handler) handlers.Handler {
	if next == nil {
		return nil
	}

	return func(ctx context.Context, ev *handlers.Event) error {
		if m.limiter == nil {
			return next(ctx, ev)
		}

		for _, scope := range m.rules.Scopes(ev.Action(), ev.SenderID) {
			if m.blocked(ctx, ev, scope) {
				return nil
			}
		}

		return next(ctx, ev)
	}
}

func (m *RateLimitMiddleware) blocked(ctx context.Context, ev *handlers.Event, scope ratelimit.Scope) bool {
	decision, err := m.limiter.Allow(ctx, scope.Key, scope.Rule)
	if err != nil && !errors.Is(err, ratelimit.ErrLimitExceeded) {
		m.log.Warn("rate limiter error", slog.String("scope", scope.Name), slog.Any("error", err))
		return false
	}
	if decision.Allowed {
		return false
	}

	retryAfter := max(int(math.Ceil(decision.RetryAfter.Seconds())), 1)
	limited := apperrors.NewRateLimitError(retryAfter)

	m.log.Warn("rate limit exceeded",
		slog.Int64("user_id", ev.SenderID),
		slog.String("scope", scope.Name),
		slog.String("action", ev.Action()),
		slog.String("code", limited.Code),
	)

	if m.messenger == nil {
		return true
	}

	var notifyErr error
	if ev.Kind == handlers.EventCallback {
		notifyErr = handlers.Answer(ctx, m.messenger, ev, limited.UserMessage)
	} else {
		notifyErr = m.messenger.SendText(ctx, ev.ChatID, limited.UserMessage)
	}
	if notifyErr != nil {
		m.log.Warn("failed to notify rate limited user", slog.Int64("user_id", ev.SenderID), slog.Any("error", notifyErr))
	}

	return true
}
