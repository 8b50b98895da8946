package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Proton-105/warung-bot/internal/bot/handlers"
	"github.com/Proton-105/warung-bot/internal/idempotency"
)

// UpdateTTL is how long a processed update id is remembered.
const UpdateTTL = 10 * time.Minute

// Idempotency ensures handlers execute at most once per Telegram update.
// Telegram redelivers updates after a webhook timeout or a restart mid-poll.
func Idempotency(manager idempotency.Manager, log *slog.Logger) handlers.Middleware {
	if manager == nil {
		return func(next handlers.Handler) handlers.Handler {
			return next
		}
	}
	if log == nil {
		log = slog.Default()
	}

	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(ctx context.Context, ev *handlers.Event) error {
			key := updateKey(ev)
			if key == "" {
				return next(ctx, ev)
			}

			err := manager.Execute(ctx, key, UpdateTTL, func(execCtx context.Context) error {
				return next(execCtx, ev)
			})
			switch {
			case err == nil:
				return nil
			case errors.Is(err, idempotency.ErrRequestInProgress), errors.Is(err, idempotency.ErrAlreadyProcessed):
				log.Info("duplicate update skipped", slog.String("key", key), slog.String("reason", err.Error()))
				return nil
			default:
				return err
			}
		}
	}
}

func updateKey(ev *handlers.Event) string {
	if ev == nil || ev.ID == 0 {
		return ""
	}
	return idempotency.UpdateKey(ev.ID)
}
