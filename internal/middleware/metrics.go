package middleware

import (
	"context"
	"time"

	"github.com/Proton-105/warung-bot/internal/bot/handlers"
	"github.com/Proton-105/warung-bot/pkg/metrics"
)

// Metrics measures execution time and status for bot handlers, reporting them to Prometheus.
func Metrics(next handlers.Handler) handlers.Handler {
	if next == nil {
		return nil
	}

	return func(ctx context.Context, ev *handlers.Event) error {
		start := time.Now()
		err := next(ctx, ev)

		status := "ok"
		if err != nil {
			status = "error"
		}

		metrics.RecordCommand(ev.Action(), status, time.Since(start))

		return err
	}
}
