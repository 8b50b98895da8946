package bot

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/Proton-105/warung-bot/internal/bot/handlers"
	errors "github.com/Proton-105/warung-bot/internal/errors"
	"github.com/Proton-105/warung-bot/pkg/logger"
	"github.com/Proton-105/warung-bot/pkg/metrics"
)

const fallbackUserMessage = "⚠️ Something went wrong. Please try again later."

// RecoveryMiddleware catches panics, reports them via the centralized handler, and notifies the user.
func RecoveryMiddleware(messenger handlers.Messenger, log *slog.Logger, errHandler *errors.Handler) handlers.Middleware {
	if log == nil {
		log = slog.Default()
	}

	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(ctx context.Context, ev *handlers.Event) (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Error("panic recovered in handler", slog.Any("panic", r), slog.String("stack", string(debug.Stack())))

					panicErr := errors.NewPanicError(r)
					userMsg := fallbackUserMessage
					if errHandler != nil {
						if msg, _ := errHandler.Handle(ctx, panicErr); msg != "" {
							userMsg = msg
						}
					}
					recordError(panicErr)

					if sendErr := notifyFailure(ctx, messenger, ev, userMsg); sendErr != nil {
						log.Error("failed to notify user about panic", slog.Any("error", sendErr))
					}

					err = nil
				}
			}()

			return next(ctx, ev)
		}
	}
}

// ErrorHandlingMiddleware centralizes error reporting and user messaging for handler failures.
func ErrorHandlingMiddleware(messenger handlers.Messenger, errHandler *errors.Handler) handlers.Middleware {
	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(ctx context.Context, ev *handlers.Event) error {
			err := next(ctx, ev)
			if err == nil {
				return nil
			}

			userMsg := fallbackUserMessage
			if errHandler != nil {
				if msg, _ := errHandler.Handle(ctx, err); msg != "" {
					userMsg = msg
				}
			}
			recordError(err)

			if messenger != nil {
				_ = notifyFailure(ctx, messenger, ev, userMsg)
			}

			return nil
		}
	}
}

// LoggingMiddleware tags the update with a correlation id and logs basic telemetry about it.
func LoggingMiddleware(log *slog.Logger) handlers.Middleware {
	if log == nil {
		log = slog.Default()
	}

	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(ctx context.Context, ev *handlers.Event) error {
			start := time.Now()
			ctx, correlationID := logger.WithCorrelationID(ctx)

			reqLog := log.With(
				slog.String("correlation_id", correlationID),
				slog.Int64("user_id", ev.SenderID),
				slog.String("action", ev.Action()),
			)

			reqLog.Info("handling update", slog.String("kind", ev.Kind.String()))
			err := next(ctx, ev)
			reqLog.Info("handled update",
				slog.Duration("duration", time.Since(start)),
				slog.Any("error", err),
			)

			return err
		}
	}
}

func notifyFailure(ctx context.Context, messenger handlers.Messenger, ev *handlers.Event, text string) error {
	if messenger == nil || ev == nil {
		return nil
	}

	if ev.Kind == handlers.EventCallback && !ev.Answered() {
		if err := handlers.Answer(ctx, messenger, ev, text); err == nil {
			return nil
		}
	}

	return messenger.SendText(ctx, ev.ChatID, text)
}

func recordError(err error) {
	appErr := errors.Classify(err)
	metrics.RecordError(appErr.Code, string(appErr.Severity))
}
