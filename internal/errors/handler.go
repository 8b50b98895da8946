package errors

import (
	"context"
	"errors"
	"log/slog"

	"github.com/getsentry/sentry-go"

	"github.com/Proton-105/warung-bot/pkg/logger"
)

// CodeInternal marks errors that carry no AppError classification.
const CodeInternal = "E000"

// Handler turns handler errors into a log line, an optional sentry event and a message for the user.
type Handler struct {
	log           *slog.Logger
	sentryEnabled bool
}

func NewHandler(log *slog.Logger, sentryEnabled bool) *Handler {
	if log == nil {
		log = slog.Default()
	}

	return &Handler{
		log:           log,
		sentryEnabled: sentryEnabled,
	}
}

// Classify returns the AppError in err's chain, or wraps err as a high-severity internal error.
func Classify(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr != nil {
		return appErr
	}

	return &AppError{
		Code:     CodeInternal,
		Message:  err.Error(),
		Severity: SeverityHigh,
		cause:    err,
	}
}

// Handle reports err and returns the message to show the user and whether retrying may help.
func (h *Handler) Handle(ctx context.Context, err error) (string, bool) {
	if err == nil {
		return "", false
	}
	if ctx == nil {
		ctx = context.Background()
	}

	appErr := Classify(err)
	serious := appErr.Severity == SeverityHigh || appErr.Severity == SeverityCritical
	correlationID := logger.CorrelationIDFromContext(ctx)

	attrs := []slog.Attr{
		slog.String("code", appErr.Code),
		slog.String("severity", string(appErr.Severity)),
		slog.Bool("retryable", appErr.Retryable),
		slog.Any("error", err),
	}
	if correlationID != "" {
		attrs = append(attrs, slog.String("correlation_id", correlationID))
	}

	level := slog.LevelWarn
	if serious {
		level = slog.LevelError
	}
	h.log.LogAttrs(ctx, level, "handler error", attrs...)

	if h.sentryEnabled && serious {
		h.sendToSentry(err, appErr, correlationID)
	}

	if appErr.UserMessage == "" {
		return genericUserMessage, appErr.Retryable
	}
	return appErr.UserMessage, appErr.Retryable
}

func (h *Handler) sendToSentry(err error, appErr *AppError, correlationID string) {
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("code", appErr.Code)
		scope.SetTag("severity", string(appErr.Severity))
		if correlationID != "" {
			scope.SetTag("correlation_id", correlationID)
		}
		if appErr.Severity == SeverityCritical {
			scope.SetLevel(sentry.LevelFatal)
		}

		sentry.CaptureException(err)
	})
}
