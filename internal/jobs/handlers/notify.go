package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/warung-bot/internal/jobs"
)

// Pusher sends an unsolicited chat message.
type Pusher interface {
	PushText(ctx context.Context, telegramID int64, text string, opts ...any) error
}

// NotificationHandler delivers queued customer notifications.
type NotificationHandler struct {
	pusher Pusher
	log    *slog.Logger
}

func NewNotificationHandler(pusher Pusher, log *slog.Logger) *NotificationHandler {
	if log == nil {
		log = slog.Default()
	}
	return &NotificationHandler{pusher: pusher, log: log}
}

// ProcessTask pushes the rendered text. Failures are logged and never retried.
func (h *NotificationHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload jobs.CustomerNotificationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		h.log.ErrorContext(ctx, "customer notification: failed to decode payload",
			slog.String("task_type", t.Type()),
			slog.Any("error", err),
		)
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}

	if err := h.pusher.PushText(ctx, payload.TelegramID, payload.Text, telebot.ModeHTML); err != nil {
		h.log.WarnContext(ctx, "customer notification failed",
			slog.Int64("order_id", payload.OrderID),
			slog.Int64("telegram_id", payload.TelegramID),
			slog.Any("error", err),
		)
		return fmt.Errorf("push notification: %v: %w", err, asynq.SkipRetry)
	}

	h.log.InfoContext(ctx, "customer notified",
		slog.Int64("order_id", payload.OrderID),
		slog.Int64("telegram_id", payload.TelegramID),
	)

	return nil
}
