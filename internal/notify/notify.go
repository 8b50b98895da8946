// Package notify tells customers about order status changes, either directly or through the job queue.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hibiken/asynq"
	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/warung-bot/internal/domain"
	"github.com/Proton-105/warung-bot/internal/jobs"
	"github.com/Proton-105/warung-bot/pkg/money"
)

// ErrNoRecipient is returned for orders without a loaded customer.
var ErrNoRecipient = errors.New("notify: order has no customer")

// Pusher sends an unsolicited chat message.
type Pusher interface {
	PushText(ctx context.Context, telegramID int64, text string, opts ...any) error
}

// Enqueuer schedules background tasks.
type Enqueuer interface {
	Enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Render builds the customer-facing status message.
func Render(order domain.Order, fmtr *money.Formatter) string {
	return fmt.Sprintf("🔔 <b>Order Update</b>\n\nYour order #%d status has been updated to: <b>%s</b>\n\nTotal: %s",
		order.ID,
		strings.ToUpper(string(order.Status)),
		fmtr.Format(order.Total),
	)
}

// Direct pushes the message from the calling goroutine.
type Direct struct {
	pusher Pusher
	money  *money.Formatter
}

func NewDirect(pusher Pusher, fmtr *money.Formatter) *Direct {
	return &Direct{pusher: pusher, money: fmtr}
}

// NotifyStatusChange implements order.Notifier.
func (d *Direct) NotifyStatusChange(ctx context.Context, order domain.Order) error {
	if order.Customer == nil {
		return ErrNoRecipient
	}

	return d.pusher.PushText(ctx, order.Customer.TelegramID, Render(order, d.money), telebot.ModeHTML)
}

// Queued hands the message to the job queue so the status update does not wait on Telegram.
type Queued struct {
	queue Enqueuer
	money *money.Formatter
	log   *slog.Logger
}

func NewQueued(queue Enqueuer, fmtr *money.Formatter, log *slog.Logger) *Queued {
	if log == nil {
		log = slog.Default()
	}
	return &Queued{queue: queue, money: fmtr, log: log}
}

// NotifyStatusChange implements order.Notifier. Only enqueue failures are reported.
func (q *Queued) NotifyStatusChange(ctx context.Context, order domain.Order) error {
	if order.Customer == nil {
		return ErrNoRecipient
	}

	task, err := jobs.NewCustomerNotificationTask(jobs.CustomerNotificationPayload{
		OrderID:    order.ID,
		TelegramID: order.Customer.TelegramID,
		Text:       Render(order, q.money),
	})
	if err != nil {
		return err
	}

	info, err := q.queue.Enqueue(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue notification: %w", err)
	}

	q.log.Debug("customer notification queued", slog.Int64("order_id", order.ID), slog.String("task_id", info.ID))
	return nil
}
