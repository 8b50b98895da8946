package bot

import (
	"context"
	"log/slog"
	"time"

	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/warung-bot/internal/bot/handlers"
	"github.com/Proton-105/warung-bot/internal/user"
)

const updateTimeout = 30 * time.Second

// Dispatcher turns telebot updates into events and hands them to the router.
type Dispatcher struct {
	router    *Router
	messenger handlers.Messenger
	log       *slog.Logger
}

// NewDispatcher creates a Dispatcher feeding router.
func NewDispatcher(router *Router, messenger handlers.Messenger, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}

	return &Dispatcher{
		router:    router,
		messenger: messenger,
		log:       log,
	}
}

// Dispatch routes one telebot update. Handler errors are reported by the middleware chain,
// so Dispatch only logs what escapes it and never fails the update.
func (d *Dispatcher) Dispatch(c telebot.Context) error {
	ev, ok := newEvent(c)
	if !ok {
		d.log.Warn("cannot dispatch without sender information")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), updateTimeout)
	defer cancel()

	d.route(ctx, ev)
	return nil
}

func (d *Dispatcher) route(ctx context.Context, ev *handlers.Event) {
	if err := d.router.Route(ctx, ev); err != nil {
		d.log.Error("update handling failed",
			slog.Int64("update_id", ev.ID),
			slog.String("action", ev.Action()),
			slog.Any("error", err),
		)
	}

	// Telegram keeps the button spinner running until the query is answered.
	if ev.Kind == handlers.EventCallback && !ev.Answered() && d.messenger != nil {
		if err := d.messenger.AnswerCallback(ctx, ev.CallbackID, ""); err != nil {
			d.log.Warn("failed to answer callback", slog.Int64("update_id", ev.ID), slog.Any("error", err))
		}
	}
}

func newEvent(c telebot.Context) (*handlers.Event, bool) {
	if c == nil || c.Sender() == nil {
		return nil, false
	}

	sender := c.Sender()
	ev := &handlers.Event{
		ID:       int64(c.Update().ID),
		SenderID: sender.ID,
		ChatID:   sender.ID,
		Sender: user.Profile{
			TelegramID: sender.ID,
			FirstName:  sender.FirstName,
			LastName:   sender.LastName,
			Username:   sender.Username,
		},
	}

	if chat := c.Chat(); chat != nil {
		ev.ChatID = chat.ID
	}

	if cb := c.Callback(); cb != nil {
		ev.Kind = handlers.EventCallback
		ev.CallbackID = cb.ID
		ev.Data = cb.Data
		return ev, true
	}

	ev.Kind = handlers.EventText
	ev.Text = c.Text()
	return ev, true
}
