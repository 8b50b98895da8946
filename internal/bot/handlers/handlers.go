// Package handlers implements the bot's commands, button callbacks and form input.
// Every handler replies through a Messenger; admin-only handlers resolve the caller's
// role themselves on each call.
package handlers

import (
	"context"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/warung-bot/internal/bot/keyboard"
	"github.com/Proton-105/warung-bot/internal/cart"
	apperrors "github.com/Proton-105/warung-bot/internal/errors"
	"github.com/Proton-105/warung-bot/internal/order"
	"github.com/Proton-105/warung-bot/internal/repository"
	"github.com/Proton-105/warung-bot/internal/session"
	"github.com/Proton-105/warung-bot/internal/user"
	"github.com/Proton-105/warung-bot/pkg/money"
)

// Deps groups the collaborators the handlers need.
type Deps struct {
	Messenger Messenger
	Sessions  *session.Engine
	Carts     *cart.Store
	Orders    *order.Service
	Users     *user.Service
	Store     repository.Store
	Money     *money.Formatter
	Keyboard  *keyboard.Builder
	Log       *slog.Logger
}

// Handlers holds the bot's update handlers.
type Handlers struct {
	messenger Messenger
	sessions  *session.Engine
	carts     *cart.Store
	orders    *order.Service
	users     *user.Service
	store     repository.Store
	money     *money.Formatter
	kb        *keyboard.Builder
	log       *slog.Logger
}

// New wires Handlers from deps.
func New(deps Deps) *Handlers {
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}

	kb := deps.Keyboard
	if kb == nil {
		kb = keyboard.NewBuilder(log)
	}

	return &Handlers{
		messenger: deps.Messenger,
		sessions:  deps.Sessions,
		carts:     deps.Carts,
		orders:    deps.Orders,
		users:     deps.Users,
		store:     deps.Store,
		money:     deps.Money,
		kb:        kb,
		log:       log,
	}
}

func (h *Handlers) reply(ctx context.Context, ev *Event, text string, opts ...any) error {
	return h.messenger.SendText(ctx, ev.ChatID, text, opts...)
}

func (h *Handlers) replyHTML(ctx context.Context, ev *Event, text string, markup *telebot.ReplyMarkup) error {
	if markup == nil {
		return h.reply(ctx, ev, text, telebot.ModeHTML)
	}
	return h.reply(ctx, ev, text, telebot.ModeHTML, markup)
}

// answer acknowledges a callback query. For other events the text is sent as a message.
func (h *Handlers) answer(ctx context.Context, ev *Event, text string) error {
	if ev.Kind != EventCallback {
		if text == "" {
			return nil
		}
		return h.reply(ctx, ev, text)
	}

	return Answer(ctx, h.messenger, ev, text)
}

// requireAdmin reports whether the caller is an admin. A denied caller has already been told.
func (h *Handlers) requireAdmin(ctx context.Context, ev *Event) (bool, error) {
	isAdmin, err := h.users.IsAdmin(ctx, ev.SenderID)
	if err != nil {
		return false, apperrors.NewDatabaseError(err)
	}
	if isAdmin {
		return true, nil
	}

	denied := apperrors.NewUnauthorizedError(ev.SenderID)
	h.log.Warn("admin action denied",
		slog.Int64("telegram_id", ev.SenderID),
		slog.String("action", ev.Action()),
		slog.String("code", denied.Code),
	)

	return false, h.answer(ctx, ev, denied.UserMessage)
}
