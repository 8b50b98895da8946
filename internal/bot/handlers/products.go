package handlers

import (
	"context"
	"log/slog"

	"github.com/Proton-105/warung-bot/internal/session"
)

// AddProduct starts the product form for this chat.
func (h *Handlers) AddProduct(ctx context.Context, ev *Event) error {
	if ok, err := h.requireAdmin(ctx, ev); !ok {
		return err
	}

	return h.beginForm(ctx, ev, session.KindAddProduct)
}

// beginForm replaces any open form in the chat and sends the first prompt.
func (h *Handlers) beginForm(ctx context.Context, ev *Event, kind session.Kind) error {
	prompt, replaced, err := h.sessions.Begin(ev.ChatID, kind)
	if err != nil {
		return err
	}

	h.log.Info("form started",
		slog.Int64("chat_id", ev.ChatID),
		slog.String("form", kind.String()),
		slog.Bool("replaced", replaced),
	)

	if replaced {
		if err := h.reply(ctx, ev, "Your previous form was discarded."); err != nil {
			return err
		}
	}

	return h.reply(ctx, ev, prompt.Text)
}
