package handlers

import (
	"context"
	"log/slog"
)

// Cancel ends the chat's open form, if any, and returns to the main menu.
func (h *Handlers) Cancel(ctx context.Context, ev *Event) error {
	text := "Nothing to cancel."
	if h.sessions.End(ev.ChatID) {
		text = "Operation cancelled. Returning to main menu."
		h.log.Info("form cancelled", slog.Int64("chat_id", ev.ChatID))
	}

	if err := h.reply(ctx, ev, text); err != nil {
		return err
	}

	return h.reply(ctx, ev, "Main menu:", h.kb.MainMenu())
}
