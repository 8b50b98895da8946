package handlers

import (
	"context"
)

const welcomeText = "Welcome to Warung Telegram!"

// Start shows the main menu. It serves /start and the main menu button.
func (h *Handlers) Start(ctx context.Context, ev *Event) error {
	return h.reply(ctx, ev, welcomeText, h.kb.MainMenu())
}
