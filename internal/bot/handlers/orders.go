package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/Proton-105/warung-bot/internal/errors"
	"github.com/Proton-105/warung-bot/internal/repository"
)

// MyOrders lists the caller's own orders, newest first.
func (h *Handlers) MyOrders(ctx context.Context, ev *Event) error {
	customer, err := h.users.Find(ctx, ev.SenderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return h.reply(ctx, ev, "Please place an order first.")
		}
		return apperrors.NewDatabaseError(err)
	}

	orders, err := h.store.ListOrdersByUser(ctx, customer.ID)
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}

	if len(orders) == 0 {
		return h.reply(ctx, ev, "You have no orders yet.")
	}

	var b strings.Builder
	b.WriteString("<b>Your Orders:</b>\n\n")
	for _, o := range orders {
		fmt.Fprintf(&b, "Order #%d\nTotal: %s\nStatus: %s\nDate: %s\n\n",
			o.ID, h.money.Format(o.Total), o.Status, formatDate(o.CreatedAt))
	}

	return h.replyHTML(ctx, ev, b.String(), h.kb.BackToMenu())
}
