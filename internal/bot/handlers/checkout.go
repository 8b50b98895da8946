package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Proton-105/warung-bot/internal/cart"
	"github.com/Proton-105/warung-bot/internal/domain"
	apperrors "github.com/Proton-105/warung-bot/internal/errors"
	"github.com/Proton-105/warung-bot/internal/order"
)

// Checkout turns the caller's cart into a pending order. The cart is taken up front so a
// double tap creates one order; it is put back if the order cannot be created.
func (h *Handlers) Checkout(ctx context.Context, ev *Event) error {
	items := h.carts.Take(ev.SenderID)
	if len(items) == 0 {
		return h.reply(ctx, ev, emptyCartText)
	}

	customer, err := h.users.GetOrCreate(ctx, ev.Sender)
	if err != nil {
		h.carts.Restore(ev.SenderID, items)
		return apperrors.NewDatabaseError(err)
	}

	checkout, err := h.orders.CreateOrder(ctx, customer, orderLines(items))
	if err != nil {
		h.carts.Restore(ev.SenderID, items)
		return apperrors.NewDatabaseError(err)
	}

	h.log.Info("checkout completed",
		slog.Int64("telegram_id", ev.SenderID),
		slog.Int64("order_id", checkout.Order.ID),
	)

	if err := h.replyHTML(ctx, ev, h.checkoutText(checkout), nil); err != nil {
		return err
	}

	return h.Start(ctx, ev)
}

func orderLines(items []cart.Item) []domain.OrderLine {
	lines := make([]domain.OrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, domain.OrderLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
		})
	}
	return lines
}

func (h *Handlers) checkoutText(checkout *order.Checkout) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order created successfully! 🎉\n\nOrder ID: %d\nTotal: %s\nStatus: %s",
		checkout.Order.ID,
		h.money.Format(checkout.Order.Total),
		checkout.Order.Status,
	)

	if len(checkout.BankAccounts) == 0 {
		b.WriteString("\n\n<i>Payment details will be provided by admin.</i>")
		return b.String()
	}

	b.WriteString("\n\n💳 <b>Payment Information:</b>\nPlease transfer to one of the following accounts:\n\n")
	for i, account := range checkout.BankAccounts {
		fmt.Fprintf(&b, "%d. <b>%s</b>\n", i+1, escapeHTML(account.BankName))
		fmt.Fprintf(&b, "   Account: %s\n", escapeHTML(account.AccountNumber))
		fmt.Fprintf(&b, "   Name: %s\n\n", escapeHTML(account.AccountHolderName))
	}
	b.WriteString("<i>Please send payment confirmation to admin after transfer.</i>")

	return b.String()
}
