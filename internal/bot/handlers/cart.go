package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Proton-105/warung-bot/internal/bot/keyboard"
	"github.com/Proton-105/warung-bot/internal/cart"
	apperrors "github.com/Proton-105/warung-bot/internal/errors"
	"github.com/Proton-105/warung-bot/internal/repository"
)

const emptyCartText = "Your cart is empty."

// AddToCart snapshots the product into the caller's cart and shows the cart.
func (h *Handlers) AddToCart(ctx context.Context, ev *Event) error {
	product, err := h.store.FindProductByID(ctx, ev.Callback.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return h.answer(ctx, ev, "Product not found")
		}
		return apperrors.NewDatabaseError(err)
	}

	notice := "Added to cart!"
	if h.carts.Add(ev.SenderID, *product) == cart.AlreadyPresent {
		notice = "Product already in cart"
	} else {
		h.log.Debug("product added to cart",
			slog.Int64("telegram_id", ev.SenderID),
			slog.Int64("product_id", product.ID),
		)
	}

	if err := h.answer(ctx, ev, notice); err != nil {
		return err
	}

	return h.ShowCart(ctx, ev)
}

// RemoveFromCart drops a product from the cart. Removing an absent product still succeeds.
func (h *Handlers) RemoveFromCart(ctx context.Context, ev *Event) error {
	h.carts.Remove(ev.SenderID, ev.Callback.ID)

	if err := h.answer(ctx, ev, "Removed from cart"); err != nil {
		return err
	}

	return h.ShowCart(ctx, ev)
}

// ShowCart renders the caller's cart with remove, checkout and back buttons.
func (h *Handlers) ShowCart(ctx context.Context, ev *Event) error {
	items := h.carts.Items(ev.SenderID)
	if len(items) == 0 {
		return h.reply(ctx, ev, emptyCartText)
	}

	var b strings.Builder
	b.WriteString("<b>Your Cart:</b>\n\n")

	buttons := make([]keyboard.CartItem, 0, len(items))
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, escapeHTML(item.Name), h.money.Format(item.Price))
		buttons = append(buttons, keyboard.CartItem{ProductID: item.ProductID, Name: item.Name})
	}
	fmt.Fprintf(&b, "\n<b>Total: %s</b>", h.money.Format(h.carts.Total(ev.SenderID)))

	return h.replyHTML(ctx, ev, b.String(), h.kb.Cart(buttons))
}
