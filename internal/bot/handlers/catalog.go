package handlers

import (
	"context"
	"fmt"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/Proton-105/warung-bot/internal/domain"
	apperrors "github.com/Proton-105/warung-bot/internal/errors"
)

// Catalog sends one card per product with an Add to Cart button.
func (h *Handlers) Catalog(ctx context.Context, ev *Event) error {
	products, err := h.store.ListProducts(ctx)
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}

	if len(products) == 0 {
		return h.reply(ctx, ev, "Our catalog is empty at the moment.")
	}

	if err := h.reply(ctx, ev, "Here is our catalog:"); err != nil {
		return err
	}

	for _, product := range products {
		if err := h.sendProduct(ctx, ev, product); err != nil {
			return err
		}
	}

	return nil
}

// sendProduct falls back to a text card when the product has no image or Telegram rejects it.
func (h *Handlers) sendProduct(ctx context.Context, ev *Event, product domain.Product) error {
	caption := fmt.Sprintf("<b>%s</b>\n%s\nPrice: %s",
		escapeHTML(product.Name),
		escapeHTML(product.Description),
		h.money.Format(product.Price),
	)
	markup := h.kb.ProductCard(product.ID)

	if product.ImageURL != "" {
		err := h.messenger.SendPhoto(ctx, ev.ChatID, product.ImageURL, caption, telebot.ModeHTML, markup)
		if err == nil {
			return nil
		}
		h.log.Warn("product photo rejected, sending text card",
			slog.Int64("product_id", product.ID),
			slog.Any("error", err),
		)
	}

	return h.replyHTML(ctx, ev, caption, markup)
}
