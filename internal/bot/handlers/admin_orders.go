package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Proton-105/warung-bot/internal/bot/keyboard"
	"github.com/Proton-105/warung-bot/internal/domain"
	apperrors "github.com/Proton-105/warung-bot/internal/errors"
	"github.com/Proton-105/warung-bot/internal/order"
	"github.com/Proton-105/warung-bot/internal/repository"
)

// ManageOrders shows the admin order panel.
func (h *Handlers) ManageOrders(ctx context.Context, ev *Event) error {
	if ok, err := h.requireAdmin(ctx, ev); !ok {
		return err
	}

	return h.replyHTML(ctx, ev, "<b>Order Management Panel</b>\nChoose an option:", h.kb.OrdersPanel())
}

// PendingOrders lists every order awaiting payment.
func (h *Handlers) PendingOrders(ctx context.Context, ev *Event) error {
	if ok, err := h.requireAdmin(ctx, ev); !ok {
		return err
	}

	orders, err := h.store.ListPendingOrders(ctx)
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}

	if len(orders) == 0 {
		return h.reply(ctx, ev, "No pending orders found.")
	}

	var b strings.Builder
	b.WriteString("<b>📋 Pending Orders:</b>\n\n")
	for _, o := range orders {
		fmt.Fprintf(&b, "Order #%d\nCustomer: %s\nTotal: %s\nDate: %s\n\n",
			o.ID, customerName(o, true), h.money.Format(o.Total), formatDate(o.CreatedAt))
	}

	return h.replyHTML(ctx, ev, b.String(), h.kb.OrderList(orders, 1, 1))
}

// AllOrders lists every order, newest first, a page at a time.
func (h *Handlers) AllOrders(ctx context.Context, ev *Event) error {
	if ok, err := h.requireAdmin(ctx, ev); !ok {
		return err
	}

	orders, err := h.store.ListOrders(ctx)
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}

	if len(orders) == 0 {
		return h.reply(ctx, ev, "No orders found.")
	}

	totalPages := keyboard.TotalPages(len(orders), keyboard.OrdersPerPage)
	page := ev.Callback.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * keyboard.OrdersPerPage
	end := start + keyboard.OrdersPerPage
	if end > len(orders) {
		end = len(orders)
	}
	visible := orders[start:end]

	var b strings.Builder
	b.WriteString("<b>📊 All Orders:</b>\n\n")
	for _, o := range visible {
		fmt.Fprintf(&b, "Order #%d\nCustomer: %s\nTotal: %s\nStatus: %s\nDate: %s\n\n",
			o.ID, customerName(o, false), h.money.Format(o.Total), statusLabel(o.Status), formatDate(o.CreatedAt))
	}
	if totalPages > 1 {
		fmt.Fprintf(&b, "<i>Page %d of %d, %d orders in total</i>\n", page, totalPages, len(orders))
	}

	return h.replyHTML(ctx, ev, b.String(), h.kb.OrderList(visible, page, totalPages))
}

// ViewOrder shows an order with the status buttons valid from its current status.
func (h *Handlers) ViewOrder(ctx context.Context, ev *Event) error {
	if ok, err := h.requireAdmin(ctx, ev); !ok {
		return err
	}

	o, err := h.store.FindOrderByID(ctx, ev.Callback.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return h.answer(ctx, ev, "Order not found")
		}
		return apperrors.NewDatabaseError(err)
	}

	return h.sendOrderDetails(ctx, ev, *o)
}

// UpdateOrderStatus applies the requested transition and refreshes the details view.
func (h *Handlers) UpdateOrderStatus(ctx context.Context, ev *Event) error {
	if ok, err := h.requireAdmin(ctx, ev); !ok {
		return err
	}

	orderID, status := ev.Callback.ID, ev.Callback.Status

	updated, err := h.orders.UpdateStatus(ctx, orderID, status)
	switch {
	case err == nil:
	case errors.Is(err, order.ErrOrderNotFound):
		return h.answer(ctx, ev, "Order not found")
	case errors.Is(err, order.ErrInvalidTransition):
		rejected := apperrors.NewInvalidTransitionError(orderID, string(status))
		h.log.Info("order transition rejected",
			slog.Int64("order_id", orderID),
			slog.String("to", string(status)),
			slog.String("code", rejected.Code),
			slog.Any("error", err),
		)
		return h.answer(ctx, ev, rejected.UserMessage)
	default:
		return apperrors.NewDatabaseError(err)
	}

	if err := h.answer(ctx, ev, fmt.Sprintf("Order status updated to %s", status)); err != nil {
		return err
	}

	return h.sendOrderDetails(ctx, ev, *updated)
}

func (h *Handlers) sendOrderDetails(ctx context.Context, ev *Event, o domain.Order) error {
	username := "N/A"
	if o.Customer != nil && o.Customer.Username != "" {
		username = o.Customer.Username
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<b>📦 Order Details #%d</b>\n\n", o.ID)
	fmt.Fprintf(&b, "👤 Customer: %s\n", customerName(o, false))
	fmt.Fprintf(&b, "📱 Telegram: @%s\n", escapeHTML(username))
	fmt.Fprintf(&b, "📅 Date: %s\n", formatDate(o.CreatedAt))
	fmt.Fprintf(&b, "💰 Total: %s\n", h.money.Format(o.Total))
	fmt.Fprintf(&b, "📋 Status: %s\n\n", statusLabel(o.Status))
	b.WriteString("<b>🛍️ Products:</b>\n")
	for i, line := range o.Lines {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, escapeHTML(line.Name), h.money.Format(line.Price))
	}

	return h.replyHTML(ctx, ev, b.String(), h.kb.OrderDetails(o))
}

func customerName(o domain.Order, withLastName bool) string {
	if o.Customer == nil {
		return "Unknown"
	}
	name := o.Customer.FirstName
	if withLastName && o.Customer.LastName != "" {
		name += " - " + o.Customer.LastName
	}
	return escapeHTML(name)
}
