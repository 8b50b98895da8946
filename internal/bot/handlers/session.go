package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Proton-105/warung-bot/internal/domain"
	apperrors "github.com/Proton-105/warung-bot/internal/errors"
	"github.com/Proton-105/warung-bot/internal/session"
)

// SessionText feeds free text to the chat's open form. Text without an open form is ignored.
func (h *Handlers) SessionText(ctx context.Context, ev *Event) error {
	outcome, err := h.sessions.Advance(ev.ChatID, ev.Text)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return nil
		}
		return err
	}

	switch out := outcome.(type) {
	case session.Prompt:
		return h.reply(ctx, ev, out.Text)
	case session.Rejected:
		h.log.Debug("form input rejected",
			slog.Int64("chat_id", ev.ChatID),
			slog.String("code", apperrors.CodeValidation),
			slog.String("reason", out.Reason),
		)
		return h.reply(ctx, ev, out.Reason)
	case session.Complete:
		return h.completeForm(ctx, ev, out.Draft)
	default:
		return fmt.Errorf("unexpected form outcome %T", outcome)
	}
}

// completeForm persists a finished draft. The caller's role is checked again because
// it may have changed while the form was open.
func (h *Handlers) completeForm(ctx context.Context, ev *Event, draft any) error {
	if ok, err := h.requireAdmin(ctx, ev); !ok {
		return err
	}

	switch d := draft.(type) {
	case session.ProductDraft:
		product := &domain.Product{
			Name:        d.Name,
			Description: d.Description,
			Price:       d.Price,
			ImageURL:    d.ImageURL,
		}
		if err := h.store.CreateProduct(ctx, product); err != nil {
			return h.persistFailed(ctx, ev, "product", "/addproduct", err)
		}
		h.log.Info("product created", slog.Int64("product_id", product.ID), slog.Int64("telegram_id", ev.SenderID))
		return h.reply(ctx, ev, "Product added successfully!")

	case session.BankAccountDraft:
		account := &domain.BankAccount{
			BankName:          d.BankName,
			AccountNumber:     d.AccountNumber,
			AccountHolderName: d.AccountHolderName,
			IsActive:          true,
		}
		if err := h.store.CreateBankAccount(ctx, account); err != nil {
			return h.persistFailed(ctx, ev, "bank account", "/addbankaccount", err)
		}
		h.log.Info("bank account created", slog.Int64("bank_account_id", account.ID), slog.Int64("telegram_id", ev.SenderID))
		if err := h.reply(ctx, ev, "Bank account added successfully!"); err != nil {
			return err
		}
		return h.sendBankAccountsPanel(ctx, ev)

	default:
		return fmt.Errorf("unexpected form draft %T", draft)
	}
}

func (h *Handlers) persistFailed(ctx context.Context, ev *Event, entity, command string, cause error) error {
	appErr := apperrors.NewDatabaseError(cause)
	h.log.Error("failed to save form",
		slog.String("entity", entity),
		slog.Int64("chat_id", ev.ChatID),
		slog.String("code", appErr.Code),
		slog.Any("error", cause),
	)

	return h.reply(ctx, ev, fmt.Sprintf("Failed to save the %s. Please start again with %s.", entity, command))
}
