package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	apperrors "github.com/Proton-105/warung-bot/internal/errors"
	"github.com/Proton-105/warung-bot/internal/repository"
	"github.com/Proton-105/warung-bot/internal/session"
)

// BankAccounts shows the admin bank account panel.
func (h *Handlers) BankAccounts(ctx context.Context, ev *Event) error {
	if ok, err := h.requireAdmin(ctx, ev); !ok {
		return err
	}

	return h.sendBankAccountsPanel(ctx, ev)
}

func (h *Handlers) sendBankAccountsPanel(ctx context.Context, ev *Event) error {
	return h.replyHTML(ctx, ev, "<b>Bank Account Management</b>\nChoose an option:", h.kb.BankAccountsPanel())
}

// AddBankAccount starts the bank account form for this chat.
func (h *Handlers) AddBankAccount(ctx context.Context, ev *Event) error {
	if ok, err := h.requireAdmin(ctx, ev); !ok {
		return err
	}

	return h.beginForm(ctx, ev, session.KindAddBankAccount)
}

// ViewBankAccounts lists every bank account with toggle and delete buttons.
func (h *Handlers) ViewBankAccounts(ctx context.Context, ev *Event) error {
	if ok, err := h.requireAdmin(ctx, ev); !ok {
		return err
	}

	return h.sendBankAccounts(ctx, ev)
}

func (h *Handlers) sendBankAccounts(ctx context.Context, ev *Event) error {
	accounts, err := h.store.ListBankAccounts(ctx)
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}

	if len(accounts) == 0 {
		return h.reply(ctx, ev, "No bank accounts found.")
	}

	var b strings.Builder
	b.WriteString("<b>💳 Bank Accounts:</b>\n\n")
	for _, account := range accounts {
		status := "❌ Inactive"
		if account.IsActive {
			status = "✅ Active"
		}
		fmt.Fprintf(&b, "<b>%s</b>\nAccount: %s\nName: %s\nStatus: %s\n\n",
			escapeHTML(account.BankName),
			escapeHTML(account.AccountNumber),
			escapeHTML(account.AccountHolderName),
			status,
		)
	}

	return h.replyHTML(ctx, ev, b.String(), h.kb.BankAccountList(accounts))
}

// ToggleBankAccount flips an account between active and inactive.
func (h *Handlers) ToggleBankAccount(ctx context.Context, ev *Event) error {
	if ok, err := h.requireAdmin(ctx, ev); !ok {
		return err
	}

	account, err := h.store.ToggleBankAccount(ctx, ev.Callback.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return h.answer(ctx, ev, "Bank account not found")
		}
		return apperrors.NewDatabaseError(err)
	}

	state := "deactivated"
	if account.IsActive {
		state = "activated"
	}
	h.log.Info("bank account toggled", slog.Int64("bank_account_id", account.ID), slog.Bool("active", account.IsActive))

	if err := h.answer(ctx, ev, "Bank account "+state); err != nil {
		return err
	}

	return h.sendBankAccounts(ctx, ev)
}

// DeleteBankAccount removes an account.
func (h *Handlers) DeleteBankAccount(ctx context.Context, ev *Event) error {
	if ok, err := h.requireAdmin(ctx, ev); !ok {
		return err
	}

	if err := h.store.DeleteBankAccount(ctx, ev.Callback.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return h.answer(ctx, ev, "Bank account not found")
		}
		return apperrors.NewDatabaseError(err)
	}
	h.log.Info("bank account deleted", slog.Int64("bank_account_id", ev.Callback.ID))

	if err := h.answer(ctx, ev, "Bank account deleted"); err != nil {
		return err
	}

	return h.sendBankAccounts(ctx, ev)
}
