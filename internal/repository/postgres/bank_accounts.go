package postgres

import (
	"context"
	"fmt"

	"github.com/Proton-105/warung-bot/internal/domain"
)

const bankAccountColumns = `id, bank_name, account_number, account_holder_name, is_active, created_at`

// CreateBankAccount inserts an account.
func (s *Store) CreateBankAccount(ctx context.Context, account *domain.BankAccount) error {
	const query = `
		INSERT INTO bank_accounts (bank_name, account_number, account_holder_name, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	if err := s.db.QueryRowxContext(ctx, query, account.BankName, account.AccountNumber, account.AccountHolderName, account.IsActive).
		Scan(&account.ID, &account.CreatedAt); err != nil {
		return fmt.Errorf("insert bank account: %w", err)
	}

	return nil
}

// FindBankAccountByID loads one account.
func (s *Store) FindBankAccountByID(ctx context.Context, id int64) (*domain.BankAccount, error) {
	var account domain.BankAccount
	if err := s.db.GetContext(ctx, &account, `SELECT `+bankAccountColumns+` FROM bank_accounts WHERE id = $1`, id); err != nil {
		return nil, notFound(err)
	}

	return &account, nil
}

// ListBankAccounts returns every account ordered by id.
func (s *Store) ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	accounts := make([]domain.BankAccount, 0)
	if err := s.db.SelectContext(ctx, &accounts, `SELECT `+bankAccountColumns+` FROM bank_accounts ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list bank accounts: %w", err)
	}

	return accounts, nil
}

// ListActiveBankAccounts returns accounts shown at checkout.
func (s *Store) ListActiveBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	accounts := make([]domain.BankAccount, 0)
	if err := s.db.SelectContext(ctx, &accounts, `SELECT `+bankAccountColumns+` FROM bank_accounts WHERE is_active ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list active bank accounts: %w", err)
	}

	return accounts, nil
}

// UpdateBankAccount overwrites an account's fields.
func (s *Store) UpdateBankAccount(ctx context.Context, account *domain.BankAccount) error {
	const query = `
		UPDATE bank_accounts
		SET bank_name = $2, account_number = $3, account_holder_name = $4, is_active = $5
		WHERE id = $1
	`

	res, err := s.db.ExecContext(ctx, query, account.ID, account.BankName, account.AccountNumber, account.AccountHolderName, account.IsActive)
	if err != nil {
		return fmt.Errorf("update bank account: %w", err)
	}

	return affected(res)
}

// ToggleBankAccount flips is_active in one statement.
func (s *Store) ToggleBankAccount(ctx context.Context, id int64) (*domain.BankAccount, error) {
	query := `UPDATE bank_accounts SET is_active = NOT is_active WHERE id = $1 RETURNING ` + bankAccountColumns

	var account domain.BankAccount
	if err := s.db.GetContext(ctx, &account, query, id); err != nil {
		return nil, notFound(err)
	}

	return &account, nil
}

// DeleteBankAccount removes an account.
func (s *Store) DeleteBankAccount(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bank_accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete bank account: %w", err)
	}

	return affected(res)
}
