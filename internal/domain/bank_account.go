package domain

import "time"

// BankAccount is a payment destination shown to customers at checkout while active.
type BankAccount struct {
	ID                int64     `db:"id" json:"id"`
	BankName          string    `db:"bank_name" json:"bank_name"`
	AccountNumber     string    `db:"account_number" json:"account_number"`
	AccountHolderName string    `db:"account_holder_name" json:"account_holder_name"`
	IsActive          bool      `db:"is_active" json:"is_active"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}
