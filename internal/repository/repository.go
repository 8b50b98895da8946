// Package repository defines the record store used by the bot and its implementations.
package repository

import (
	"context"
	"errors"

	"github.com/Proton-105/warung-bot/internal/domain"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("repository: record not found")
	// ErrStatusConflict is returned when an order's stored status no longer matches the expected one.
	ErrStatusConflict = errors.New("repository: order status changed concurrently")
)

// UserRepository persists users.
type UserRepository interface {
	FindUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) error
	UpdateUser(ctx context.Context, user *domain.User) error
}

// ProductRepository persists catalog products.
type ProductRepository interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
	FindProductByID(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id int64) error
}

// OrderRepository persists orders with their line snapshots. Lists are newest first.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	FindOrderByID(ctx context.Context, id int64) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	ListPendingOrders(ctx context.Context) ([]domain.Order, error)
	// UpdateOrderStatus moves the order from one status to another only if it is still in from.
	UpdateOrderStatus(ctx context.Context, id int64, from, to domain.OrderStatus) error
}

// BankAccountRepository persists payment destinations.
type BankAccountRepository interface {
	CreateBankAccount(ctx context.Context, account *domain.BankAccount) error
	FindBankAccountByID(ctx context.Context, id int64) (*domain.BankAccount, error)
	ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error)
	ListActiveBankAccounts(ctx context.Context) ([]domain.BankAccount, error)
	UpdateBankAccount(ctx context.Context, account *domain.BankAccount) error
	// ToggleBankAccount flips is_active and returns the updated account.
	ToggleBankAccount(ctx context.Context, id int64) (*domain.BankAccount, error)
	DeleteBankAccount(ctx context.Context, id int64) error
}

// Store groups every repository.
type Store interface {
	UserRepository
	ProductRepository
	OrderRepository
	BankAccountRepository
}
