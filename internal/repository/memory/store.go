// Package memory implements repository.Store in process memory. It backs tests and local runs without Postgres.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Proton-105/warung-bot/internal/domain"
	"github.com/Proton-105/warung-bot/internal/repository"
)

var _ repository.Store = (*Store)(nil)

// Store keeps every entity in maps guarded by one mutex.
type Store struct {
	mu sync.RWMutex

	nextID   int64
	now      func() time.Time
	users    map[int64]domain.User // by telegram id
	products map[int64]domain.Product
	orders   map[int64]domain.Order
	accounts map[int64]domain.BankAccount
}

// New creates an empty store.
func New() *Store {
	return &Store{
		now:      time.Now,
		users:    make(map[int64]domain.User),
		products: make(map[int64]domain.Product),
		orders:   make(map[int64]domain.Order),
		accounts: make(map[int64]domain.BankAccount),
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// FindUserByTelegramID implements repository.UserRepository.
func (s *Store) FindUserByTelegramID(_ context.Context, telegramID int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[telegramID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

// CreateUser implements repository.UserRepository.
func (s *Store) CreateUser(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = s.id()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.now()
	}
	s.users[user.TelegramID] = *user
	return nil
}

// UpdateUser implements repository.UserRepository.
func (s *Store) UpdateUser(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.TelegramID]; !ok {
		return repository.ErrNotFound
	}
	s.users[user.TelegramID] = *user
	return nil
}

// CreateProduct implements repository.ProductRepository.
func (s *Store) CreateProduct(_ context.Context, product *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product.ID = s.id()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = s.now()
	}
	s.products[product.ID] = *product
	return nil
}

// FindProductByID implements repository.ProductRepository.
func (s *Store) FindProductByID(_ context.Context, id int64) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &product, nil
}

// ListProducts implements repository.ProductRepository, ordered by id.
func (s *Store) ListProducts(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, 0, len(s.products))
	for _, product := range s.products {
		out = append(out, product)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateProduct implements repository.ProductRepository.
func (s *Store) UpdateProduct(_ context.Context, product *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.products[product.ID]
	if !ok {
		return repository.ErrNotFound
	}
	product.CreatedAt = current.CreatedAt
	s.products[product.ID] = *product
	return nil
}

// DeleteProduct implements repository.ProductRepository.
func (s *Store) DeleteProduct(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

// CreateOrder implements repository.OrderRepository.
func (s *Store) CreateOrder(_ context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order.ID = s.id()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = s.now()
	}
	stored := *order
	stored.Lines = append([]domain.OrderLine(nil), order.Lines...)
	stored.Customer = nil
	s.orders[order.ID] = stored
	return nil
}

// FindOrderByID implements repository.OrderRepository.
func (s *Store) FindOrderByID(_ context.Context, id int64) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := s.hydrate(order)
	return &out, nil
}

// ListOrders implements repository.OrderRepository.
func (s *Store) ListOrders(_ context.Context) ([]domain.Order, error) {
	return s.listOrders(func(domain.Order) bool { return true }), nil
}

// ListOrdersByUser implements repository.OrderRepository.
func (s *Store) ListOrdersByUser(_ context.Context, userID int64) ([]domain.Order, error) {
	return s.listOrders(func(o domain.Order) bool { return o.UserID == userID }), nil
}

// ListPendingOrders implements repository.OrderRepository.
func (s *Store) ListPendingOrders(_ context.Context) ([]domain.Order, error) {
	return s.listOrders(func(o domain.Order) bool { return o.Status == domain.OrderPending }), nil
}

// UpdateOrderStatus implements repository.OrderRepository.
func (s *Store) UpdateOrderStatus(_ context.Context, id int64, from, to domain.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	if order.Status != from {
		return repository.ErrStatusConflict
	}
	order.Status = to
	s.orders[id] = order
	return nil
}

func (s *Store) listOrders(keep func(domain.Order) bool) []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Order, 0)
	for _, order := range s.orders {
		if keep(order) {
			out = append(out, s.hydrate(order))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// hydrate copies order and attaches its customer. Callers hold the read lock.
func (s *Store) hydrate(order domain.Order) domain.Order {
	order.Lines = append([]domain.OrderLine(nil), order.Lines...)
	for _, user := range s.users {
		if user.ID == order.UserID {
			customer := user
			order.Customer = &customer
			break
		}
	}
	return order
}

// CreateBankAccount implements repository.BankAccountRepository.
func (s *Store) CreateBankAccount(_ context.Context, account *domain.BankAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account.ID = s.id()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = s.now()
	}
	s.accounts[account.ID] = *account
	return nil
}

// FindBankAccountByID implements repository.BankAccountRepository.
func (s *Store) FindBankAccountByID(_ context.Context, id int64) (*domain.BankAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &account, nil
}

// ListBankAccounts implements repository.BankAccountRepository.
func (s *Store) ListBankAccounts(_ context.Context) ([]domain.BankAccount, error) {
	return s.listAccounts(func(domain.BankAccount) bool { return true }), nil
}

// ListActiveBankAccounts implements repository.BankAccountRepository.
func (s *Store) ListActiveBankAccounts(_ context.Context) ([]domain.BankAccount, error) {
	return s.listAccounts(func(a domain.BankAccount) bool { return a.IsActive }), nil
}

// UpdateBankAccount implements repository.BankAccountRepository.
func (s *Store) UpdateBankAccount(_ context.Context, account *domain.BankAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.accounts[account.ID]
	if !ok {
		return repository.ErrNotFound
	}
	account.CreatedAt = current.CreatedAt
	s.accounts[account.ID] = *account
	return nil
}

// ToggleBankAccount implements repository.BankAccountRepository.
func (s *Store) ToggleBankAccount(_ context.Context, id int64) (*domain.BankAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	account.IsActive = !account.IsActive
	s.accounts[id] = account
	return &account, nil
}

// DeleteBankAccount implements repository.BankAccountRepository.
func (s *Store) DeleteBankAccount(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.accounts, id)
	return nil
}

func (s *Store) listAccounts(keep func(domain.BankAccount) bool) []domain.BankAccount {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.BankAccount, 0, len(s.accounts))
	for _, account := range s.accounts {
		if keep(account) {
			out = append(out, account)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
