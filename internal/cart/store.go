// Package cart keeps per-user shopping carts in process memory.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Proton-105/warung-bot/internal/domain"
)

// Item is a product snapshot taken when it was added.
type Item struct {
	ProductID int64
	Name      string
	Price     decimal.Decimal
}

// AddResult reports what Add did.
type AddResult int

const (
	Added AddResult = iota + 1
	AlreadyPresent
)

// Store maps a Telegram user id to an ordered cart. Items are unique by product id.
type Store struct {
	mu    sync.Mutex
	carts map[int64][]Item
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{carts: make(map[int64][]Item)}
}

// Add appends a snapshot of product unless it is already in the cart.
func (s *Store) Add(userID int64, product domain.Product) AddResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[userID]
	for _, item := range items {
		if item.ProductID == product.ID {
			return AlreadyPresent
		}
	}

	s.carts[userID] = append(items, Item{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
	})
	return Added
}

// Remove drops productID from the cart. Removing an absent product is a no-op.
func (s *Store) Remove(userID, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[userID]
	for i, item := range items {
		if item.ProductID != productID {
			continue
		}
		items = append(items[:i:i], items[i+1:]...)
		if len(items) == 0 {
			delete(s.carts, userID)
		} else {
			s.carts[userID] = items
		}
		return
	}
}

// Items returns a copy of the cart in insertion order.
func (s *Store) Items(userID int64) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Item(nil), s.carts[userID]...)
}

// Total sums snapshot prices; zero for an empty cart.
func (s *Store) Total(userID int64) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, item := range s.carts[userID] {
		total = total.Add(item.Price)
	}
	return total
}

// Clear empties the cart.
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
}

// Take empties the cart and returns what it held, so only one checkout can see the items.
func (s *Store) Take(userID int64) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[userID]
	delete(s.carts, userID)
	return items
}

// Restore puts items taken by a failed checkout back in front of anything added since.
func (s *Store) Restore(userID int64, items []Item) {
	if len(items) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := append([]Item(nil), items...)
	for _, added := range s.carts[userID] {
		if !containsProduct(merged, added.ProductID) {
			merged = append(merged, added)
		}
	}
	s.carts[userID] = merged
}

// Users returns the number of non-empty carts.
func (s *Store) Users() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.carts)
}

func containsProduct(items []Item, productID int64) bool {
	for _, item := range items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}
