// Package order creates orders from cart snapshots and moves them through their status lifecycle.
package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Proton-105/warung-bot/internal/domain"
	"github.com/Proton-105/warung-bot/internal/repository"
)

var (
	// ErrEmptyCart is returned when checkout is attempted with no lines.
	ErrEmptyCart = errors.New("order: cart is empty")
	// ErrOrderNotFound is returned when the order id does not exist.
	ErrOrderNotFound = errors.New("order: not found")
	// ErrInvalidTransition is returned when the requested status is not reachable from the current one.
	ErrInvalidTransition = errors.New("order: invalid status transition")
)

// Notifier delivers a status change to the order's customer.
type Notifier interface {
	NotifyStatusChange(ctx context.Context, order domain.Order) error
}

// TransitionRecorder observes applied status transitions.
type TransitionRecorder func(from, to domain.OrderStatus)

// NotificationRecorder observes notification outcomes.
type NotificationRecorder func(delivered bool)

// Option configures a Service.
type Option func(*Service)

// WithTransitionRecorder makes the service report every applied transition to fn.
func WithTransitionRecorder(fn TransitionRecorder) Option {
	return func(s *Service) {
		if fn != nil {
			s.recordTransition = fn
		}
	}
}

// WithNotificationRecorder makes the service report every notification outcome to fn.
func WithNotificationRecorder(fn NotificationRecorder) Option {
	return func(s *Service) {
		if fn != nil {
			s.recordNotification = fn
		}
	}
}

// Store is the subset of the record store the service uses.
type Store interface {
	repository.OrderRepository
	ListActiveBankAccounts(ctx context.Context) ([]domain.BankAccount, error)
}

// Checkout is a created order plus the payment destinations active when it was placed.
type Checkout struct {
	Order        domain.Order
	BankAccounts []domain.BankAccount
}

// Service manages order creation and status transitions.
type Service struct {
	store    Store
	notifier Notifier
	log      *slog.Logger

	recordTransition   TransitionRecorder
	recordNotification NotificationRecorder
}

// NewService wires a Service. A nil notifier disables customer notifications.
func NewService(store Store, notifier Notifier, log *slog.Logger, opts ...Option) *Service {
	if log == nil {
		log = slog.Default()
	}

	s := &Service{
		store:              store,
		notifier:           notifier,
		log:                log,
		recordTransition:   func(domain.OrderStatus, domain.OrderStatus) {},
		recordNotification: func(bool) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateOrder persists a pending order whose total is the sum of the snapshot line prices.
func (s *Service) CreateOrder(ctx context.Context, user *domain.User, lines []domain.OrderLine) (*Checkout, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	if user == nil || user.ID == 0 {
		return nil, fmt.Errorf("create order: user must be persisted first")
	}

	order := domain.Order{
		UserID:   user.ID,
		Customer: user,
		Lines:    append([]domain.OrderLine(nil), lines...),
		Total:    domain.SumLines(lines),
		Status:   domain.OrderPending,
	}

	if err := s.store.CreateOrder(ctx, &order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.log.Info("order created",
		slog.Int64("order_id", order.ID),
		slog.Int64("user_id", user.ID),
		slog.Int("lines", len(order.Lines)),
		slog.String("total", order.Total.String()),
	)

	accounts, err := s.store.ListActiveBankAccounts(ctx)
	if err != nil {
		s.log.Warn("failed to load bank accounts for checkout", slog.Int64("order_id", order.ID), slog.Any("error", err))
		accounts = nil
	}

	return &Checkout{Order: order, BankAccounts: accounts}, nil
}

// UpdateStatus moves the order to status. The customer is notified after the change is stored;
// a failed notification is logged and does not affect the result.
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (*domain.Order, error) {
	current, err := s.store.FindOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("load order: %w", err)
	}

	from := current.Status
	if !from.CanTransition(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, status)
	}

	if err := s.store.UpdateOrderStatus(ctx, orderID, from, status); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrOrderNotFound
		case errors.Is(err, repository.ErrStatusConflict):
			return nil, fmt.Errorf("%w: %s changed concurrently", ErrInvalidTransition, from)
		default:
			return nil, fmt.Errorf("update order status: %w", err)
		}
	}

	updated := *current
	updated.Status = status

	s.log.Info("order status updated",
		slog.Int64("order_id", orderID),
		slog.String("from", string(from)),
		slog.String("to", string(status)),
	)
	s.recordTransition(from, status)

	s.notify(ctx, updated)

	return &updated, nil
}

func (s *Service) notify(ctx context.Context, order domain.Order) {
	if s.notifier == nil || order.Customer == nil {
		return
	}

	if err := s.notifier.NotifyStatusChange(ctx, order); err != nil {
		s.log.Warn("customer notification failed",
			slog.Int64("order_id", order.ID),
			slog.Int64("telegram_id", order.Customer.TelegramID),
			slog.Any("error", err),
		)
		s.recordNotification(false)
		return
	}

	s.recordNotification(true)
}
