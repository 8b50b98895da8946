package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Proton-105/warung-bot/internal/domain"
	"github.com/Proton-105/warung-bot/internal/repository"
)

func TestStore_UpdateOrderStatusComparesAndSets(t *testing.T) {
	ctx := context.Background()
	store := New()

	order := &domain.Order{UserID: 1, Status: domain.OrderPending, Total: decimal.NewFromInt(15)}
	require.NoError(t, store.CreateOrder(ctx, order))

	require.NoError(t, store.UpdateOrderStatus(ctx, order.ID, domain.OrderPending, domain.OrderPaid))
	assert.ErrorIs(t, store.UpdateOrderStatus(ctx, order.ID, domain.OrderPending, domain.OrderCanceled), repository.ErrStatusConflict)
	assert.ErrorIs(t, store.UpdateOrderStatus(ctx, 999, domain.OrderPending, domain.OrderPaid), repository.ErrNotFound)

	stored, err := store.FindOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPaid, stored.Status)
}

func TestStore_OrdersAttachCustomer(t *testing.T) {
	ctx := context.Background()
	store := New()

	user := &domain.User{TelegramID: 42, FirstName: "Ayu", Role: domain.RoleCustomer}
	require.NoError(t, store.CreateUser(ctx, user))

	order := &domain.Order{UserID: user.ID, Status: domain.OrderPending}
	require.NoError(t, store.CreateOrder(ctx, order))

	orders, err := store.ListOrdersByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.NotNil(t, orders[0].Customer)
	assert.Equal(t, int64(42), orders[0].Customer.TelegramID)
}

func TestStore_ListPendingOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := New()

	first := &domain.Order{UserID: 1, Status: domain.OrderPending}
	second := &domain.Order{UserID: 1, Status: domain.OrderPending}
	paid := &domain.Order{UserID: 1, Status: domain.OrderPaid}
	for _, o := range []*domain.Order{first, second, paid} {
		require.NoError(t, store.CreateOrder(ctx, o))
	}

	pending, err := store.ListPendingOrders(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, second.ID, pending[0].ID)
	assert.Equal(t, first.ID, pending[1].ID)
}

func TestStore_BankAccounts(t *testing.T) {
	ctx := context.Background()
	store := New()

	active := &domain.BankAccount{BankName: "BCA", AccountNumber: "123", AccountHolderName: "Warung", IsActive: true}
	inactive := &domain.BankAccount{BankName: "BNI", AccountNumber: "456", AccountHolderName: "Warung"}
	require.NoError(t, store.CreateBankAccount(ctx, active))
	require.NoError(t, store.CreateBankAccount(ctx, inactive))

	list, err := store.ListActiveBankAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "BCA", list[0].BankName)

	toggled, err := store.ToggleBankAccount(ctx, inactive.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsActive)

	require.NoError(t, store.DeleteBankAccount(ctx, active.ID))
	_, err = store.FindBankAccountByID(ctx, active.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
