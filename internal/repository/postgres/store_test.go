package postgres

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Proton-105/warung-bot/internal/domain"
	"github.com/Proton-105/warung-bot/internal/repository"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(sqlx.NewDb(db, "postgres"), log), mock
}

func TestStore_FindUserByTelegramID(t *testing.T) {
	store, mock := newMockStore(t)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "telegram_id", "first_name", "last_name", "username", "role", "created_at"}).
			AddRow(7, 42, "Super", "Admin", "superadmin", "admin", created))

	user, err := store.FindUserByTelegramID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.True(t, user.IsAdmin())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_FindUserByTelegramIDNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs(int64(1)).
		WillReturnError(sql.ErrNoRows)

	_, err := store.FindUserByTelegramID(context.Background(), 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CreateOrderWritesLinesInTransaction(t *testing.T) {
	store, mock := newMockStore(t)
	created := time.Now().UTC()

	order := &domain.Order{
		UserID: 3,
		Total:  decimal.NewFromInt(15),
		Status: domain.OrderPending,
		Lines: []domain.OrderLine{
			{ProductID: 1, Name: "Kopi", Price: decimal.NewFromInt(10)},
			{ProductID: 2, Name: "Teh", Price: decimal.NewFromInt(5)},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO orders")).
		WithArgs(int64(3), order.Total, domain.OrderPending).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(11, created))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO order_items")).
		WithArgs(int64(11), 0, int64(1), "Kopi", order.Lines[0].Price).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO order_items")).
		WithArgs(int64(11), 1, int64(2), "Teh", order.Lines[1].Price).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	require.NoError(t, store.CreateOrder(context.Background(), order))
	assert.Equal(t, int64(11), order.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CreateOrderRollsBackOnLineFailure(t *testing.T) {
	store, mock := newMockStore(t)

	order := &domain.Order{
		UserID: 3,
		Total:  decimal.NewFromInt(10),
		Status: domain.OrderPending,
		Lines:  []domain.OrderLine{{ProductID: 1, Name: "Kopi", Price: decimal.NewFromInt(10)}},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO orders")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(12, time.Now()))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO order_items")).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err := store.CreateOrder(context.Background(), order)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_FindOrderByIDLoadsLinesAndCustomer(t *testing.T) {
	store, mock := newMockStore(t)
	created := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM orders o")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "total", "status", "created_at",
			"c_telegram_id", "c_first_name", "c_last_name", "c_username", "c_role", "c_created_at",
		}).AddRow(5, 3, "15.00", "paid", created, 42, "Ayu", "", "ayu", "user", created))
	mock.ExpectQuery(regexp.QuoteMeta("FROM order_items")).
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "product_id", "product_name", "unit_price"}).
			AddRow(5, 1, "Kopi", "10.00").
			AddRow(5, 2, "Teh", "5.00"))

	order, err := store.FindOrderByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPaid, order.Status)
	assert.True(t, decimal.NewFromInt(15).Equal(order.Total))
	require.NotNil(t, order.Customer)
	assert.Equal(t, int64(42), order.Customer.TelegramID)
	require.Len(t, order.Lines, 2)
	assert.Equal(t, "Teh", order.Lines[1].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_UpdateOrderStatus(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "applied",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET status")).
					WithArgs(int64(5), domain.OrderPending, domain.OrderPaid).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "status moved underneath",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET status")).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
			},
			wantErr: repository.ErrStatusConflict,
		},
		{
			name: "missing order",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET status")).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
			},
			wantErr: repository.ErrNotFound,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			store, mock := newMockStore(t)
			tc.setup(mock)

			err := store.UpdateOrderStatus(context.Background(), 5, domain.OrderPending, domain.OrderPaid)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_ToggleBankAccount(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE bank_accounts SET is_active = NOT is_active")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "bank_name", "account_number", "account_holder_name", "is_active", "created_at"}).
			AddRow(2, "BCA", "123", "Warung", false, time.Now()))

	account, err := store.ToggleBankAccount(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, account.IsActive)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DeleteProductMissing(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products")).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, store.DeleteProduct(context.Background(), 9), repository.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
