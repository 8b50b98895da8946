package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Proton-105/warung-bot/internal/domain"
	"github.com/Proton-105/warung-bot/internal/repository"
)

const orderSelect = `
	SELECT o.id, o.user_id, o.total, o.status, o.created_at,
	       u.telegram_id AS c_telegram_id, u.first_name AS c_first_name, u.last_name AS c_last_name,
	       u.username AS c_username, u.role AS c_role, u.created_at AS c_created_at
	FROM orders o
	JOIN users u ON u.id = o.user_id
`

type orderRow struct {
	domain.Order
	CustomerTelegramID int64       `db:"c_telegram_id"`
	CustomerFirstName  string      `db:"c_first_name"`
	CustomerLastName   string      `db:"c_last_name"`
	CustomerUsername   string      `db:"c_username"`
	CustomerRole       domain.Role `db:"c_role"`
	CustomerCreatedAt  time.Time   `db:"c_created_at"`
}

func (r orderRow) toDomain() domain.Order {
	order := r.Order
	order.Customer = &domain.User{
		ID:         r.UserID,
		TelegramID: r.CustomerTelegramID,
		FirstName:  r.CustomerFirstName,
		LastName:   r.CustomerLastName,
		Username:   r.CustomerUsername,
		Role:       r.CustomerRole,
		CreatedAt:  r.CustomerCreatedAt,
	}
	return order
}

type orderLineRow struct {
	OrderID int64 `db:"order_id"`
	domain.OrderLine
}

// CreateOrder inserts the order and its line snapshots in one transaction.
func (s *Store) CreateOrder(ctx context.Context, order *domain.Order) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin order tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insertOrder = `
		INSERT INTO orders (user_id, total, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	if err = tx.QueryRowxContext(ctx, insertOrder, order.UserID, order.Total, order.Status).
		Scan(&order.ID, &order.CreatedAt); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	const insertLine = `
		INSERT INTO order_items (order_id, position, product_id, product_name, unit_price)
		VALUES ($1, $2, $3, $4, $5)
	`
	for i, line := range order.Lines {
		if _, err = tx.ExecContext(ctx, insertLine, order.ID, i, line.ProductID, line.Name, line.Price); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit order: %w", err)
	}

	return nil
}

// FindOrderByID loads an order with its customer and lines.
func (s *Store) FindOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	orders, err := s.queryOrders(ctx, orderSelect+` WHERE o.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, repository.ErrNotFound
	}

	return &orders[0], nil
}

// ListOrders returns every order, newest first.
func (s *Store) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.queryOrders(ctx, orderSelect+` ORDER BY o.created_at DESC, o.id DESC`)
}

// ListOrdersByUser returns a customer's orders, newest first.
func (s *Store) ListOrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.queryOrders(ctx, orderSelect+` WHERE o.user_id = $1 ORDER BY o.created_at DESC, o.id DESC`, userID)
}

// ListPendingOrders returns orders awaiting payment, newest first.
func (s *Store) ListPendingOrders(ctx context.Context) ([]domain.Order, error) {
	return s.queryOrders(ctx, orderSelect+` WHERE o.status = $1 ORDER BY o.created_at DESC, o.id DESC`, domain.OrderPending)
}

// UpdateOrderStatus applies the transition only while the stored status still equals from.
func (s *Store) UpdateOrderStatus(ctx context.Context, id int64, from, to domain.OrderStatus) error {
	res, err := s.db.ExecContext(ctx, `UPDATE orders SET status = $3 WHERE id = $1 AND status = $2`, id, from, to)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if n > 0 {
		return nil
	}

	var exists bool
	if err := s.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id); err != nil {
		return fmt.Errorf("check order: %w", err)
	}
	if !exists {
		return repository.ErrNotFound
	}

	return repository.ErrStatusConflict
}

func (s *Store) queryOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	var rows []orderRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}

	orders := make([]domain.Order, 0, len(rows))
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, row.toDomain())
		ids = append(ids, row.ID)
	}
	if len(ids) == 0 {
		return orders, nil
	}

	lines, err := s.loadLines(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Lines = lines[orders[i].ID]
	}

	return orders, nil
}

func (s *Store) loadLines(ctx context.Context, q sqlx.QueryerContext, orderIDs []int64) (map[int64][]domain.OrderLine, error) {
	const query = `
		SELECT order_id, product_id, product_name, unit_price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, position
	`

	var rows []orderLineRow
	if err := sqlx.SelectContext(ctx, q, &rows, query, pq.Array(orderIDs)); err != nil {
		return nil, fmt.Errorf("select order items: %w", err)
	}

	out := make(map[int64][]domain.OrderLine, len(orderIDs))
	for _, row := range rows {
		out[row.OrderID] = append(out[row.OrderID], row.OrderLine)
	}

	return out, nil
}
