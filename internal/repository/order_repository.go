package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ksen61/kursovaya4petshop2/internal/domain"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, order_number, user_id, pickup_point_id, status,
	total_price, first_name, last_name, email, phone, created_at, updated_at`

func scanOrder(row *sql.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.PickupPointID, &o.Status,
		&o.TotalPrice, &o.FirstName, &o.LastName, &o.Email, &o.Phone,
		&o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load order", Err: err}
	}
	return &o, nil
}

func (r *OrderRepository) ByID(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	order, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID))
	if err != nil {
		return nil, err
	}
	if order.Lines, err = r.linesFor(ctx, order.ID); err != nil {
		return nil, err
	}
	return order, nil
}

// ByIDForUser scopes the lookup to the owner; someone else's order id behaves
// exactly like a missing one.
func (r *OrderRepository) ByIDForUser(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, error) {
	order, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1 AND user_id = $2`, orderID, userID))
	if err != nil {
		return nil, err
	}
	if order.Lines, err = r.linesFor(ctx, order.ID); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list orders", Err: err}
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.PickupPointID, &o.Status,
			&o.TotalPrice, &o.FirstName, &o.LastName, &o.Email, &o.Phone,
			&o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, &domain.PersistenceError{Op: "scan order", Err: err}
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.PersistenceError{Op: "list orders", Err: err}
	}

	for _, o := range orders {
		if o.Lines, err = r.linesFor(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`,
		orderID, status, time.Now())
	if err != nil {
		return &domain.PersistenceError{Op: "update order status", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &domain.PersistenceError{Op: "update order status", Err: err}
	}
	if affected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) linesFor(ctx context.Context, orderID uuid.UUID) ([]domain.OrderLine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, unit_price
		FROM order_lines WHERE order_id = $1`, orderID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load order lines", Err: err}
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var l domain.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.ProductName, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, &domain.PersistenceError{Op: "scan order line", Err: err}
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
