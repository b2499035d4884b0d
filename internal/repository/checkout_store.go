package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ksen61/kursovaya4petshop2/internal/domain"
)

// CheckoutStore is everything the checkout orchestrator touches. A single
// implementation backs both the plain *sql.DB and a transaction, so the
// orchestrator can run all of its steps inside one atomic unit via InTx.
type CheckoutStore interface {
	ActivePickupPoint(ctx context.Context, id uuid.UUID) (*domain.PickupPoint, error)
	CartSnapshot(ctx context.Context, userID uuid.UUID) ([]domain.CartLine, error)
	ReserveStock(ctx context.Context, line domain.CartLine, pickupPointID uuid.UUID) error
	CreateOrder(ctx context.Context, order *domain.Order) error
	DeleteCartLines(ctx context.Context, userID uuid.UUID, lineIDs []uuid.UUID) error
}

// CheckoutTxRunner adds the transaction boundary. Everything done by fn either
// commits as a whole or leaves no trace.
type CheckoutTxRunner interface {
	CheckoutStore
	InTx(ctx context.Context, fn func(CheckoutStore) error) error
}

type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type PostgresCheckoutStore struct {
	db *sql.DB // nil when the store is bound to a transaction
	q  dbtx
}

func NewCheckoutStore(db *sql.DB) *PostgresCheckoutStore {
	return &PostgresCheckoutStore{db: db, q: db}
}

func (s *PostgresCheckoutStore) InTx(ctx context.Context, fn func(CheckoutStore) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &domain.PersistenceError{Op: "begin checkout transaction", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(&PostgresCheckoutStore{q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return &domain.PersistenceError{Op: "commit checkout transaction", Err: err}
	}
	return nil
}

func (s *PostgresCheckoutStore) ActivePickupPoint(ctx context.Context, id uuid.UUID) (*domain.PickupPoint, error) {
	var p domain.PickupPoint
	err := s.q.QueryRowContext(ctx, `
		SELECT id, address, working_hours, is_active
		FROM pickup_points
		WHERE id = $1 AND is_active = TRUE`, id).
		Scan(&p.ID, &p.Address, &p.WorkingHours, &p.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrLocationNotFound
	}
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load pickup point", Err: err}
	}
	return &p, nil
}

// CartSnapshot reads the user's cart joined with the catalog, so each line
// carries the product's current price. Within a transaction this read is
// consistent with the writes that follow it.
func (s *PostgresCheckoutStore) CartSnapshot(ctx context.Context, userID uuid.UUID) ([]domain.CartLine, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT cl.id, cl.user_id, cl.product_id, p.name, p.price, cl.quantity
		FROM cart_lines cl
		JOIN products p ON p.id = cl.product_id
		WHERE cl.user_id = $1
		ORDER BY p.name`, userID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "snapshot cart", Err: err}
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var l domain.CartLine
		if err := rows.Scan(&l.ID, &l.UserID, &l.ProductID, &l.ProductName, &l.UnitPrice, &l.Quantity); err != nil {
			return nil, &domain.PersistenceError{Op: "scan cart line", Err: err}
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.PersistenceError{Op: "snapshot cart", Err: err}
	}
	return lines, nil
}

// ReserveStock is the conditional decrement: subtract N only where at least N
// remain. Two concurrent checkouts racing for the same stock row serialize
// here; the loser observes the reduced quantity and fails cleanly instead of
// double-spending the stock.
func (s *PostgresCheckoutStore) ReserveStock(ctx context.Context, line domain.CartLine, pickupPointID uuid.UUID) error {
	res, err := s.q.ExecContext(ctx, `
		UPDATE product_stocks
		SET quantity = quantity - $1
		WHERE product_id = $2 AND pickup_point_id = $3 AND quantity >= $1`,
		line.Quantity, line.ProductID, pickupPointID)
	if err != nil {
		return &domain.PersistenceError{Op: "reserve stock", Err: err}
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return &domain.PersistenceError{Op: "reserve stock", Err: err}
	}
	if affected == 1 {
		return nil
	}

	// The update matched nothing: either the row doesn't exist or it holds
	// less than requested. Tell the caller which.
	var available int
	err = s.q.QueryRowContext(ctx, `
		SELECT quantity FROM product_stocks
		WHERE product_id = $1 AND pickup_point_id = $2`,
		line.ProductID, pickupPointID).Scan(&available)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.StockMissingError{
			ProductID:     line.ProductID,
			ProductName:   line.ProductName,
			PickupPointID: pickupPointID,
		}
	}
	if err != nil {
		return &domain.PersistenceError{Op: "inspect stock", Err: err}
	}
	return &domain.InsufficientStockError{
		ProductID:   line.ProductID,
		ProductName: line.ProductName,
		Available:   available,
		Requested:   line.Quantity,
	}
}

func (s *PostgresCheckoutStore) CreateOrder(ctx context.Context, order *domain.Order) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO orders (id, order_number, user_id, pickup_point_id, status,
			total_price, first_name, last_name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		order.ID, order.OrderNumber, order.UserID, order.PickupPointID, order.Status,
		order.TotalPrice, order.FirstName, order.LastName, order.Email, order.Phone,
		order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return &domain.PersistenceError{Op: "insert order", Err: err}
	}

	for _, l := range order.Lines {
		_, err := s.q.ExecContext(ctx, `
			INSERT INTO order_lines (id, order_id, product_id, product_name, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			l.ID, l.OrderID, l.ProductID, l.ProductName, l.Quantity, l.UnitPrice)
		if err != nil {
			return &domain.PersistenceError{Op: "insert order line", Err: err}
		}
	}
	return nil
}

// DeleteCartLines removes exactly the lines that were part of the snapshot.
// A line the user added after the snapshot has a different id and survives.
func (s *PostgresCheckoutStore) DeleteCartLines(ctx context.Context, userID uuid.UUID, lineIDs []uuid.UUID) error {
	ids := make([]string, len(lineIDs))
	for i, id := range lineIDs {
		ids[i] = id.String()
	}
	_, err := s.q.ExecContext(ctx, `
		DELETE FROM cart_lines WHERE user_id = $1 AND id = ANY($2)`,
		userID, pq.Array(ids))
	if err != nil {
		return &domain.PersistenceError{Op: "clear cart", Err: err}
	}
	return nil
}
