package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/ksen61/kursovaya4petshop2/internal/domain"
)

type CartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) GetCart(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT cl.id, cl.user_id, cl.product_id, p.name, p.price, cl.quantity
		FROM cart_lines cl
		JOIN products p ON p.id = cl.product_id
		WHERE cl.user_id = $1
		ORDER BY p.name`, userID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load cart", Err: err}
	}
	defer rows.Close()

	cart := &domain.Cart{UserID: userID}
	for rows.Next() {
		var l domain.CartLine
		if err := rows.Scan(&l.ID, &l.UserID, &l.ProductID, &l.ProductName, &l.UnitPrice, &l.Quantity); err != nil {
			return nil, &domain.PersistenceError{Op: "scan cart line", Err: err}
		}
		cart.Lines = append(cart.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.PersistenceError{Op: "load cart", Err: err}
	}
	return cart, nil
}

// UpsertLine adds a product to the cart, bumping the quantity when the
// product is already there. Returns the line's resulting quantity.
func (r *CartRepository) UpsertLine(ctx context.Context, userID, productID uuid.UUID, quantity int) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cart_lines (id, user_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity
		RETURNING quantity`,
		uuid.New(), userID, productID, quantity).Scan(&total)
	if err != nil {
		return 0, &domain.PersistenceError{Op: "add cart line", Err: err}
	}
	return total, nil
}

func (r *CartRepository) LineQuantity(ctx context.Context, userID, productID uuid.UUID) (int, error) {
	var quantity int
	err := r.db.QueryRowContext(ctx, `
		SELECT quantity FROM cart_lines WHERE user_id = $1 AND product_id = $2`,
		userID, productID).Scan(&quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, &domain.PersistenceError{Op: "load cart line", Err: err}
	}
	return quantity, nil
}

func (r *CartRepository) GetLine(ctx context.Context, userID, lineID uuid.UUID) (*domain.CartLine, error) {
	var l domain.CartLine
	err := r.db.QueryRowContext(ctx, `
		SELECT cl.id, cl.user_id, cl.product_id, p.name, p.price, cl.quantity
		FROM cart_lines cl
		JOIN products p ON p.id = cl.product_id
		WHERE cl.user_id = $1 AND cl.id = $2`, userID, lineID).
		Scan(&l.ID, &l.UserID, &l.ProductID, &l.ProductName, &l.UnitPrice, &l.Quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCartLineNotFound
	}
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load cart line", Err: err}
	}
	return &l, nil
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, userID, lineID uuid.UUID, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cart_lines SET quantity = $3 WHERE user_id = $1 AND id = $2`,
		userID, lineID, quantity)
	if err != nil {
		return &domain.PersistenceError{Op: "update cart line", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &domain.PersistenceError{Op: "update cart line", Err: err}
	}
	if affected == 0 {
		return domain.ErrCartLineNotFound
	}
	return nil
}

func (r *CartRepository) DeleteLine(ctx context.Context, userID, lineID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_lines WHERE user_id = $1 AND id = $2`, userID, lineID)
	if err != nil {
		return &domain.PersistenceError{Op: "delete cart line", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &domain.PersistenceError{Op: "delete cart line", Err: err}
	}
	if affected == 0 {
		return domain.ErrCartLineNotFound
	}
	return nil
}
