package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/ksen61/kursovaya4petshop2/internal/domain"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) ActiveByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var p domain.Product
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, price, is_active
		FROM products
		WHERE id = $1 AND is_active = TRUE`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load product", Err: err}
	}
	return &p, nil
}

// AggregateStock sums the product's quantity across every pickup point. This
// is the availability shown while filling a cart; the per-point check happens
// at checkout.
func (r *ProductRepository) AggregateStock(ctx context.Context, productID uuid.UUID) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(quantity), 0) FROM product_stocks WHERE product_id = $1`,
		productID).Scan(&total)
	if err != nil {
		return 0, &domain.PersistenceError{Op: "sum product stock", Err: err}
	}
	return total, nil
}
