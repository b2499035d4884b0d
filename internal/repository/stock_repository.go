package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/ksen61/kursovaya4petshop2/internal/domain"
)

type StockRepository struct {
	db *sql.DB
}

func NewStockRepository(db *sql.DB) *StockRepository {
	return &StockRepository{db: db}
}

// Restock is the administrative increment, upserting the stock row when the
// product was never stocked at the point before. Checkout never calls this;
// its only write path is the conditional decrement.
func (r *StockRepository) Restock(ctx context.Context, productID, pickupPointID uuid.UUID, delta int) (*domain.StockRecord, error) {
	record := &domain.StockRecord{ProductID: productID, PickupPointID: pickupPointID}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO product_stocks (product_id, pickup_point_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (product_id, pickup_point_id)
		DO UPDATE SET quantity = product_stocks.quantity + EXCLUDED.quantity
		RETURNING quantity`,
		productID, pickupPointID, delta).Scan(&record.Quantity)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "restock", Err: err}
	}
	return record, nil
}

func (r *StockRepository) Levels(ctx context.Context, productID uuid.UUID) ([]domain.StockLevel, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ps.pickup_point_id, pp.address, ps.quantity
		FROM product_stocks ps
		JOIN pickup_points pp ON pp.id = ps.pickup_point_id
		WHERE ps.product_id = $1
		ORDER BY pp.address`, productID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load stock levels", Err: err}
	}
	defer rows.Close()

	var levels []domain.StockLevel
	for rows.Next() {
		var l domain.StockLevel
		if err := rows.Scan(&l.PickupPointID, &l.Address, &l.Quantity); err != nil {
			return nil, &domain.PersistenceError{Op: "scan stock level", Err: err}
		}
		levels = append(levels, l)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.PersistenceError{Op: "load stock levels", Err: err}
	}
	return levels, nil
}
