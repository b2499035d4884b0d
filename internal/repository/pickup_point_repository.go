package repository

import (
	"context"
	"database/sql"

	"github.com/ksen61/kursovaya4petshop2/internal/domain"
)

type PickupPointRepository struct {
	db *sql.DB
}

func NewPickupPointRepository(db *sql.DB) *PickupPointRepository {
	return &PickupPointRepository{db: db}
}

func (r *PickupPointRepository) ListActive(ctx context.Context) ([]domain.PickupPoint, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, address, working_hours, is_active
		FROM pickup_points
		WHERE is_active = TRUE
		ORDER BY address`)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list pickup points", Err: err}
	}
	defer rows.Close()

	var points []domain.PickupPoint
	for rows.Next() {
		var p domain.PickupPoint
		if err := rows.Scan(&p.ID, &p.Address, &p.WorkingHours, &p.IsActive); err != nil {
			return nil, &domain.PersistenceError{Op: "scan pickup point", Err: err}
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
