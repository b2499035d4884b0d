package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/ksen61/kursovaya4petshop2/internal/domain"
)

type ReviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// HasPurchased reports whether any of the user's orders contains the product.
// This is the purchase gate for reviews.
func (r *ReviewRepository) HasPurchased(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM order_lines ol
			JOIN orders o ON o.id = ol.order_id
			WHERE o.user_id = $1 AND ol.product_id = $2
		)`, userID, productID).Scan(&exists)
	if err != nil {
		return false, &domain.PersistenceError{Op: "check purchase history", Err: err}
	}
	return exists, nil
}

func (r *ReviewRepository) Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM reviews WHERE user_id = $1 AND product_id = $2
		)`, userID, productID).Scan(&exists)
	if err != nil {
		return false, &domain.PersistenceError{Op: "check review existence", Err: err}
	}
	return exists, nil
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reviews (id, product_id, user_id, rating, text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		review.ID, review.ProductID, review.UserID, review.Rating, review.Text, review.CreatedAt)
	if err != nil {
		return &domain.PersistenceError{Op: "insert review", Err: err}
	}
	return nil
}

func (r *ReviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, user_id, rating, text, created_at
		FROM reviews WHERE product_id = $1
		ORDER BY created_at DESC`, productID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list reviews", Err: err}
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Rating, &rv.Text, &rv.CreatedAt); err != nil {
			return nil, &domain.PersistenceError{Op: "scan review", Err: err}
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}
