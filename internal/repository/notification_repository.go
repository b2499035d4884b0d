package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/ksen61/kursovaya4petshop2/internal/domain"
)

type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (id, order_id, user_id, type, status,
			subject, message, recipient, created_at, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		n.ID, n.OrderID, n.UserID, n.Type, n.Status,
		n.Subject, n.Message, n.Recipient, n.CreatedAt, n.SentAt)
	if err != nil {
		return &domain.PersistenceError{Op: "insert notification", Err: err}
	}
	return nil
}

func (r *NotificationRepository) Update(ctx context.Context, n *domain.Notification) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET status = $2, sent_at = $3 WHERE id = $1`,
		n.ID, n.Status, n.SentAt)
	if err != nil {
		return &domain.PersistenceError{Op: "update notification", Err: err}
	}
	return nil
}

func (r *NotificationRepository) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]domain.Notification, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, user_id, type, status, subject, message, recipient, created_at, sent_at
		FROM notifications WHERE order_id = $1
		ORDER BY created_at`, orderID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list notifications", Err: err}
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.OrderID, &n.UserID, &n.Type, &n.Status,
			&n.Subject, &n.Message, &n.Recipient, &n.CreatedAt, &n.SentAt); err != nil {
			return nil, &domain.PersistenceError{Op: "scan notification", Err: err}
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}
