package domain

import (
	"time"

	"github.com/google/uuid"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
)

type NotificationType string

const (
	NotificationTypeEmail NotificationType = "email"
)

// Notification is one delivery attempt of an order confirmation, recorded by
// the notification worker. Orders never depend on these rows.
type Notification struct {
	ID        uuid.UUID          `json:"id" db:"id"`
	OrderID   uuid.UUID          `json:"order_id" db:"order_id"`
	UserID    uuid.UUID          `json:"user_id" db:"user_id"`
	Type      NotificationType   `json:"type" db:"type"`
	Status    NotificationStatus `json:"status" db:"status"`
	Subject   string             `json:"subject" db:"subject"`
	Message   string             `json:"message" db:"message"`
	Recipient string             `json:"recipient" db:"recipient"`
	CreatedAt time.Time          `json:"created_at" db:"created_at"`
	SentAt    *time.Time         `json:"sent_at,omitempty" db:"sent_at"`
}

func NewNotification(orderID, userID uuid.UUID, subject, message, recipient string) *Notification {
	return &Notification{
		ID:        uuid.New(),
		OrderID:   orderID,
		UserID:    userID,
		Type:      NotificationTypeEmail,
		Status:    NotificationStatusPending,
		Subject:   subject,
		Message:   message,
		Recipient: recipient,
		CreatedAt: time.Now(),
	}
}

func (n *Notification) MarkAsSent() {
	n.Status = NotificationStatusSent
	now := time.Now()
	n.SentAt = &now
}

func (n *Notification) MarkAsFailed() {
	n.Status = NotificationStatusFailed
}
