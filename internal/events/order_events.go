package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	OrderConfirmedEvent EventType = "order.confirmed"

	NotificationSentEvent   EventType = "notification.sent"
	NotificationFailedEvent EventType = "notification.failed"
)

// OrderEvent is the envelope published to the orders exchange. Payload is
// typed on the publishing side and decoded with DecodePayload on the
// consuming side.
type OrderEvent struct {
	ID            uuid.UUID   `json:"id"`
	OrderID       uuid.UUID   `json:"order_id"`
	UserID        uuid.UUID   `json:"user_id"`
	EventType     EventType   `json:"event_type"`
	Payload       interface{} `json:"payload"`
	Timestamp     time.Time   `json:"timestamp"`
	Service       string      `json:"service"`
	CorrelationID uuid.UUID   `json:"correlation_id"`
}

type OrderConfirmedPayload struct {
	OrderID     uuid.UUID            `json:"order_id"`
	OrderNumber string               `json:"order_number"`
	UserID      uuid.UUID            `json:"user_id"`
	FirstName   string               `json:"first_name"`
	LastName    string               `json:"last_name"`
	Email       string               `json:"email"`
	TotalPrice  string               `json:"total_price"`
	PickupPoint string               `json:"pickup_point"`
	Lines       []OrderConfirmedLine `json:"lines"`
}

type OrderConfirmedLine struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
}

type NotificationFailedPayload struct {
	OrderID uuid.UUID `json:"order_id"`
	Reason  string    `json:"reason"`
}

// DecodePayload re-marshals the generic payload into the concrete type. After
// JSON transport Payload arrives as map[string]interface{}; this is the one
// place that turns it back.
func DecodePayload(event OrderEvent, out interface{}) error {
	raw, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("payload re-marshal error: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("payload decode error: %w", err)
	}
	return nil
}
