package service

import (
	"github.com/google/uuid"

	"github.com/ksen61/kursovaya4petshop2/internal/domain"
	"github.com/ksen61/kursovaya4petshop2/internal/events"
)

type eventPublisher interface {
	PublishOrderEvent(event events.OrderEvent) error
}

// EventNotifier publishes order confirmations to the orders exchange, where
// the notification worker picks them up.
type EventNotifier struct {
	publisher eventPublisher
}

func NewEventNotifier(publisher eventPublisher) *EventNotifier {
	return &EventNotifier{publisher: publisher}
}

func (n *EventNotifier) OrderConfirmed(order *domain.Order, pickupAddress string) error {
	lines := make([]events.OrderConfirmedLine, len(order.Lines))
	for i, l := range order.Lines {
		lines[i] = events.OrderConfirmedLine{
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice.StringFixed(2),
		}
	}

	return n.publisher.PublishOrderEvent(events.OrderEvent{
		ID:            uuid.New(),
		OrderID:       order.ID,
		UserID:        order.UserID,
		EventType:     events.OrderConfirmedEvent,
		Service:       "shop-service",
		CorrelationID: uuid.New(),
		Payload: events.OrderConfirmedPayload{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			UserID:      order.UserID,
			FirstName:   order.FirstName,
			LastName:    order.LastName,
			Email:       order.Email,
			TotalPrice:  order.TotalPrice.StringFixed(2),
			PickupPoint: pickupAddress,
			Lines:       lines,
		},
	})
}
