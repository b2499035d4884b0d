package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksen61/kursovaya4petshop2/internal/domain"
	"github.com/ksen61/kursovaya4petshop2/internal/events"
)

func TestEventNotifier_PublishesConfirmedEvent(t *testing.T) {
	publisher := &mockPublisher{}
	notifier := NewEventNotifier(publisher)

	order := domain.NewOrder(uuid.New(), uuid.New(), domain.ContactInfo{
		FirstName: "Ivan",
		LastName:  "Petrov",
		Email:     "ivan.petrov@example.com",
	}, []domain.CartLine{
		{ID: uuid.New(), ProductID: uuid.New(), ProductName: "Dog food 5kg",
			UnitPrice: decimal.RequireFromString("100.00"), Quantity: 3},
	})

	require.NoError(t, notifier.OrderConfirmed(order, "Lenina 10"))

	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	assert.Equal(t, events.OrderConfirmedEvent, event.EventType)
	assert.Equal(t, "shop-service", event.Service)
	assert.Equal(t, order.ID, event.OrderID)

	payload, ok := event.Payload.(events.OrderConfirmedPayload)
	require.True(t, ok)
	assert.Equal(t, order.OrderNumber, payload.OrderNumber)
	assert.Equal(t, "300.00", payload.TotalPrice)
	assert.Equal(t, "Lenina 10", payload.PickupPoint)
	require.Len(t, payload.Lines, 1)
	assert.Equal(t, "100.00", payload.Lines[0].UnitPrice)
}
