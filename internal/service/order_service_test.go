package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksen61/kursovaya4petshop2/internal/domain"
)

func newOrderFixture(status domain.OrderStatus) (*OrderService, *mockOrderStore, *mockAudit, *domain.Order) {
	order := &domain.Order{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Status: status,
	}
	store := &mockOrderStore{orders: map[uuid.UUID]*domain.Order{order.ID: order}}
	audit := &mockAudit{}
	return NewOrderService(store, audit, zerolog.Nop()), store, audit, order
}

func TestGetOrder_ScopedToOwner(t *testing.T) {
	svc, _, _, order := newOrderFixture(domain.OrderStatusProcessing)

	got, err := svc.GetOrder(context.Background(), order.UserID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	// Another user's id never finds this order.
	_, err = svc.GetOrder(context.Background(), uuid.New(), order.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestUpdateStatus_SingleStepForward(t *testing.T) {
	svc, _, audit, order := newOrderFixture(domain.OrderStatusProcessing)
	actorID := uuid.New()

	updated, err := svc.UpdateStatus(context.Background(), actorID, order.ID, domain.OrderStatusInProgress)

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusInProgress, updated.Status)

	require.Len(t, audit.entries, 1)
	entry := audit.entries[0]
	assert.Equal(t, "orders", entry.TableName)
	assert.Equal(t, order.ID, entry.RowID)
	assert.Equal(t, domain.AuditActionUpdate, entry.Action)
	require.NotNil(t, entry.ActorID)
	assert.Equal(t, actorID, *entry.ActorID)
}

func TestUpdateStatus_RejectsSkip(t *testing.T) {
	svc, store, _, order := newOrderFixture(domain.OrderStatusProcessing)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), order.ID, domain.OrderStatusCompleted)

	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	assert.Equal(t, domain.OrderStatusProcessing, store.orders[order.ID].Status)
}

func TestUpdateStatus_RejectsReversal(t *testing.T) {
	svc, _, _, order := newOrderFixture(domain.OrderStatusCompleted)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), order.ID, domain.OrderStatusInProgress)
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
}

func TestUpdateStatus_TerminalStatus(t *testing.T) {
	svc, _, _, order := newOrderFixture(domain.OrderStatusReceived)

	for _, next := range []domain.OrderStatus{
		domain.OrderStatusProcessing,
		domain.OrderStatusInProgress,
		domain.OrderStatusCompleted,
		domain.OrderStatusReceived,
	} {
		_, err := svc.UpdateStatus(context.Background(), uuid.New(), order.ID, next)
		assert.ErrorIs(t, err, domain.ErrIllegalTransition, "received -> %s", next)
	}
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	svc, _, _, order := newOrderFixture(domain.OrderStatusProcessing)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), order.ID, domain.OrderStatus("shipped"))
	assert.ErrorIs(t, err, domain.ErrUnknownStatus)
}

func TestUpdateStatus_OrderNotFound(t *testing.T) {
	svc, _, _, _ := newOrderFixture(domain.OrderStatusProcessing)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), uuid.New(), domain.OrderStatusInProgress)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestUpdateStatus_AuditFailureIsTolerated(t *testing.T) {
	svc, _, audit, order := newOrderFixture(domain.OrderStatusProcessing)
	audit.err = assert.AnError

	updated, err := svc.UpdateStatus(context.Background(), uuid.New(), order.ID, domain.OrderStatusInProgress)

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusInProgress, updated.Status)
}
