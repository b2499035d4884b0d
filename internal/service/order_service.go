package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ksen61/kursovaya4petshop2/internal/domain"
)

type OrderStore interface {
	ByID(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)
	ByIDForUser(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) error
}

type AuditRecorder interface {
	Record(ctx context.Context, entry *domain.AuditEntry) error
}

type OrderService struct {
	orders OrderStore
	audit  AuditRecorder
	log    zerolog.Logger
}

func NewOrderService(orders OrderStore, audit AuditRecorder, log zerolog.Logger) *OrderService {
	return &OrderService{
		orders: orders,
		audit:  audit,
		log:    log.With().Str("component", "orders").Logger(),
	}
}

func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, error) {
	return s.orders.ByIDForUser(ctx, userID, orderID)
}

func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// UpdateStatus advances an order one step along its lifecycle. Only the
// single next status is accepted; skips and reversals are rejected. The
// change is audited because an administrator, not the system, made it.
func (s *OrderService) UpdateStatus(ctx context.Context, actorID, orderID uuid.UUID, next domain.OrderStatus) (*domain.Order, error) {
	if !next.Valid() {
		return nil, domain.ErrUnknownStatus
	}

	order, err := s.orders.ByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, domain.ErrIllegalTransition
	}

	previous := order.Status
	if err := s.orders.UpdateStatus(ctx, orderID, next); err != nil {
		return nil, err
	}
	order.Status = next
	order.UpdatedAt = time.Now()

	entry := &domain.AuditEntry{
		ID:         uuid.New(),
		ActorID:    &actorID,
		TableName:  "orders",
		RowID:      orderID,
		Action:     domain.AuditActionUpdate,
		OldData:    map[string]interface{}{"status": previous},
		NewData:    map[string]interface{}{"status": next},
		ActionTime: time.Now(),
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.log.Error().Err(err).Str("order_id", orderID.String()).Msg("audit record failed")
	}

	s.log.Info().
		Str("order_id", orderID.String()).
		Str("from", string(previous)).
		Str("to", string(next)).
		Msg("order status updated")

	return order, nil
}
