package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ksen61/kursovaya4petshop2/internal/domain"
	"github.com/ksen61/kursovaya4petshop2/internal/repository"
)

// Notifier delivers the order confirmation after the checkout transaction has
// committed. It is strictly best-effort: a failure here never surfaces to the
// customer whose order is already durable.
type Notifier interface {
	OrderConfirmed(order *domain.Order, pickupAddress string) error
}

// CheckoutService turns a cart plus a pickup point into a durable order, or
// fails with no side effects at all.
type CheckoutService struct {
	store     repository.CheckoutTxRunner
	notifier  Notifier
	log       zerolog.Logger
	txTimeout time.Duration
}

func NewCheckoutService(store repository.CheckoutTxRunner, notifier Notifier, log zerolog.Logger) *CheckoutService {
	return &CheckoutService{
		store:     store,
		notifier:  notifier,
		log:       log.With().Str("component", "checkout").Logger(),
		txTimeout: 10 * time.Second,
	}
}

// PlaceOrder runs the whole checkout inside one transaction: validate the
// pickup point, snapshot the cart, reserve stock line by line via conditional
// decrement, persist the order with its lines, and drain exactly the
// snapshotted cart lines. Any failure rolls the whole thing back. The
// confirmation is dispatched only after the commit.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID, pickupPointID uuid.UUID, contact domain.ContactInfo) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	var order *domain.Order
	var pickupAddress string

	err := s.store.InTx(ctx, func(tx repository.CheckoutStore) error {
		point, err := tx.ActivePickupPoint(ctx, pickupPointID)
		if err != nil {
			return err
		}
		pickupAddress = point.Address

		snapshot, err := tx.CartSnapshot(ctx, userID)
		if err != nil {
			return err
		}
		if len(snapshot) == 0 {
			return domain.ErrEmptyCart
		}

		if err := contact.Validate(); err != nil {
			return err
		}

		for _, line := range snapshot {
			if err := tx.ReserveStock(ctx, line, pickupPointID); err != nil {
				return err
			}
		}

		order = domain.NewOrder(userID, pickupPointID, contact, snapshot)
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}

		lineIDs := make([]uuid.UUID, len(snapshot))
		for i, line := range snapshot {
			lineIDs[i] = line.ID
		}
		return tx.DeleteCartLines(ctx, userID, lineIDs)
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, domain.ErrTransactionTimeout
		}
		return nil, err
	}

	s.log.Info().
		Str("order_id", order.ID.String()).
		Str("order_number", order.OrderNumber).
		Str("user_id", userID.String()).
		Str("total_price", order.TotalPrice.String()).
		Msg("order placed")

	// The order is committed; the confirmation must not undo that.
	if err := s.notifier.OrderConfirmed(order, pickupAddress); err != nil {
		s.log.Error().Err(err).
			Str("order_id", order.ID.String()).
			Msg("order confirmation dispatch failed")
	}

	return order, nil
}
