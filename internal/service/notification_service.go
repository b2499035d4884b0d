package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ksen61/kursovaya4petshop2/internal/domain"
	"github.com/ksen61/kursovaya4petshop2/internal/events"
)

type NotificationStore interface {
	Create(ctx context.Context, n *domain.Notification) error
	Update(ctx context.Context, n *domain.Notification) error
}

// Sender is the actual delivery channel. The real mail gateway lives outside
// this system; LogSender stands in for it.
type Sender interface {
	Send(n *domain.Notification) error
}

type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log.With().Str("component", "sender").Logger()}
}

func (s *LogSender) Send(n *domain.Notification) error {
	s.log.Info().
		Str("recipient", n.Recipient).
		Str("subject", n.Subject).
		Msg("confirmation dispatched")
	return nil
}

// NotificationService is the worker-side handler: it records each
// confirmation attempt and reports the outcome back to the exchange. Nothing
// here can touch the order itself.
type NotificationService struct {
	notifications NotificationStore
	sender        Sender
	publisher     eventPublisher
	log           zerolog.Logger
}

func NewNotificationService(notifications NotificationStore, sender Sender, publisher eventPublisher, log zerolog.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		sender:        sender,
		publisher:     publisher,
		log:           log.With().Str("component", "notifications").Logger(),
	}
}

func (s *NotificationService) HandleOrderEvent(event events.OrderEvent) error {
	if event.EventType != events.OrderConfirmedEvent {
		return nil
	}

	var payload events.OrderConfirmedPayload
	if err := events.DecodePayload(event, &payload); err != nil {
		return err
	}

	ctx := context.Background()
	notification := domain.NewNotification(
		payload.OrderID,
		payload.UserID,
		fmt.Sprintf("Order %s confirmed", payload.OrderNumber),
		renderConfirmation(payload),
		payload.Email,
	)

	if err := s.notifications.Create(ctx, notification); err != nil {
		return err
	}

	if err := s.sender.Send(notification); err != nil {
		notification.MarkAsFailed()
		if updateErr := s.notifications.Update(ctx, notification); updateErr != nil {
			s.log.Error().Err(updateErr).Msg("notification status update failed")
		}
		return s.publishFailed(event, err)
	}

	notification.MarkAsSent()
	if err := s.notifications.Update(ctx, notification); err != nil {
		s.log.Error().Err(err).Msg("notification status update failed")
	}

	return s.publishSent(event)
}

func renderConfirmation(p events.OrderConfirmedPayload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s %s,\n\n", p.FirstName, p.LastName)
	fmt.Fprintf(&b, "Your order %s has been placed.\n\n", p.OrderNumber)
	for _, l := range p.Lines {
		fmt.Fprintf(&b, "  %s x%d @ %s\n", l.ProductName, l.Quantity, l.UnitPrice)
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", p.TotalPrice)
	fmt.Fprintf(&b, "Pickup point: %s\n", p.PickupPoint)
	return b.String()
}

func (s *NotificationService) publishSent(source events.OrderEvent) error {
	event := events.OrderEvent{
		ID:            uuid.New(),
		OrderID:       source.OrderID,
		UserID:        source.UserID,
		EventType:     events.NotificationSentEvent,
		Service:       "notification-worker",
		CorrelationID: source.CorrelationID,
	}
	if err := s.publisher.PublishOrderEvent(event); err != nil {
		s.log.Error().Err(err).Str("order_id", source.OrderID.String()).
			Msg("notification sent event publish failed")
	}
	return nil
}

func (s *NotificationService) publishFailed(source events.OrderEvent, cause error) error {
	event := events.OrderEvent{
		ID:            uuid.New(),
		OrderID:       source.OrderID,
		UserID:        source.UserID,
		EventType:     events.NotificationFailedEvent,
		Service:       "notification-worker",
		CorrelationID: source.CorrelationID,
		Payload: events.NotificationFailedPayload{
			OrderID: source.OrderID,
			Reason:  cause.Error(),
		},
	}
	if err := s.publisher.PublishOrderEvent(event); err != nil {
		s.log.Error().Err(err).Str("order_id", source.OrderID.String()).
			Msg("notification failed event publish failed")
	}
	return cause
}
