package messaging

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/streadway/amqp"

	"github.com/ksen61/kursovaya4petshop2/internal/events"
)

type Publisher struct {
	client *Client
	log    zerolog.Logger
}

func NewPublisher(client *Client, log zerolog.Logger) *Publisher {
	return &Publisher{
		client: client,
		log:    log.With().Str("component", "publisher").Logger(),
	}
}

func (p *Publisher) PublishOrderEvent(event events.OrderEvent) error {
	if !p.client.IsConnected() {
		return fmt.Errorf("no connection to RabbitMQ")
	}

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("event serialization error: %w", err)
	}

	routingKey := fmt.Sprintf("orders.%s.%s", event.Service, string(event.EventType))

	channel := p.client.Channel()
	err = channel.Publish(
		p.client.config.Exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    event.ID.String(),
			Timestamp:    event.Timestamp,
			Headers: amqp.Table{
				"order_id":       event.OrderID.String(),
				"user_id":        event.UserID.String(),
				"correlation_id": event.CorrelationID.String(),
				"service":        event.Service,
				"event_type":     string(event.EventType),
			},
		},
	)
	if err != nil {
		return fmt.Errorf("event publish error: %w", err)
	}

	p.log.Info().Str("routing_key", routingKey).Str("order_id", event.OrderID.String()).
		Msg("event published")
	return nil
}

func (p *Publisher) PublishWithRetry(event events.OrderEvent, maxRetries int) error {
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		if err := p.PublishOrderEvent(event); err != nil {
			lastErr = err
			p.log.Warn().Err(err).Int("attempt", i+1).Int("max", maxRetries).
				Msg("publish failed")
			if i < maxRetries-1 {
				time.Sleep(time.Second * time.Duration(i+1))
				continue
			}
		} else {
			return nil
		}
	}
	return fmt.Errorf("event publish failed after %d attempts: %w", maxRetries, lastErr)
}
