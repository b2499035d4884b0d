package messaging

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/streadway/amqp"

	"github.com/ksen61/kursovaya4petshop2/internal/events"
)

type EventHandler func(event events.OrderEvent) error

type Consumer struct {
	client      *Client
	queueName   string
	consumerTag string
	log         zerolog.Logger
}

func NewConsumer(client *Client, queueName, consumerTag string, log zerolog.Logger) *Consumer {
	return &Consumer{
		client:      client,
		queueName:   queueName,
		consumerTag: consumerTag,
		log:         log.With().Str("component", "consumer").Str("queue", queueName).Logger(),
	}
}

// ConsumeEvents binds the queue to the routing keys and dispatches each
// delivery to handler. Failed deliveries are re-published up to three times
// and then nacked for the dead-letter setup to deal with.
func (c *Consumer) ConsumeEvents(routingKeys []string, handler EventHandler) error {
	if !c.client.IsConnected() {
		return fmt.Errorf("no connection to RabbitMQ")
	}

	channel := c.client.Channel()

	queue, err := channel.QueueDeclare(
		c.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("queue declare error: %w", err)
	}

	for _, routingKey := range routingKeys {
		err = channel.QueueBind(queue.Name, routingKey, c.client.config.Exchange, false, nil)
		if err != nil {
			return fmt.Errorf("queue bind error (%s): %w", routingKey, err)
		}
		c.log.Info().Str("routing_key", routingKey).Msg("queue bound")
	}

	messages, err := channel.Consume(
		queue.Name,    // queue
		c.consumerTag, // consumer
		false,         // auto-ack: acks are manual
		false,         // exclusive
		false,         // no-local
		false,         // no-wait
		nil,           // args
	)
	if err != nil {
		return fmt.Errorf("consume start error: %w", err)
	}

	c.log.Info().Msg("consuming events")

	go func() {
		for {
			select {
			case msg := <-messages:
				c.handleMessage(msg, handler)
			case <-c.client.ctx.Done():
				c.log.Info().Msg("consumer stopped")
				return
			}
		}
	}()

	return nil
}

func (c *Consumer) handleMessage(msg amqp.Delivery, handler EventHandler) {
	var event events.OrderEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		c.log.Error().Err(err).Msg("event deserialize error")
		msg.Nack(false, false)
		return
	}

	c.log.Info().Str("event_type", string(event.EventType)).Str("service", event.Service).
		Msg("event received")

	if err := handler(event); err != nil {
		c.log.Error().Err(err).Str("event_type", string(event.EventType)).
			Msg("event process error")

		if c.shouldRetry(msg) {
			c.republish(msg, event)
		} else {
			c.log.Warn().Str("event_type", string(event.EventType)).
				Msg("max retries reached, nacking")
			msg.Nack(false, false)
		}
		return
	}

	msg.Ack(false)
}

func (c *Consumer) shouldRetry(msg amqp.Delivery) bool {
	retries, _ := msg.Headers["x-retry-count"].(int32)
	return retries < 3
}

func (c *Consumer) republish(msg amqp.Delivery, event events.OrderEvent) {
	channel := c.client.Channel()

	retries, _ := msg.Headers["x-retry-count"].(int32)
	headers := amqp.Table{}
	for k, v := range msg.Headers {
		headers[k] = v
	}
	headers["x-retry-count"] = retries + 1

	time.Sleep(2 * time.Second)

	err := channel.Publish(
		msg.Exchange,
		msg.RoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  msg.ContentType,
			Body:         msg.Body,
			DeliveryMode: msg.DeliveryMode,
			Headers:      headers,
		},
	)
	if err != nil {
		c.log.Error().Err(err).Msg("retry publish error")
		msg.Nack(false, false)
		return
	}

	msg.Ack(false)
	c.log.Info().Str("event_type", string(event.EventType)).Int32("retry", retries+1).
		Msg("event re-published")
}
