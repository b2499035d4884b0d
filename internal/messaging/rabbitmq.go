package messaging

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
)

// Client owns one connection and one channel to RabbitMQ, declares the orders
// topic exchange, and reconnects when the broker drops the connection.
type Client struct {
	config     *RabbitMQConfig
	log        zerolog.Logger
	connection *amqp.Connection
	channel    *amqp.Channel
	mu         sync.RWMutex
	isClosing  bool
	ctx        context.Context
	cancel     context.CancelFunc
}

func NewClient(config *RabbitMQConfig, log zerolog.Logger) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		config: config,
		log:    log.With().Str("component", "rabbitmq").Logger(),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	for i := 0; i < c.config.RetryCount; i++ {
		c.connection, err = amqp.Dial(c.config.ConnectionURL())
		if err != nil {
			c.log.Warn().Err(err).Int("attempt", i+1).Int("max", c.config.RetryCount).
				Msg("rabbitmq connection failed")
			if i < c.config.RetryCount-1 {
				time.Sleep(c.config.RetryDelay)
				continue
			}
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}

		c.channel, err = c.connection.Channel()
		if err != nil {
			c.connection.Close()
			return fmt.Errorf("failed to open channel: %w", err)
		}

		err = c.channel.ExchangeDeclare(
			c.config.Exchange, // name
			"topic",           // type
			true,              // durable
			false,             // auto-deleted
			false,             // internal
			false,             // no-wait
			nil,               // arguments
		)
		if err != nil {
			c.channel.Close()
			c.connection.Close()
			return fmt.Errorf("failed to declare exchange: %w", err)
		}

		c.log.Info().Str("host", c.config.Host).Str("exchange", c.config.Exchange).
			Msg("connected to rabbitmq")

		go c.watchConnection()
		return nil
	}

	return err
}

func (c *Client) watchConnection() {
	notifyClose := make(chan *amqp.Error)
	c.connection.NotifyClose(notifyClose)

	select {
	case err := <-notifyClose:
		if c.isClosing {
			return
		}
		c.log.Warn().Err(err).Msg("rabbitmq connection lost, reconnecting")
		time.Sleep(time.Second * 2)
		if reconnectErr := c.Connect(); reconnectErr != nil {
			c.log.Error().Err(reconnectErr).Msg("rabbitmq reconnect failed")
		}
	case <-c.ctx.Done():
	}
}

func (c *Client) Channel() *amqp.Channel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.channel
}

func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connection != nil && !c.connection.IsClosed()
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isClosing {
		return nil
	}
	c.isClosing = true
	c.cancel()

	var closeErr error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			closeErr = fmt.Errorf("channel close error: %w", err)
		}
	}
	if c.connection != nil {
		if err := c.connection.Close(); err != nil {
			if closeErr != nil {
				closeErr = fmt.Errorf("%v; connection close error: %w", closeErr, err)
			} else {
				closeErr = fmt.Errorf("connection close error: %w", err)
			}
		}
	}

	if closeErr == nil {
		c.log.Info().Msg("rabbitmq connection closed")
	}
	return closeErr
}
