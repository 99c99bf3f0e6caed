package amqp

import (
	"context"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"dailyoffice/internal/log"
)

// publisher is the part of *amqp091.Channel the client needs.
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Client announces finished site builds on a topic exchange.
type Client struct {
	conn         *amqp091.Connection
	channel      publisher
	exchangeName string
	routingKey   string
	timeout      time.Duration
}

func NewClient(url, exchangeName, routingKey string) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	// Declare exchange
	err = channel.ExchangeDeclare(
		exchangeName, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	client := newClient(channel, exchangeName, routingKey)
	client.conn = conn
	return client, nil
}

func newClient(ch publisher, exchangeName, routingKey string) *Client {
	return &Client{
		channel:      ch,
		exchangeName: exchangeName,
		routingKey:   routingKey,
		timeout:      5 * time.Second,
	}
}

// PublishBuildCompleted publishes a build-completed event. Consumers bind
// their own queues to the exchange.
func (c *Client) PublishBuildCompleted(ctx context.Context, msg *BuildCompletedMessage) error {
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err = c.channel.PublishWithContext(
		ctx,
		c.exchangeName, // exchange
		c.routingKey,   // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    msg.BuildID,
			Timestamp:    msg.Timestamp,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	log.FromContext(ctx).WithComponent(log.ComponentAMQP).InfoContext(ctx, "Published build completed message",
		log.FieldOperation, log.OpPublish,
		log.FieldBuildID, msg.BuildID,
		log.FieldYear, msg.Year,
		"exchange", c.exchangeName,
		"routing_key", c.routingKey)

	return nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
