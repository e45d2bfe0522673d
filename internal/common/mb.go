package common

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

type Exchange string

type Queue string

type BindingKey string

type MessageProducer interface {
	Publish(ctx context.Context, msg []byte, key BindingKey, exchange Exchange) error
}

type MessageConsumer interface {
	Consume(key BindingKey, exchange Exchange, queue Queue) (<-chan amqp.Delivery, error)
}

const (
	UserExchange     Exchange   = "user_exchange"
	UserCreatedQueue Queue      = "user_created_queue"
	UserCreatedKey   BindingKey = "user.created"

	PostExchange     Exchange   = "post_exchange"
	PostCreatedQueue Queue      = "post_created_queue"
	PostCreatedKey   BindingKey = "post.created"
)

// binding is one durable direct exchange with the queue bound to it.
type binding struct {
	exchange Exchange
	queue    Queue
	key      BindingKey
}

// Topology lists every exchange the services publish to.
var Topology = []binding{
	{UserExchange, UserCreatedQueue, UserCreatedKey},
	{PostExchange, PostCreatedQueue, PostCreatedKey},
}

// prefetch bounds the unacked deliveries per consumer; mails are sent one at a time.
const prefetch = 1

type MessageBroker struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewMessageBroker(URI string) (*MessageBroker, error) {
	conn, err := amqp.Dial(URI)
	if err != nil {
		return nil, fmt.Errorf("could not connect to AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("could not open channel: %w", err)
	}

	if err := ch.Qos(prefetch, 0, false); err != nil {
		conn.Close()
		return nil, fmt.Errorf("could not set prefetch: %w", err)
	}

	return &MessageBroker{conn: conn, ch: ch}, nil
}

// Close closes the channel, then the connection.
func (mb *MessageBroker) Close() error {
	if err := mb.ch.Close(); err != nil {
		return err
	}

	return mb.conn.Close()
}

// DeclareTopology declares every exchange, queue and binding in Topology. Declaring is idempotent.
func DeclareTopology(mb *MessageBroker) error {
	for _, b := range Topology {
		if err := mb.declare(b); err != nil {
			return err
		}
	}

	return nil
}

func (mb *MessageBroker) declare(b binding) error {
	err := mb.ch.ExchangeDeclare(string(b.exchange), "direct", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("could not declare exchange %s: %w", b.exchange, err)
	}

	_, err = mb.ch.QueueDeclare(string(b.queue), true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("could not declare queue %s: %w", b.queue, err)
	}

	err = mb.ch.QueueBind(string(b.queue), string(b.key), string(b.exchange), false, nil)
	if err != nil {
		return fmt.Errorf("could not bind queue %s: %w", b.queue, err)
	}

	return nil
}

// Publish sends msg as a persistent JSON message with a fresh message id.
func (mb *MessageBroker) Publish(ctx context.Context, msg []byte, key BindingKey, exchange Exchange) error {
	err := mb.ch.PublishWithContext(ctx, string(exchange), string(key), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now(),
		Body:         msg,
	})
	if err != nil {
		return fmt.Errorf("could not publish to %s: %w", exchange, err)
	}

	return nil
}

// Consume starts a manual-ack consumer on queue, tagged with key.
func (mb *MessageBroker) Consume(key BindingKey, exchange Exchange, queue Queue) (<-chan amqp.Delivery, error) {
	msgs, err := mb.ch.Consume(string(queue), string(key), false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("could not consume from %s: %w", queue, err)
	}

	return msgs, nil
}
