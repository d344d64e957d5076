package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hilthontt/chatrelay/internal/infrastructure/contracts"
	"github.com/hilthontt/chatrelay/internal/infrastructure/logging"
	amqp "github.com/rabbitmq/amqp091-go"
)

const DeadLetterExchange = "dlx"

type MessageHandler func(ctx context.Context, msg amqp.Delivery) error

type RabbitMQ struct {
	conn     *amqp.Connection
	Channel  *amqp.Channel
	exchange string
	logger   logging.Logger
}

// NewRabbitMQ connects and declares the topic exchange that lifecycle events
// are published to, plus the dead letter exchange and queue.
func NewRabbitMQ(uri, exchange string, logger logging.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	rmq := &RabbitMQ{
		conn:     conn,
		Channel:  ch,
		exchange: exchange,
		logger:   logger,
	}

	if err := rmq.setupExchanges(); err != nil {
		rmq.Close()
		return nil, err
	}

	return rmq, nil
}

func (r *RabbitMQ) setupExchanges() error {
	if err := r.Channel.ExchangeDeclare(
		r.exchange, // name
		"topic",    // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", r.exchange, err)
	}

	if err := r.Channel.ExchangeDeclare(DeadLetterExchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare dead letter exchange: %w", err)
	}

	q, err := r.Channel.QueueDeclare(DeadLetterQueue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare dead letter queue: %w", err)
	}

	if err := r.Channel.QueueBind(q.Name, "", DeadLetterExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind dead letter queue: %w", err)
	}

	return nil
}

func (r *RabbitMQ) Close() {
	if r.Channel != nil {
		r.Channel.Close()
	}
	if r.conn != nil {
		r.conn.Close()
	}
}

func (r *RabbitMQ) PublishMessage(ctx context.Context, routingKey string, message contracts.AmqpMessage) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	return r.Channel.PublishWithContext(ctx,
		r.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

// DeclareAndBindQueue declares a durable queue that dead-letters rejected
// deliveries and binds it to each routing key on the events exchange.
func (r *RabbitMQ) DeclareAndBindQueue(queueName string, routingKeys []string) error {
	args := amqp.Table{
		"x-dead-letter-exchange": DeadLetterExchange,
	}

	q, err := r.Channel.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		args,      // arguments with DLX config
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queueName, err)
	}

	for _, key := range routingKeys {
		if err := r.Channel.QueueBind(q.Name, key, r.exchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue to %s: %w", queueName, err)
		}
	}

	return nil
}

// ConsumeMessages delivers messages from queueName to handler until ctx is
// done. A handler error rejects the delivery to the dead letter exchange.
func (r *RabbitMQ) ConsumeMessages(ctx context.Context, queueName string, handler MessageHandler) error {
	if err := r.Channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := r.Channel.ConsumeWithContext(ctx,
		queueName, // queue
		"",        // consumer
		false,     // auto-ack
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to consume from %s: %w", queueName, err)
	}

	go func() {
		for msg := range msgs {
			if err := handler(ctx, msg); err != nil {
				r.logger.Error(logging.RabbitMQ, logging.Consume, "failed to handle message", map[logging.ExtraKey]any{
					logging.ErrorMessage: err.Error(),
					"queue":              queueName,
					"routing_key":        msg.RoutingKey,
				})
				_ = msg.Nack(false, false)
				continue
			}
			_ = msg.Ack(false)
		}
	}()

	return nil
}
