package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jake-esse/ai-broker/internal/core/ports"
)

// EmailQueue publishes rendered outbound emails onto a durable RabbitMQ
// queue, implementing ports.EmailPublisher.
type EmailQueue struct {
	conn  *amqp.Connection
	chn   *amqp.Channel
	queue string
}

// NewEmailQueue connects to RabbitMQ and declares the durable email queue.
func NewEmailQueue(url, queue string) (*EmailQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	chn, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	_, err = chn.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = chn.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq declare %q: %w", queue, err)
	}

	return &EmailQueue{conn: conn, chn: chn, queue: queue}, nil
}

// PublishEmail enqueues one email job as persistent JSON.
func (q *EmailQueue) PublishEmail(ctx context.Context, email ports.OutboundEmail) error {
	body, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("email publish: marshal: %w", err)
	}

	err = q.chn.PublishWithContext(
		ctx,
		"",      // exchange
		q.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("email publish: %w", err)
	}
	return nil
}

// Close tears down the channel and connection.
func (q *EmailQueue) Close() error {
	if err := q.chn.Close(); err != nil {
		return err
	}
	return q.conn.Close()
}
