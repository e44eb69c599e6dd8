// Package messaging publishes domain events to RabbitMQ.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mandoubi/internal/core/domain"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitPublisher opens a short-lived connection per publish.
// Status changes are rare, so no connection is held between calls.
type RabbitPublisher struct {
	url   string
	queue string
}

// NewRabbitPublisher creates a publisher for queue at url
func NewRabbitPublisher(url, queue string) *RabbitPublisher {
	return &RabbitPublisher{url: url, queue: queue}
}

// PublishStatusChanged sends the event as a persistent JSON message
func (p *RabbitPublisher) PublishStatusChanged(ctx context.Context, event domain.RequestStatusChanged) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("rabbitmq: marshal event: %w", err)
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq: dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq: open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		p.queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		return fmt.Errorf("rabbitmq: declare %s: %w", p.queue, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.RequestID + ":" + string(event.To),
		Timestamp:    time.Now().UTC(),
		Type:         "request.status_changed",
		Body:         body,
	}

	// default exchange, routing key = queue name
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return fmt.Errorf("rabbitmq: publish: %w", err)
	}
	return nil
}
