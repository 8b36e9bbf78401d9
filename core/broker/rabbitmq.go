// Package broker publishes domain events to RabbitMQ.
package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"sparkle-booking/core/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends a JSON payload to a durable queue.
type Publisher interface {
	Publish(ctx context.Context, queue string, payload any) error
}

type RabbitPublisher struct {
	url  string
	mu   sync.Mutex
	conn *amqp.Connection
}

func NewRabbitPublisher(url string) *RabbitPublisher {
	return &RabbitPublisher{url: url}
}

func (p *RabbitPublisher) connection() (*amqp.Connection, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn != nil && !p.conn.IsClosed() {
		return p.conn, nil
	}
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}
	p.conn = conn
	return conn, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, queue string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	conn, err := p.connection()
	if err != nil {
		logger.Error("Broker:Publish:Dial:Error", "queue", queue, "error", err)
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("Broker:Publish:Channel:Error", "queue", queue, "error", err)
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// durable, not auto-deleted, not exclusive
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		logger.Error("Broker:Publish:QueueDeclare:Error", "queue", queue, "error", err)
		return fmt.Errorf("declare queue: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		logger.Error("Broker:Publish:Error", "queue", queue, "error", err)
		return fmt.Errorf("publish: %w", err)
	}

	logger.Info("Broker:Publish:Success", "queue", queue, "bytes", len(body))
	return nil
}

func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil || p.conn.IsClosed() {
		return nil
	}
	return p.conn.Close()
}

// NopPublisher is used when no broker URL is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(_ context.Context, queue string, _ any) error {
	logger.Debug("Broker:Publish:Disabled", "queue", queue)
	return nil
}
