// Package push delivers staff notifications to a RabbitMQ fanout exchange consumed by
// the push gateway, or to the log when no broker is configured.
package push

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"restaurant/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange is the fanout exchange the push gateway binds its queue to.
const Exchange = "staff_notifications"

const publishTimeout = 5 * time.Second

var _ ports.PushSender = (*AMQPSender)(nil)

// AMQPSender publishes notifications as persistent JSON messages. A closed channel or
// connection is reopened on the next Send.
type AMQPSender struct {
	url    string
	logger *slog.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewAMQPSender connects to url and declares the exchange.
func NewAMQPSender(url string, logger *slog.Logger) (*AMQPSender, error) {
	s := &AMQPSender{
		url:    url,
		logger: logger.With("component", "amqp_push_sender", "exchange", Exchange),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.connectLocked(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *AMQPSender) Send(ctx context.Context, notification ports.Notification) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.aliveLocked() {
		s.logger.WarnContext(ctx, "Broker connection lost, reconnecting")
		if err = s.connectLocked(); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return s.ch.PublishWithContext(ctx,
		Exchange, // exchange
		"",       // routing key
		false,    // mandatory
		false,    // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now().UTC(),
		})
}

// Close releases the channel and the connection.
func (s *AMQPSender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ch != nil && !s.ch.IsClosed() {
		if err := s.ch.Close(); err != nil {
			return fmt.Errorf("close rabbitmq channel: %w", err)
		}
	}
	if s.conn != nil && !s.conn.IsClosed() {
		if err := s.conn.Close(); err != nil {
			return fmt.Errorf("close rabbitmq connection: %w", err)
		}
	}
	return nil
}

func (s *AMQPSender) aliveLocked() bool {
	return s.conn != nil && !s.conn.IsClosed() && s.ch != nil && !s.ch.IsClosed()
}

func (s *AMQPSender) connectLocked() error {
	if s.conn == nil || s.conn.IsClosed() {
		conn, err := amqp.Dial(s.url)
		if err != nil {
			return fmt.Errorf("dial rabbitmq: %w", err)
		}
		s.conn = conn
	}

	ch, err := s.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		Exchange, // name
		"fanout", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		_ = ch.Close()
		return fmt.Errorf("declare exchange %s: %w", Exchange, err)
	}

	s.ch = ch
	return nil
}
