package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	publishTimeout = 5 * time.Second
	// confirmBuffer holds confirms that arrive after their Publish gave up.
	confirmBuffer = 64
)

// RabbitMQPublisher sends domain events to a durable topic exchange. The
// routing key is the event name so consumers can bind on e.g. "kot:*".
type RabbitMQPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string

	acks <-chan amqp.Confirmation
	mu   sync.Mutex // one publish awaits its confirm at a time
}

// NewRabbitMQPublisher dials the broker, declares the exchange and enables
// publisher confirms.
func NewRabbitMQPublisher(url, exchange string) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to enable publisher confirms: %w", err)
	}
	acks := ch.NotifyPublish(make(chan amqp.Confirmation, confirmBuffer))

	return &RabbitMQPublisher{conn: conn, ch: ch, exchange: exchange, acks: acks}, nil
}

// Publish sends the event and waits for the broker's confirm.
func (p *RabbitMQPublisher) Publish(ctx context.Context, event domain.Event) error {
	msg, err := newPublishing(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() {
		return errors.New("rabbitmq connection is closed")
	}

	tag := p.ch.GetNextPublishSeqNo()
	if err := p.ch.PublishWithContext(ctx, p.exchange, string(event.Name), false, false, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Name, err)
	}

	acked, err := awaitConfirm(ctx, p.acks, tag)
	if err != nil {
		return fmt.Errorf("no confirm for %s: %w", event.Name, err)
	}
	if !acked {
		return fmt.Errorf("broker rejected %s", event.Name)
	}
	return nil
}

// awaitConfirm waits for the confirm carrying tag. Confirms with a lower tag
// belong to publishes that already timed out and are dropped.
func awaitConfirm(ctx context.Context, acks <-chan amqp.Confirmation, tag uint64) (bool, error) {
	for {
		select {
		case conf, ok := <-acks:
			if !ok {
				return false, errors.New("confirm channel closed")
			}
			if conf.DeliveryTag < tag {
				continue
			}
			if conf.DeliveryTag > tag {
				return false, fmt.Errorf("confirm %d arrived while waiting for %d", conf.DeliveryTag, tag)
			}
			return conf.Ack, nil
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
}

// Close closes the channel and the connection.
func (p *RabbitMQPublisher) Close() error {
	var errs []error
	if p.ch != nil {
		errs = append(errs, p.ch.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}

func newPublishing(event domain.Event) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to encode %s event: %w", event.Name, err)
	}
	return amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    event.OccurredAt,
		MessageId:    event.EntityID,
		Type:         string(event.Name),
		Headers:      amqp.Table{"hotel_id": event.HotelID},
		Body:         body,
	}, nil
}
