// Package service holds side effects triggered by accepted bookings.
// Publishing is best effort: errors are logged and returned so callers can
// ignore them without failing the request.
package service

import (
    "context"
    "encoding/json"
    "fmt"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    "github.com/iliyamo/cinema-showtimes/internal/logger"
    "github.com/iliyamo/cinema-showtimes/internal/queue"
)

// BookingPublisher announces accepted bookings.
type BookingPublisher interface {
    PublishBookingAccepted(ctx context.Context, ev queue.BookingAcceptedEvent) error
}

// AMQPPublisher publishes to a durable RabbitMQ queue, one connection per
// message.
type AMQPPublisher struct {
    URL   string
    Queue string
}

func (p AMQPPublisher) PublishBookingAccepted(ctx context.Context, ev queue.BookingAcceptedEvent) error {
    conn, err := amqp.Dial(p.URL)
    if err != nil {
        logger.Warn("rabbitmq: dial failed", "err", err)
        return fmt.Errorf("dial: %w", err)
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        logger.Warn("rabbitmq: channel open failed", "err", err)
        return fmt.Errorf("channel: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if _, err := ch.QueueDeclare(p.Queue, true, false, false, false, nil); err != nil {
        logger.Warn("rabbitmq: queue declare failed", "queue", p.Queue, "err", err)
        return fmt.Errorf("queue declare: %w", err)
    }

    body, err := json.Marshal(ev)
    if err != nil {
        return fmt.Errorf("marshal event: %w", err)
    }
    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        MessageId:    ev.Reference,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    // default exchange, routing key = queue name
    if err := ch.PublishWithContext(ctx, "", p.Queue, false, false, pub); err != nil {
        logger.Warn("rabbitmq: publish failed", "err", err)
        return fmt.Errorf("publish: %w", err)
    }
    return nil
}

// NopPublisher drops events; used when the broker is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishBookingAccepted(context.Context, queue.BookingAcceptedEvent) error {
    return nil
}
