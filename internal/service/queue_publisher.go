// Package queue_publisher publishes booking events to RabbitMQ.  Errors are
// logged and returned so callers can ignore failures without interrupting
// the request that caused the event.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/iliyamo/hotel-booking-gateway/internal/queue"
)

// Publisher sends events to the broker at URL.  It dials per publish:
// status changes are rare next to reads, and a dropped connection never
// outlives one message.
type Publisher struct {
	URL string
}

// New returns a Publisher.  An empty url yields a Publisher that drops
// every event.
func New(url string) *Publisher { return &Publisher{URL: url} }

// Enabled reports whether events leave the process.
func (p *Publisher) Enabled() bool { return p != nil && p.URL != "" }

// PublishStatusChanged publishes ev to the booking.status_changed queue.
// Messages are marked as persistent.
func (p *Publisher) PublishStatusChanged(ctx context.Context, ev q.BookingStatusChangedEvent) error {
	if !p.Enabled() {
		return nil
	}
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		q.StatusChangedQueue, // name
		true,                 // durable
		false,                // autoDelete
		false,                // exclusive
		false,                // noWait
		nil,                  // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.EventID,
		Type:         q.StatusChangedQueue,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", q.StatusChangedQueue, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
