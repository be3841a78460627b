package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/smartmeet/room-booking/internal/config"
)

// Publisher abstracts event publication so the booking handler can be
// tested without a broker. Publishing is best-effort: the handler logs a
// returned error and carries on, never failing the HTTP request over it.
type Publisher interface {
	PublishBookingCreated(ctx context.Context, event BookingCreatedEvent) error
}

// AMQPPublisher publishes booking-created events to RabbitMQ. Each publish
// opens a short-lived connection, bounded by the configured connect
// timeout so a hung broker cannot stall the request path indefinitely.
type AMQPPublisher struct {
	cfg config.QueueConfig
}

func NewAMQPPublisher(cfg config.QueueConfig) *AMQPPublisher {
	return &AMQPPublisher{cfg: cfg}
}

// PublishBookingCreated declares the booking_created queue (idempotent,
// durable) and publishes the event marked persistent so it survives a
// broker restart. The function never panics; any error is logged and
// returned so the caller can choose to ignore it.
func (p *AMQPPublisher) PublishBookingCreated(ctx context.Context, event BookingCreatedEvent) error {
	conn, err := amqp.DialConfig(p.cfg.URL, amqp.Config{
		Dial: amqp.DefaultDial(p.cfg.ConnectTimeout),
	})
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

	if _, err := declareBookingQueue(ch); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	pctx, cancel := context.WithTimeout(ctx, p.cfg.ConnectTimeout)
	defer cancel()

	if err := ch.PublishWithContext(pctx,
		"",               // default exchange
		BookingQueueName, // routing key = queue name
		false,            // mandatory
		false,            // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}

	return nil
}

// declareBookingQueue declares booking_created with the flags shared by
// publisher and consumer: durable, not auto-deleted, not exclusive.
func declareBookingQueue(ch *amqp.Channel) (amqp.Queue, error) {
	return ch.QueueDeclare(
		BookingQueueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
}
