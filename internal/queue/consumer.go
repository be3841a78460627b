// This file contains the background consumer run by the reviews service.
// It listens to the booking_created queue and hands every event to a
// domain action, acknowledging each message only after the action
// succeeds (at-least-once delivery).
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/smartmeet/room-booking/internal/config"
)

// EventHandler is the domain action invoked for every consumed event. A
// returned error rejects the message without requeueing it, so a payload
// that can never be processed does not loop forever.
type EventHandler func(event BookingCreatedEvent) error

const (
	initialBackoff = time.Second
	maxBackoff     = 30 * time.Second
)

// StartBookingConsumer connects to RabbitMQ, declares the booking_created
// queue (durable, same flags as the publisher), and consumes messages with
// a prefetch of one: each message is fully processed and acknowledged
// before the broker delivers the next. The function runs a supervised
// reconnect loop with exponential backoff, so a broker outage at startup
// or a dropped connection mid-loop never leaves the service permanently
// deaf to new events. It returns only when ctx is cancelled.
func StartBookingConsumer(ctx context.Context, cfg config.QueueConfig, handle EventHandler) error {
	backoff := initialBackoff
	for {
		conn, err := amqp.DialConfig(cfg.URL, amqp.Config{
			Dial: amqp.DefaultDial(cfg.ConnectTimeout),
		})
		if err != nil {
			log.Printf("booking-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			if err := sleepCtx(ctx, backoff); err != nil {
				return err
			}
			backoff = nextBackoff(backoff)
			continue
		}
		backoff = initialBackoff // reset after successful connect

		err = consumeLoop(ctx, conn, handle)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("booking-consumer: consume loop ended: %v; reconnecting", err)
		if err := sleepCtx(ctx, 2*time.Second); err != nil {
			return err
		}
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, handle EventHandler) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// One unacknowledged message in flight: simple backpressure and
	// in-order processing per consumer connection.
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}

	if _, err := declareBookingQueue(ch); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(BookingQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := handleDelivery(d.Body, handle); err != nil {
				log.Printf("booking-consumer: handle message failed: %v", err)
				_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// handleDelivery decodes one delivery body and runs the domain action.
// The message is acknowledged by the caller only when this returns nil.
func handleDelivery(body []byte, handle EventHandler) error {
	var ev BookingCreatedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	return handle(ev)
}

func nextBackoff(d time.Duration) time.Duration {
	d *= 2
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// LogBookingReceipt is the reviews service's domain action: it appends a
// single human-friendly line per received event to logs/booking_events.log.
// Extendable to derived-state updates without touching the consumer loop.
func LogBookingReceipt(ev BookingCreatedEvent) error {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	fpath := filepath.Join("logs", "booking_events.log")
	f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	purpose := ""
	if ev.Purpose != nil {
		purpose = *ev.Purpose
	}

	line := fmt.Sprintf("[%s] Booking created | booking_id=%d | room_id=%d | user=%q | start=%s | end=%s | purpose=%q | status=%s\n",
		time.Now().UTC().Format(time.RFC3339), ev.ID, ev.RoomID, ev.Username,
		ev.StartTime.Format(time.RFC3339), ev.EndTime.Format(time.RFC3339), purpose, ev.Status)

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
