// Package queue defines message payloads exchanged over the message broker
// together with the publisher used by the bookings service and the
// consumer run by the reviews service.
package queue

import (
	"time"

	"github.com/smartmeet/room-booking/internal/model"
)

// BookingQueueName is the durable queue carrying booking-created events.
// Publisher and consumer must declare it with identical flags; the broker
// rejects a mismatched redeclaration.
const BookingQueueName = "booking_created"

// BookingCreatedSchemaVersion is stamped into every published event so
// consumers can tell payload generations apart if the shape ever changes.
const BookingCreatedSchemaVersion = 1

// BookingCreatedEvent is published once per successfully created booking.
// It is an immutable snapshot of the booking at creation time: enough for
// downstream consumers to log, notify, or build derived state without
// querying the bookings service. Timestamps serialize as ISO-8601.
type BookingCreatedEvent struct {
	SchemaVersion int       `json:"schema_version"`
	ID            uint64    `json:"id"`
	RoomID        uint64    `json:"room_id"`
	Username      string    `json:"username"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Purpose       *string   `json:"purpose"`
	Status        string    `json:"status"`
}

// NewBookingCreatedEvent snapshots a stored booking into an event carrying
// the current schema version.
func NewBookingCreatedEvent(b model.Booking) BookingCreatedEvent {
	return BookingCreatedEvent{
		SchemaVersion: BookingCreatedSchemaVersion,
		ID:            b.ID,
		RoomID:        b.RoomID,
		Username:      b.Username,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Purpose:       b.Purpose,
		Status:        b.Status,
	}
}
