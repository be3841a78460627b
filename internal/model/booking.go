package model

import "time"

// Booking statuses.  Creation always yields a confirmed booking; there is
// no pending state in this system.
const BookingStatusConfirmed = "confirmed"

// Booking records a room reservation for a time interval.  EndTime is
// strictly after StartTime; handlers enforce the invariant before any
// record reaches a repository.
//
// Fields:
//
//	ID        – primary key identifier.
//	RoomID    – room being booked.
//	Username  – user who made the booking.
//	StartTime – start of the interval (UTC).
//	EndTime   – end of the interval (UTC), strictly after StartTime.
//	Purpose   – optional free-text meeting purpose (nullable).
//	Status    – booking state, currently always "confirmed".
type Booking struct {
	ID        uint64
	RoomID    uint64
	Username  string
	StartTime time.Time
	EndTime   time.Time
	Purpose   *string
	Status    string
}
