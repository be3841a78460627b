package model

import "time"

// Review is a user's rating of a room, linked to the booking during which
// the room was used.  Only the author may update or delete a review.
//
// Fields:
//
//	ID        – primary key identifier.
//	RoomID    – room being reviewed.
//	Username  – author of the review.
//	Rating    – integer rating, 1 to 5 inclusive.
//	Comment   – optional free text, at most 500 characters (nullable).
//	BookingID – booking this review refers to.
//	CreatedAt – UTC timestamp of creation.
type Review struct {
	ID        uint64
	RoomID    uint64
	Username  string
	Rating    int
	Comment   *string
	BookingID uint64
	CreatedAt time.Time
}
