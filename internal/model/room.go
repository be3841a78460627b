package model

// Room represents a bookable meeting room as stored in the `rooms` table
// (or its in-memory equivalent).
//
// Fields:
//
//	ID       – primary key identifier.
//	Name     – human-readable room name.
//	Location – building/floor description.
//	Capacity – maximum number of attendees.
type Room struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Capacity int    `json:"capacity"`
}
