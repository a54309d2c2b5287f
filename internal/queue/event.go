// Package queue defines message payloads exchanged over the message
// broker and the background consumer that turns them into an audit
// log.
package queue

// BookingStatusEvent is published after a booking transition commits
// (confirmed or cancelled). It carries enough denormalized context
// for downstream consumers to log or notify without querying the
// primary database.
type BookingStatusEvent struct {
	BookingID  uint64 `json:"booking_id"`
	UserID     uint64 `json:"user_id"`
	RoomID     uint64 `json:"room_id"`
	HotelID    uint64 `json:"hotel_id"`
	HotelName  string `json:"hotel_name"`
	RoomName   string `json:"room_name"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	UnitCount  int    `json:"unit_count"`
	AdultCount int    `json:"adult_count"`
	TotalCents int64  `json:"total_cents"`
	Status     string `json:"status"`
	OccurredAt string `json:"occurred_at"`
}
