package model

import (
	"strings"
	"time"
)

// BookingStatus is the closed set of states a booking moves through.
// The only legal transitions are PENDING→CONFIRMED, PENDING→CANCELLED
// and CONFIRMED→CANCELLED. Nothing ever leaves CANCELLED.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// ParseBookingStatus normalizes a client-supplied status string into a
// BookingStatus. It returns false for anything outside the closed set.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case BookingPending:
		return BookingPending, true
	case BookingConfirmed:
		return BookingConfirmed, true
	case BookingCancelled:
		return BookingCancelled, true
	}
	return "", false
}

// CanTransition reports whether a booking in status s may move to the
// target status. Self-transitions are rejected, so cancelling an
// already-cancelled booking surfaces an invalid-transition error to
// the caller instead of silently releasing inventory a second time.
func (s BookingStatus) CanTransition(to BookingStatus) bool {
	switch s {
	case BookingPending:
		return to == BookingConfirmed || to == BookingCancelled
	case BookingConfirmed:
		return to == BookingCancelled
	}
	return false
}

// HoldsInventory reports whether a booking in this status occupies
// room-nights in the availability ledger. Both PENDING and CONFIRMED
// hold inventory; a pending booking reserves units pessimistically so
// two concurrent requests cannot both win the last unit.
func (s BookingStatus) HoldsInventory() bool {
	return s == BookingPending || s == BookingConfirmed
}

// Booking records a customer's reservation of one or more units of a
// room type over a half-open date interval [CheckIn, CheckOut): the
// check-out date itself is not occupied. The price breakdown is
// computed once at creation and is immutable afterwards; edits are
// modeled as cancel-and-recreate.
//
// Fields:
//  ID                  – primary key identifier.
//  RoomID              – room type being reserved (reference, not owned).
//  UserID              – customer who created the booking.
//  CheckIn             – first occupied night (UTC date).
//  CheckOut            – exclusive end of the stay (UTC date).
//  UnitCount           – number of physical units reserved, >= 1.
//  AdultCount          – number of adults; may be below UnitCount.
//  Nights              – number of nights, snapshot at creation.
//  BaseCents           – nights × rate × units, snapshot at creation.
//  AdultSurchargeCents – surcharge for adults beyond one per unit.
//  TotalCents          – BaseCents + AdultSurchargeCents.
//  Status              – lifecycle state, see BookingStatus.
//  Note                – optional free-form note from the customer.
//  CreatedAt           – creation timestamp.
//  UpdatedAt           – last update timestamp.
type Booking struct {
	ID                  uint64        // bookings.id
	RoomID              uint64        // bookings.room_id
	UserID              uint64        // bookings.user_id
	CheckIn             time.Time     // bookings.check_in
	CheckOut            time.Time     // bookings.check_out
	UnitCount           int           // bookings.unit_count
	AdultCount          int           // bookings.adult_count
	Nights              int           // bookings.nights
	BaseCents           int64         // bookings.base_cents
	AdultSurchargeCents int64         // bookings.adult_surcharge_cents
	TotalCents          int64         // bookings.total_cents
	Status              BookingStatus // bookings.status
	Note                string        // bookings.note
	CreatedAt           time.Time     // bookings.created_at
	UpdatedAt           time.Time     // bookings.updated_at
}
