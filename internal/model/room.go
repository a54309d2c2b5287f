package model

import "time"

// Room represents a room type within a hotel as stored in the
// `rooms` table. TotalUnits is the number of physical units of this
// room type; it is the capacity the availability ledger enforces per
// night. Rates are stored in currency minor units (cents) so pricing
// arithmetic stays exact.
//
// Fields:
//  ID                  – primary key identifier.
//  HotelID             – owning hotel (weak back-reference for lookup).
//  Name                – display name of the room type.
//  Description         – free-form description.
//  Images              – opaque image paths, stored as a JSON array.
//  RateCents           – nightly base rate per unit, in cents.
//  AdultSurchargeCents – nightly surcharge per additional adult beyond
//                        one per reserved unit, in cents.
//  TotalUnits          – number of physical units of this room type.
//                        Never negative; bookings may not exceed it.
//  MaxAdults           – advisory cap on adults per unit used for
//                        request validation.
//  IsActive            – soft-delete flag; inactive rooms cannot be
//                        booked.
//  CreatedAt           – timestamp of creation.
//  UpdatedAt           – timestamp of last update.
type Room struct {
	ID                  uint64    // rooms.id
	HotelID             uint64    // rooms.hotel_id
	Name                string    // rooms.name
	Description         string    // rooms.description
	Images              []string  // rooms.images (JSON array of paths)
	RateCents           int64     // rooms.rate_cents
	AdultSurchargeCents int64     // rooms.adult_surcharge_cents
	TotalUnits          int       // rooms.total_units
	MaxAdults           int       // rooms.max_adults
	IsActive            bool      // rooms.is_active
	CreatedAt           time.Time // rooms.created_at
	UpdatedAt           time.Time // rooms.updated_at
}
