package model

import "time"

// Hotel approval statuses. New hotels start in PENDING and become
// bookable only after an administrator approves them.
const (
	HotelStatusPending  = "PENDING"
	HotelStatusApproved = "APPROVED"
	HotelStatusRejected = "REJECTED"
)

// Hotel represents a row in the `hotels` table. A hotel is owned by
// a single user with the OWNER role and exclusively owns its rooms.
// Deleting a hotel is always a soft delete: IsActive is cleared and
// the rooms below it stop being bookable, but no row is removed.
//
// Fields:
//  ID          – primary key identifier.
//  OwnerID     – user who created and manages the hotel.
//  Name        – display name.
//  Description – free-form description.
//  City        – city used for public browsing.
//  Address     – street address.
//  Images      – opaque image path identifiers managed by an external
//                upload collaborator, stored as a JSON array.
//  Status      – approval status (PENDING, APPROVED, REJECTED).
//  IsActive    – soft-delete flag; false hides the hotel and makes
//                all of its rooms unbookable.
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type Hotel struct {
	ID          uint64    // hotels.id
	OwnerID     uint64    // hotels.owner_id
	Name        string    // hotels.name
	Description string    // hotels.description
	City        string    // hotels.city
	Address     string    // hotels.address
	Images      []string  // hotels.images (JSON array of paths)
	Status      string    // hotels.status
	IsActive    bool      // hotels.is_active
	CreatedAt   time.Time // hotels.created_at
	UpdatedAt   time.Time // hotels.updated_at
}
