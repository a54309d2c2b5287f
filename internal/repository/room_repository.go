package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/openstay/hotel-room-booking/internal/model"
)

// RoomRepo encapsulates database queries for rooms. A room is always
// created under a hotel and inherits its bookability from it: a room
// can only be booked while it is active and its hotel is active and
// approved. Ownership checks go through the owning hotel.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the provided DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

const roomColumns = "id, hotel_id, name, description, images, rate_cents, adult_surcharge_cents, total_units, max_adults, is_active, created_at, updated_at"

func scanRoom(row interface {
	Scan(dest ...interface{}) error
}) (*model.Room, error) {
	var rm model.Room
	var images string
	if err := row.Scan(&rm.ID, &rm.HotelID, &rm.Name, &rm.Description, &images,
		&rm.RateCents, &rm.AdultSurchargeCents, &rm.TotalUnits, &rm.MaxAdults,
		&rm.IsActive, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
		return nil, err
	}
	rm.Images = decodeImages(images)
	return &rm, nil
}

// hotelOwner returns the owner of the hotel a room belongs to by
// joining through the rooms table. ErrRoomNotFound when the room does
// not exist.
func (r *RoomRepo) hotelOwner(ctx context.Context, roomID uint64) (uint64, error) {
	const q = `SELECT h.owner_id FROM rooms rm JOIN hotels h ON h.id = rm.hotel_id WHERE rm.id = ?`
	var ownerID uint64
	err := r.db.QueryRowContext(ctx, q, roomID).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrRoomNotFound
	}
	return ownerID, err
}

// OwnerOf exposes the owning hotel's owner id for a room. The booking
// handlers use it to let hotel owners cancel bookings on their rooms.
func (r *RoomRepo) OwnerOf(ctx context.Context, roomID uint64) (uint64, error) {
	return r.hotelOwner(ctx, roomID)
}

func (r *RoomRepo) authorize(ctx context.Context, roomID, callerID uint64, admin bool) error {
	ownerID, err := r.hotelOwner(ctx, roomID)
	if err != nil {
		return err
	}
	if !admin && ownerID != callerID {
		return ErrForbidden
	}
	return nil
}

// Create inserts a new room under a hotel. The caller must own the
// hotel unless admin. TotalUnits must already be validated as
// positive by the handler. On success the record is fully populated.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room, callerID uint64, admin bool) error {
	var ownerID uint64
	err := r.db.QueryRowContext(ctx, "SELECT owner_id FROM hotels WHERE id = ?", rm.HotelID).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrHotelNotFound
	}
	if err != nil {
		return err
	}
	if !admin && ownerID != callerID {
		return ErrForbidden
	}
	images, err := encodeImages(rm.Images)
	if err != nil {
		return err
	}
	const qInsert = `INSERT INTO rooms (hotel_id, name, description, images, rate_cents, adult_surcharge_cents, total_units, max_adults, is_active)
	                 VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1)`
	res, err := r.db.ExecContext(ctx, qInsert,
		rm.HotelID, rm.Name, rm.Description, images, rm.RateCents, rm.AdultSurchargeCents, rm.TotalUnits, rm.MaxAdults)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rm.ID = uint64(id)
	got, err := r.GetByID(ctx, rm.ID)
	if err != nil {
		return err
	}
	*rm = *got
	return nil
}

// GetByID fetches a room by id regardless of status. It returns
// ErrRoomNotFound when no row exists.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = "SELECT " + roomColumns + " FROM rooms WHERE id = ?"
	rm, err := scanRoom(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return rm, nil
}

// ListByHotel returns the rooms of a hotel ordered by id. When
// activeOnly is set, deactivated rooms are filtered out; owners pass
// false to see their full inventory.
func (r *RoomRepo) ListByHotel(ctx context.Context, hotelID uint64, activeOnly bool) ([]*model.Room, error) {
	q := "SELECT " + roomColumns + " FROM rooms WHERE hotel_id = ?"
	if activeOnly {
		q += " AND is_active = 1"
	}
	q += " ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Room, 0)
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListBookable returns all rooms currently open for booking: active
// rooms under active, approved hotels. Used by the public listing.
func (r *RoomRepo) ListBookable(ctx context.Context) ([]*model.Room, error) {
	const q = `SELECT rm.id, rm.hotel_id, rm.name, rm.description, rm.images, rm.rate_cents,
	                  rm.adult_surcharge_cents, rm.total_units, rm.max_adults, rm.is_active,
	                  rm.created_at, rm.updated_at
	           FROM rooms rm
	           JOIN hotels h ON h.id = rm.hotel_id
	           WHERE rm.is_active = 1 AND h.is_active = 1 AND h.status = ?
	           ORDER BY rm.id`
	rows, err := r.db.QueryContext(ctx, q, model.HotelStatusApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Room, 0)
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites the mutable fields of a room. Rates and unit counts
// are included: existing bookings are unaffected because their price
// breakdown was snapshotted at creation.
func (r *RoomRepo) Update(ctx context.Context, rm *model.Room, callerID uint64, admin bool) error {
	if err := r.authorize(ctx, rm.ID, callerID, admin); err != nil {
		return err
	}
	images, err := encodeImages(rm.Images)
	if err != nil {
		return err
	}
	const q = `UPDATE rooms
	           SET name = ?, description = ?, images = ?, rate_cents = ?, adult_surcharge_cents = ?,
	               total_units = ?, max_adults = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, rm.Name, rm.Description, images,
		rm.RateCents, rm.AdultSurchargeCents, rm.TotalUnits, rm.MaxAdults, rm.ID); err != nil {
		return err
	}
	got, err := r.GetByID(ctx, rm.ID)
	if err != nil {
		return err
	}
	*rm = *got
	return nil
}

// SetActive toggles a room's active flag. Deactivation makes the room
// unbookable without touching existing bookings.
func (r *RoomRepo) SetActive(ctx context.Context, roomID uint64, active bool, callerID uint64, admin bool) (*model.Room, error) {
	if err := r.authorize(ctx, roomID, callerID, admin); err != nil {
		return nil, err
	}
	const q = "UPDATE rooms SET is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, q, active, roomID); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, roomID)
}

// SoftDelete deactivates a room. Rooms are never hard-deleted because
// bookings reference them.
func (r *RoomRepo) SoftDelete(ctx context.Context, roomID, callerID uint64, admin bool) error {
	_, err := r.SetActive(ctx, roomID, false, callerID, admin)
	return err
}

// GetBookableForUpdateTx loads a room inside the given transaction
// and locks its row with SELECT ... FOR UPDATE. The row lock is the
// per-room mutual-exclusion scope for the check-availability-then-
// insert sequence: two concurrent booking attempts on the same room
// serialize here, while bookings on different rooms proceed in
// parallel. It returns ErrRoomNotFound when the room does not exist
// and ErrRoomNotBookable when the room or its hotel is deactivated or
// the hotel is not approved.
func (r *RoomRepo) GetBookableForUpdateTx(ctx context.Context, tx *sql.Tx, roomID uint64) (*model.Room, error) {
	const q = "SELECT " + roomColumns + " FROM rooms WHERE id = ? FOR UPDATE"
	rm, err := scanRoom(tx.QueryRowContext(ctx, q, roomID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !rm.IsActive {
		return nil, ErrRoomNotBookable
	}
	var hotelStatus string
	var hotelActive bool
	err = tx.QueryRowContext(ctx, "SELECT status, is_active FROM hotels WHERE id = ?", rm.HotelID).
		Scan(&hotelStatus, &hotelActive)
	if err != nil {
		return nil, err
	}
	if !hotelActive || hotelStatus != model.HotelStatusApproved {
		return nil, ErrRoomNotBookable
	}
	return rm, nil
}
