package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/openstay/hotel-room-booking/internal/model"
)

// HotelRepo encapsulates all database queries related to hotels. A
// hotel belongs to a single owner; ownership checks are enforced here
// so handlers only need to decide whether the caller is an admin
// (admins bypass ownership).
type HotelRepo struct {
	db *sql.DB
}

// NewHotelRepo constructs a HotelRepo with the provided DB handle.
func NewHotelRepo(db *sql.DB) *HotelRepo {
	return &HotelRepo{db: db}
}

const hotelColumns = "id, owner_id, name, description, city, address, images, status, is_active, created_at, updated_at"

func scanHotel(row interface {
	Scan(dest ...interface{}) error
}) (*model.Hotel, error) {
	var h model.Hotel
	var images string
	if err := row.Scan(&h.ID, &h.OwnerID, &h.Name, &h.Description, &h.City, &h.Address,
		&images, &h.Status, &h.IsActive, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return nil, err
	}
	h.Images = decodeImages(images)
	return &h, nil
}

// Create inserts a new hotel in PENDING status. On success the ID and
// timestamp fields of the provided record are populated.
func (r *HotelRepo) Create(ctx context.Context, h *model.Hotel) error {
	images, err := encodeImages(h.Images)
	if err != nil {
		return err
	}
	const qInsert = `INSERT INTO hotels (owner_id, name, description, city, address, images, status, is_active)
	                 VALUES (?, ?, ?, ?, ?, ?, ?, 1)`
	res, err := r.db.ExecContext(ctx, qInsert,
		h.OwnerID, h.Name, h.Description, h.City, h.Address, images, model.HotelStatusPending)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	// Query back the full row to populate defaults and timestamps.
	got, err := r.GetByID(ctx, h.ID)
	if err != nil {
		return err
	}
	*h = *got
	return nil
}

// GetByID fetches a hotel by id regardless of owner or status. It
// returns ErrHotelNotFound when no row exists.
func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (*model.Hotel, error) {
	const q = "SELECT " + hotelColumns + " FROM hotels WHERE id = ?"
	h, err := scanHotel(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	return h, nil
}

// ListApproved returns active, approved hotels for public browsing,
// optionally filtered by city. Results are ordered by id.
func (r *HotelRepo) ListApproved(ctx context.Context, city string) ([]*model.Hotel, error) {
	q := "SELECT " + hotelColumns + " FROM hotels WHERE is_active = 1 AND status = ?"
	args := []interface{}{model.HotelStatusApproved}
	if city != "" {
		q += " AND city = ?"
		args = append(args, city)
	}
	q += " ORDER BY id"
	return r.list(ctx, q, args...)
}

// ListByOwner returns all hotels for a specific owner, including
// pending and deactivated ones, ordered by id.
func (r *HotelRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Hotel, error) {
	const q = "SELECT " + hotelColumns + " FROM hotels WHERE owner_id = ? ORDER BY id"
	return r.list(ctx, q, ownerID)
}

func (r *HotelRepo) list(ctx context.Context, q string, args ...interface{}) ([]*model.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Hotel, 0)
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ownerOf returns the owner id of a hotel, or ErrHotelNotFound.
func (r *HotelRepo) ownerOf(ctx context.Context, hotelID uint64) (uint64, error) {
	var ownerID uint64
	err := r.db.QueryRowContext(ctx, "SELECT owner_id FROM hotels WHERE id = ?", hotelID).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrHotelNotFound
	}
	return ownerID, err
}

// authorize verifies that callerID may mutate the hotel. Admins
// bypass the ownership check; everyone else must own the row.
func (r *HotelRepo) authorize(ctx context.Context, hotelID, callerID uint64, admin bool) error {
	ownerID, err := r.ownerOf(ctx, hotelID)
	if err != nil {
		return err
	}
	if !admin && ownerID != callerID {
		return ErrForbidden
	}
	return nil
}

// Update rewrites the mutable catalog fields of a hotel. The approval
// status is deliberately not touched here; only SetStatus changes it.
// Returns ErrHotelNotFound or ErrForbidden as appropriate.
func (r *HotelRepo) Update(ctx context.Context, h *model.Hotel, callerID uint64, admin bool) error {
	if err := r.authorize(ctx, h.ID, callerID, admin); err != nil {
		return err
	}
	images, err := encodeImages(h.Images)
	if err != nil {
		return err
	}
	const q = `UPDATE hotels
	           SET name = ?, description = ?, city = ?, address = ?, images = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, h.Name, h.Description, h.City, h.Address, images, h.ID); err != nil {
		return err
	}
	got, err := r.GetByID(ctx, h.ID)
	if err != nil {
		return err
	}
	*h = *got
	return nil
}

// SetStatus moves a hotel between approval states. The caller must
// already be authorized as an admin; this method only validates that
// the hotel exists and the status value is legal.
func (r *HotelRepo) SetStatus(ctx context.Context, hotelID uint64, status string) (*model.Hotel, error) {
	switch status {
	case model.HotelStatusPending, model.HotelStatusApproved, model.HotelStatusRejected:
	default:
		return nil, ErrInvalidTransition
	}
	const q = "UPDATE hotels SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, status, hotelID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is also 0 when the status did not change, so
		// distinguish a missing row from a no-op update.
		if _, err := r.ownerOf(ctx, hotelID); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, hotelID)
}

// SoftDelete deactivates a hotel. The row is kept; bookability of the
// hotel's rooms is cut off through the join performed at booking
// time, so no cascade touches the rooms table.
func (r *HotelRepo) SoftDelete(ctx context.Context, hotelID, callerID uint64, admin bool) error {
	if err := r.authorize(ctx, hotelID, callerID, admin); err != nil {
		return err
	}
	const q = "UPDATE hotels SET is_active = 0, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	_, err := r.db.ExecContext(ctx, q, hotelID)
	return err
}
