package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/openstay/hotel-room-booking/internal/availability"
	"github.com/openstay/hotel-room-booking/internal/model"
)

// BookingRepo provides CRUD operations for bookings. The critical
// sequences (availability check + insert, status transitions) run
// inside transactions supplied by the caller; the repo exposes Tx
// variants for those and plain methods for reads.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so handlers can begin transactions.
func (r *BookingRepo) DB() *sql.DB { return r.db }

const bookingColumns = `id, room_id, user_id, check_in, check_out, unit_count, adult_count,
	nights, base_cents, adult_surcharge_cents, total_cents, status, note, created_at, updated_at`

const dateLayout = "2006-01-02"

func scanBooking(row interface {
	Scan(dest ...interface{}) error
}, extra ...interface{}) (*model.Booking, error) {
	var b model.Booking
	var status string
	dest := []interface{}{&b.ID, &b.RoomID, &b.UserID, &b.CheckIn, &b.CheckOut,
		&b.UnitCount, &b.AdultCount, &b.Nights, &b.BaseCents, &b.AdultSurchargeCents,
		&b.TotalCents, &status, &b.Note, &b.CreatedAt, &b.UpdatedAt}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	b.Status = model.BookingStatus(status)
	return &b, nil
}

// CreateTx inserts a new booking within the scope of an existing
// transaction and populates the generated ID and timestamps on the
// provided record. The caller must commit or roll back; the room row
// must already be locked by the same transaction so the availability
// check this insert follows cannot race.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings (room_id, user_id, check_in, check_out, unit_count, adult_count,
	                                 nights, base_cents, adult_surcharge_cents, total_cents, status, note)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		b.RoomID, b.UserID,
		b.CheckIn.UTC().Format(dateLayout), b.CheckOut.UTC().Format(dateLayout),
		b.UnitCount, b.AdultCount,
		b.Nights, b.BaseCents, b.AdultSurchargeCents, b.TotalCents,
		string(b.Status), b.Note)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	const sel = "SELECT " + bookingColumns + " FROM bookings WHERE id = ?"
	got, err := scanBooking(tx.QueryRowContext(ctx, sel, b.ID))
	if err != nil {
		return err
	}
	*b = *got
	return nil
}

// ActiveHoldsTx returns the room-night holds of all non-terminal
// bookings (PENDING, CONFIRMED) of a room that overlap the half-open
// interval [from, to). Cancelled bookings release their nights
// immediately and are excluded here, which is exactly how the
// availability ledger forgets them. Must run in the same transaction
// that locked the room row.
func (r *BookingRepo) ActiveHoldsTx(ctx context.Context, tx *sql.Tx, roomID uint64, from, to time.Time) ([]availability.Hold, error) {
	const q = `SELECT check_in, check_out, unit_count
	           FROM bookings
	           WHERE room_id = ? AND status IN (?, ?) AND check_in < ? AND check_out > ?`
	rows, err := tx.QueryContext(ctx, q, roomID,
		string(model.BookingPending), string(model.BookingConfirmed),
		to.UTC().Format(dateLayout), from.UTC().Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var holds []availability.Hold
	for rows.Next() {
		var h availability.Hold
		if err := rows.Scan(&h.CheckIn, &h.CheckOut, &h.Units); err != nil {
			return nil, err
		}
		holds = append(holds, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return holds, nil
}

// ActiveHolds is the read-only variant of ActiveHoldsTx used by the
// public availability preview. It runs outside any transaction, so the
// answer is advisory: the authoritative check happens again under the
// room lock when a booking is actually created.
func (r *BookingRepo) ActiveHolds(ctx context.Context, roomID uint64, from, to time.Time) ([]availability.Hold, error) {
	const q = `SELECT check_in, check_out, unit_count
	           FROM bookings
	           WHERE room_id = ? AND status IN (?, ?) AND check_in < ? AND check_out > ?`
	rows, err := r.db.QueryContext(ctx, q, roomID,
		string(model.BookingPending), string(model.BookingConfirmed),
		to.UTC().Format(dateLayout), from.UTC().Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var holds []availability.Hold
	for rows.Next() {
		var h availability.Hold
		if err := rows.Scan(&h.CheckIn, &h.CheckOut, &h.Units); err != nil {
			return nil, err
		}
		holds = append(holds, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return holds, nil
}

// GetByID fetches a booking by id. It returns ErrBookingNotFound when
// no row exists.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = "SELECT " + bookingColumns + " FROM bookings WHERE id = ?"
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// GetForUpdateTx loads a booking inside a transaction with its row
// locked, along with the id of the user owning the hotel the booked
// room belongs to. Status transitions lock here so two concurrent
// transitions of the same booking serialize. ErrBookingNotFound when
// the id does not resolve.
func (r *BookingRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Booking, uint64, error) {
	const q = `SELECT b.id, b.room_id, b.user_id, b.check_in, b.check_out, b.unit_count, b.adult_count,
	                  b.nights, b.base_cents, b.adult_surcharge_cents, b.total_cents, b.status, b.note,
	                  b.created_at, b.updated_at, h.owner_id
	           FROM bookings b
	           JOIN rooms rm ON rm.id = b.room_id
	           JOIN hotels h ON h.id = rm.hotel_id
	           WHERE b.id = ?
	           FOR UPDATE`
	var hotelOwner uint64
	b, err := scanBooking(tx.QueryRowContext(ctx, q, id), &hotelOwner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrBookingNotFound
		}
		return nil, 0, err
	}
	return b, hotelOwner, nil
}

// UpdateStatusTx writes a new status for a booking within the given
// transaction. The caller is responsible for having validated the
// transition against the state machine first.
func (r *BookingRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status model.BookingStatus) error {
	const q = "UPDATE bookings SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	_, err := tx.ExecContext(ctx, q, string(status), id)
	return err
}

// ListByUser returns a customer's bookings, newest first, optionally
// filtered by status.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64, status *model.BookingStatus) ([]*model.Booking, error) {
	q := "SELECT " + bookingColumns + " FROM bookings WHERE user_id = ?"
	args := []interface{}{userID}
	if status != nil {
		q += " AND status = ?"
		args = append(args, string(*status))
	}
	q += " ORDER BY created_at DESC, id DESC"
	return r.list(ctx, q, args...)
}

// ListByHotelOwner returns the bookings placed on rooms of all hotels
// belonging to the given owner, newest first, optionally filtered by
// status.
func (r *BookingRepo) ListByHotelOwner(ctx context.Context, ownerID uint64, status *model.BookingStatus) ([]*model.Booking, error) {
	q := `SELECT b.id, b.room_id, b.user_id, b.check_in, b.check_out, b.unit_count, b.adult_count,
	             b.nights, b.base_cents, b.adult_surcharge_cents, b.total_cents, b.status, b.note,
	             b.created_at, b.updated_at
	      FROM bookings b
	      JOIN rooms rm ON rm.id = b.room_id
	      JOIN hotels h ON h.id = rm.hotel_id
	      WHERE h.owner_id = ?`
	args := []interface{}{ownerID}
	if status != nil {
		q += " AND b.status = ?"
		args = append(args, string(*status))
	}
	q += " ORDER BY b.created_at DESC, b.id DESC"
	return r.list(ctx, q, args...)
}

// ListAll returns every booking, newest first, optionally filtered by
// status. Admin-only at the handler level.
func (r *BookingRepo) ListAll(ctx context.Context, status *model.BookingStatus) ([]*model.Booking, error) {
	q := "SELECT " + bookingColumns + " FROM bookings"
	args := []interface{}{}
	if status != nil {
		q += " WHERE status = ?"
		args = append(args, string(*status))
	}
	q += " ORDER BY created_at DESC, id DESC"
	return r.list(ctx, q, args...)
}

func (r *BookingRepo) list(ctx context.Context, q string, args ...interface{}) ([]*model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
