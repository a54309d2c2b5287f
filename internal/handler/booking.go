package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openstay/hotel-room-booking/internal/availability"
	"github.com/openstay/hotel-room-booking/internal/guard"
	"github.com/openstay/hotel-room-booking/internal/model"
	"github.com/openstay/hotel-room-booking/internal/pricing"
	"github.com/openstay/hotel-room-booking/internal/queue"
	"github.com/openstay/hotel-room-booking/internal/repository"
	queue_publisher "github.com/openstay/hotel-room-booking/internal/service"
)

// BookingHandler serves the booking lifecycle: creation with the
// availability check, status transitions and role-scoped listings.
type BookingHandler struct {
	Bookings *repository.BookingRepo
	Rooms    *repository.RoomRepo
	Hotels   *repository.HotelRepo
}

func NewBookingHandler(b *repository.BookingRepo, r *repository.RoomRepo, h *repository.HotelRepo) *BookingHandler {
	return &BookingHandler{Bookings: b, Rooms: r, Hotels: h}
}

type bookingReq struct {
	RoomID     uint64 `json:"room_id"`
	CheckIn    string `json:"check_in"`  // YYYY-MM-DD
	CheckOut   string `json:"check_out"` // YYYY-MM-DD
	UnitCount  int    `json:"unit_count"`
	AdultCount int    `json:"adult_count"`
	Note       string `json:"note"`
}

type bookingStatusReq struct {
	Status string `json:"status"` // CONFIRMED | CANCELLED
}

// Create places a new booking in PENDING status. The whole
// check-then-insert sequence runs in one transaction that first locks
// the room row, so two concurrent requests for the last unit serialize
// and exactly one wins.
func (h *BookingHandler) Create(c echo.Context) error {
	ident, ok := currentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	// Only customers place bookings; owners and admins manage them.
	if err := ident.Require(guard.RoleCustomer); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id required"})
	}
	checkIn, err1 := parseDate(req.CheckIn)
	checkOut, err2 := parseDate(req.CheckOut)
	if err1 != nil || err2 != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in and check_out required as YYYY-MM-DD"})
	}
	nights := pricing.Nights(checkIn, checkOut)
	if nights < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be after check_in"})
	}
	if checkIn.Before(pricing.Midnight(time.Now())) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in must not be in the past"})
	}
	if req.UnitCount < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unit_count must be at least 1"})
	}
	if req.AdultCount < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "adult_count must be at least 1"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock the room row; this is the serialization point for this room.
	rm, err := h.Rooms.GetBookableForUpdateTx(ctx, tx, req.RoomID)
	if err != nil {
		return repoError(c, err)
	}
	if req.UnitCount > rm.TotalUnits {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unit_count exceeds room inventory"})
	}
	if req.AdultCount > rm.MaxAdults*req.UnitCount {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "adult_count exceeds room capacity"})
	}

	stay := availability.Interval{CheckIn: checkIn, CheckOut: checkOut}
	holds, err := h.Bookings.ActiveHoldsTx(ctx, tx, rm.ID, checkIn, checkOut)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load bookings failed"})
	}
	if !availability.Fits(rm.TotalUnits, req.UnitCount, stay, holds) {
		return repoError(c, repository.ErrConflict)
	}

	quote := pricing.Quote(rm.RateCents, rm.AdultSurchargeCents, nights, req.UnitCount, req.AdultCount)
	b := &model.Booking{
		RoomID:              rm.ID,
		UserID:              ident.UserID,
		CheckIn:             checkIn,
		CheckOut:            checkOut,
		UnitCount:           req.UnitCount,
		AdultCount:          req.AdultCount,
		Nights:              quote.Nights,
		BaseCents:           quote.BaseCents,
		AdultSurchargeCents: quote.AdultSurchargeCents,
		TotalCents:          quote.TotalCents,
		Status:              model.BookingPending,
		Note:                strings.TrimSpace(req.Note),
	}
	if err := h.Bookings.CreateTx(ctx, tx, b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	return c.JSON(http.StatusCreated, newBookingView(b))
}

// transitionAllowed decides who may request a booking transition.
// Confirmation is an admin act; cancellation is additionally open to
// the owner of the booked room's hotel and to the booking's customer.
func transitionAllowed(ident guard.Identity, target model.BookingStatus, bookingUser, hotelOwner uint64) bool {
	if ident.Role == guard.RoleAdmin {
		return true
	}
	if target == model.BookingCancelled {
		return ident.UserID == hotelOwner || ident.UserID == bookingUser
	}
	return false
}

// SetStatus transitions a booking through its lifecycle. Only admins
// confirm; admins, the hotel owner and the booking's customer may
// cancel. The transition is validated against the state machine under
// a row lock; an event is published after the commit.
func (h *BookingHandler) SetStatus(c echo.Context) error {
	ident, ok := currentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req bookingStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	target, ok := model.ParseBookingStatus(req.Status)
	if !ok || target == model.BookingPending {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be CONFIRMED or CANCELLED"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, hotelOwner, err := h.Bookings.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		return repoError(c, err)
	}

	if !transitionAllowed(ident, target, b.UserID, hotelOwner) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if !b.Status.CanTransition(target) {
		return repoError(c, repository.ErrInvalidTransition)
	}
	if err := h.Bookings.UpdateStatusTx(ctx, tx, b.ID, target); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true
	b.Status = target

	h.publishStatusEvent(ctx, b)

	return c.JSON(http.StatusOK, newBookingView(b))
}

// publishStatusEvent emits a BookingStatusEvent after a committed
// transition. The transition itself already succeeded, so a broker
// failure here is logged and otherwise ignored.
func (h *BookingHandler) publishStatusEvent(ctx context.Context, b *model.Booking) {
	hotelName, roomName := "", ""
	var hotelID uint64
	if rm, err := h.Rooms.GetByID(ctx, b.RoomID); err == nil {
		roomName = rm.Name
		hotelID = rm.HotelID
		if hotel, err := h.Hotels.GetByID(ctx, rm.HotelID); err == nil {
			hotelName = hotel.Name
		}
	}
	ev := queue.BookingStatusEvent{
		BookingID:  b.ID,
		UserID:     b.UserID,
		RoomID:     b.RoomID,
		HotelID:    hotelID,
		HotelName:  hotelName,
		RoomName:   roomName,
		CheckIn:    b.CheckIn.UTC().Format(dateLayout),
		CheckOut:   b.CheckOut.UTC().Format(dateLayout),
		UnitCount:  b.UnitCount,
		AdultCount: b.AdultCount,
		TotalCents: b.TotalCents,
		Status:     string(b.Status),
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := queue_publisher.PublishBookingEvent(ctx, ev); err != nil {
		log.Printf("booking %d: publish %s event failed: %v", b.ID, b.Status, err)
	}
}

// Get returns a single booking. Visible to the booking's customer, the
// owner of the booked room's hotel, and admins.
func (h *BookingHandler) Get(c echo.Context) error {
	ident, ok := currentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err)
	}
	if ident.Role != guard.RoleAdmin && ident.UserID != b.UserID {
		owner, err := h.Rooms.OwnerOf(ctx, b.RoomID)
		if err != nil || owner != ident.UserID {
			// Hide existence from unrelated callers.
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
	}
	return c.JSON(http.StatusOK, newBookingView(b))
}

// List returns bookings scoped by the caller's role: customers see
// their own, owners see bookings on their hotels, admins see all. An
// optional ?status= filter narrows the result.
func (h *BookingHandler) List(c echo.Context) error {
	ident, ok := currentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var status *model.BookingStatus
	if s := strings.TrimSpace(c.QueryParam("status")); s != "" {
		parsed, ok := model.ParseBookingStatus(s)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status filter"})
		}
		status = &parsed
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var (
		bookings []*model.Booking
		err      error
	)
	switch ident.Role {
	case guard.RoleAdmin:
		bookings, err = h.Bookings.ListAll(ctx, status)
	case guard.RoleOwner:
		bookings, err = h.Bookings.ListByHotelOwner(ctx, ident.UserID, status)
	default:
		bookings, err = h.Bookings.ListByUser(ctx, ident.UserID, status)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
	}
	out := make([]bookingView, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, newBookingView(b))
	}
	return c.JSON(http.StatusOK, out)
}
