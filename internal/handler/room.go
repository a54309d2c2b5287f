package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openstay/hotel-room-booking/internal/availability"
	"github.com/openstay/hotel-room-booking/internal/guard"
	"github.com/openstay/hotel-room-booking/internal/model"
	"github.com/openstay/hotel-room-booking/internal/pricing"
	"github.com/openstay/hotel-room-booking/internal/repository"
)

// RoomHandler serves room inventory: owner CRUD, public browsing and
// the availability preview.
type RoomHandler struct {
	Rooms    *repository.RoomRepo
	Hotels   *repository.HotelRepo
	Bookings *repository.BookingRepo
}

func NewRoomHandler(r *repository.RoomRepo, h *repository.HotelRepo, b *repository.BookingRepo) *RoomHandler {
	return &RoomHandler{Rooms: r, Hotels: h, Bookings: b}
}

type roomReq struct {
	HotelID        uint64   `json:"hotel_id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Images         []string `json:"images"`
	Rate           float64  `json:"rate"`            // nightly base rate per unit, decimal
	AdultSurcharge float64  `json:"adult_surcharge"` // nightly rate per extra adult
	TotalUnits     int      `json:"total_units"`
	MaxAdults      int      `json:"max_adults"`
}

type roomActiveReq struct {
	IsActive bool `json:"is_active"`
}

func (req *roomReq) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	switch {
	case req.Name == "":
		return "name required"
	case req.Rate <= 0:
		return "rate must be positive"
	case req.AdultSurcharge < 0:
		return "adult_surcharge must not be negative"
	case req.TotalUnits < 1:
		return "total_units must be at least 1"
	case req.MaxAdults < 1:
		return "max_adults must be at least 1"
	}
	return ""
}

// Create adds a room type under a hotel the caller owns. Decimal rates
// are converted to cents on the way in; everything downstream is
// integer arithmetic.
func (h *RoomHandler) Create(c echo.Context) error {
	ident, ok := currentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.HotelID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hotel_id required"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rm := &model.Room{
		HotelID:             req.HotelID,
		Name:                req.Name,
		Description:         req.Description,
		Images:              req.Images,
		RateCents:           pricing.ToCents(req.Rate),
		AdultSurchargeCents: pricing.ToCents(req.AdultSurcharge),
		TotalUnits:          req.TotalUnits,
		MaxAdults:           req.MaxAdults,
	}
	if err := h.Rooms.Create(ctx, rm, ident.UserID, ident.Role == guard.RoleAdmin); err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusCreated, newRoomView(rm))
}

// Update rewrites a room's fields including rates and unit counts.
// Existing bookings keep their snapshotted price breakdown.
func (h *RoomHandler) Update(c echo.Context) error {
	ident, ok := currentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rm := &model.Room{
		ID:                  id,
		Name:                req.Name,
		Description:         req.Description,
		Images:              req.Images,
		RateCents:           pricing.ToCents(req.Rate),
		AdultSurchargeCents: pricing.ToCents(req.AdultSurcharge),
		TotalUnits:          req.TotalUnits,
		MaxAdults:           req.MaxAdults,
	}
	if err := h.Rooms.Update(ctx, rm, ident.UserID, ident.Role == guard.RoleAdmin); err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, newRoomView(rm))
}

// SetActive toggles whether a room accepts new bookings.
func (h *RoomHandler) SetActive(c echo.Context) error {
	ident, ok := currentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req roomActiveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rm, err := h.Rooms.SetActive(ctx, id, req.IsActive, ident.UserID, ident.Role == guard.RoleAdmin)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, newRoomView(rm))
}

// Delete soft-deletes a room. Bookings reference rooms, so rows are
// never removed.
func (h *RoomHandler) Delete(c echo.Context) error {
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

	if err := h.Rooms.SoftDelete(ctx, id, ident.UserID, ident.Role == guard.RoleAdmin); err != nil {
		return repoError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListByHotel returns the full room inventory of one of the caller's
// hotels, including deactivated rooms.
func (h *RoomHandler) ListByHotel(c echo.Context) error {
	ident, ok := currentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hotelID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hotel, err := h.Hotels.GetByID(ctx, hotelID)
	if err != nil {
		return repoError(c, err)
	}
	if ident.Role != guard.RoleAdmin && hotel.OwnerID != ident.UserID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	rooms, err := h.Rooms.ListByHotel(ctx, hotelID, false)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list rooms failed"})
	}
	out := make([]roomView, 0, len(rooms))
	for _, rm := range rooms {
		out = append(out, newRoomView(rm))
	}
	return c.JSON(http.StatusOK, out)
}

// ListPublic returns every room currently open for booking across all
// approved hotels.
func (h *RoomHandler) ListPublic(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rooms, err := h.Rooms.ListBookable(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list rooms failed"})
	}
	out := make([]roomView, 0, len(rooms))
	for _, rm := range rooms {
		out = append(out, newRoomView(rm))
	}
	return c.JSON(http.StatusOK, out)
}

// GetPublic returns a single bookable room.
func (h *RoomHandler) GetPublic(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rm, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err)
	}
	if !rm.IsActive {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	}
	hotel, err := h.Hotels.GetByID(ctx, rm.HotelID)
	if err != nil {
		return repoError(c, err)
	}
	if !hotel.IsActive || hotel.Status != model.HotelStatusApproved {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	}
	return c.JSON(http.StatusOK, newRoomView(rm))
}

type availabilityResp struct {
	RoomID     uint64 `json:"room_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Nights     int    `json:"nights"`
	TotalUnits int    `json:"total_units"`
	// FreeUnits[i] is the number of unreserved units on night i of the
	// stay. Available is the minimum over all nights.
	FreeUnits []int `json:"free_units"`
	Available int   `json:"available"`
}

// Availability previews how many units of a room are free for each
// night of a prospective stay. The answer is computed outside any
// lock and can go stale immediately; booking creation re-checks under
// the room lock.
func (h *RoomHandler) Availability(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	checkIn, err1 := parseDate(c.QueryParam("check_in"))
	checkOut, err2 := parseDate(c.QueryParam("check_out"))
	if err1 != nil || err2 != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in and check_out required as YYYY-MM-DD"})
	}
	if pricing.Nights(checkIn, checkOut) < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be after check_in"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rm, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err)
	}
	hotel, err := h.Hotels.GetByID(ctx, rm.HotelID)
	if err != nil {
		return repoError(c, err)
	}
	if !rm.IsActive || !hotel.IsActive || hotel.Status != model.HotelStatusApproved {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	}

	holds, err := h.Bookings.ActiveHolds(ctx, id, checkIn, checkOut)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load bookings failed"})
	}
	stay := availability.Interval{CheckIn: checkIn, CheckOut: checkOut}
	loads := availability.NightLoads(stay, holds)
	free := make([]int, len(loads))
	minFree := rm.TotalUnits
	for i, load := range loads {
		f := rm.TotalUnits - load
		if f < 0 {
			f = 0
		}
		free[i] = f
		if f < minFree {
			minFree = f
		}
	}
	return c.JSON(http.StatusOK, availabilityResp{
		RoomID:     rm.ID,
		CheckIn:    checkIn.Format(dateLayout),
		CheckOut:   checkOut.Format(dateLayout),
		Nights:     len(free),
		TotalUnits: rm.TotalUnits,
		FreeUnits:  free,
		Available:  minFree,
	})
}
