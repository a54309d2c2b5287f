// Package handler defines the HTTP handlers. Authentication and
// identity resolution are performed by middleware; handlers read the
// resolved identity from the context and combine role checks with
// repository-level ownership checks.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openstay/hotel-room-booking/internal/guard"
	"github.com/openstay/hotel-room-booking/internal/middleware"
	"github.com/openstay/hotel-room-booking/internal/model"
	"github.com/openstay/hotel-room-booking/internal/pricing"
	"github.com/openstay/hotel-room-booking/internal/repository"
)

const dateLayout = "2006-01-02"

// repoError maps repository sentinel errors to HTTP responses so each
// handler does not repeat the same switch.
func repoError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrHotelNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
	case errors.Is(err, repository.ErrRoomNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	case errors.Is(err, repository.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "not enough units available"})
	case errors.Is(err, repository.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, echo.Map{"error": "invalid status transition"})
	case errors.Is(err, repository.ErrRoomNotBookable):
		return c.JSON(http.StatusConflict, echo.Map{"error": "room is not open for booking"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// currentIdentity pulls the guard identity resolved by the
// LoadIdentity middleware. Routes registered without that middleware
// yield ok == false, which handlers treat as 401.
func currentIdentity(c echo.Context) (guard.Identity, bool) {
	return middleware.CurrentIdentity(c)
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// parseDate parses a calendar date in YYYY-MM-DD form into UTC
// midnight.
func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}

// hotelView is the JSON representation of a hotel.
type hotelView struct {
	ID          uint64   `json:"id"`
	OwnerID     uint64   `json:"owner_id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	City        string   `json:"city"`
	Address     string   `json:"address"`
	Images      []string `json:"images"`
	Status      string   `json:"status,omitempty"`
	IsActive    bool     `json:"is_active"`
}

func newHotelView(h *model.Hotel, includeOwner bool) hotelView {
	v := hotelView{
		ID:          h.ID,
		Name:        h.Name,
		Description: h.Description,
		City:        h.City,
		Address:     h.Address,
		Images:      h.Images,
		Status:      h.Status,
		IsActive:    h.IsActive,
	}
	if includeOwner {
		v.OwnerID = h.OwnerID
	}
	return v
}

// roomView is the JSON representation of a room. Rates are reported
// both in cents and as decimal amounts for convenience.
type roomView struct {
	ID                  uint64   `json:"id"`
	HotelID             uint64   `json:"hotel_id"`
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	Images              []string `json:"images"`
	RateCents           int64    `json:"rate_cents"`
	Rate                float64  `json:"rate"`
	AdultSurchargeCents int64    `json:"adult_surcharge_cents"`
	AdultSurcharge      float64  `json:"adult_surcharge"`
	TotalUnits          int      `json:"total_units"`
	MaxAdults           int      `json:"max_adults"`
	IsActive            bool     `json:"is_active"`
}

func newRoomView(rm *model.Room) roomView {
	return roomView{
		ID:                  rm.ID,
		HotelID:             rm.HotelID,
		Name:                rm.Name,
		Description:         rm.Description,
		Images:              rm.Images,
		RateCents:           rm.RateCents,
		Rate:                pricing.FromCents(rm.RateCents),
		AdultSurchargeCents: rm.AdultSurchargeCents,
		AdultSurcharge:      pricing.FromCents(rm.AdultSurchargeCents),
		TotalUnits:          rm.TotalUnits,
		MaxAdults:           rm.MaxAdults,
		IsActive:            rm.IsActive,
	}
}

// bookingView is the JSON representation of a booking including its
// immutable price breakdown.
type bookingView struct {
	ID                  uint64  `json:"id"`
	RoomID              uint64  `json:"room_id"`
	UserID              uint64  `json:"user_id"`
	CheckIn             string  `json:"check_in"`
	CheckOut            string  `json:"check_out"`
	UnitCount           int     `json:"unit_count"`
	AdultCount          int     `json:"adult_count"`
	Nights              int     `json:"nights"`
	BaseCents           int64   `json:"base_cents"`
	AdultSurchargeCents int64   `json:"adult_surcharge_cents"`
	TotalCents          int64   `json:"total_cents"`
	Total               float64 `json:"total"`
	Status              string  `json:"status"`
	Note                string  `json:"note,omitempty"`
	CreatedAt           string  `json:"created_at"`
}

func newBookingView(b *model.Booking) bookingView {
	return bookingView{
		ID:                  b.ID,
		RoomID:              b.RoomID,
		UserID:              b.UserID,
		CheckIn:             b.CheckIn.UTC().Format(dateLayout),
		CheckOut:            b.CheckOut.UTC().Format(dateLayout),
		UnitCount:           b.UnitCount,
		AdultCount:          b.AdultCount,
		Nights:              b.Nights,
		BaseCents:           b.BaseCents,
		AdultSurchargeCents: b.AdultSurchargeCents,
		TotalCents:          b.TotalCents,
		Total:               pricing.FromCents(b.TotalCents),
		Status:              string(b.Status),
		Note:                b.Note,
		CreatedAt:           b.CreatedAt.UTC().Format(time.RFC3339),
	}
}
