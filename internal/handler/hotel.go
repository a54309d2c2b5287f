package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openstay/hotel-room-booking/internal/guard"
	"github.com/openstay/hotel-room-booking/internal/model"
	"github.com/openstay/hotel-room-booking/internal/repository"
)

// HotelHandler serves the hotel catalog: owner CRUD, admin approval
// and the public browse endpoints.
type HotelHandler struct {
	Hotels *repository.HotelRepo
	Rooms  *repository.RoomRepo
}

func NewHotelHandler(h *repository.HotelRepo, r *repository.RoomRepo) *HotelHandler {
	return &HotelHandler{Hotels: h, Rooms: r}
}

type hotelReq struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	City        string   `json:"city"`
	Address     string   `json:"address"`
	Images      []string `json:"images"`
}

type hotelStatusReq struct {
	Status string `json:"status"` // PENDING | APPROVED | REJECTED
}

// Create registers a new hotel under the calling owner. New hotels
// start in PENDING status and are invisible to the public until an
// admin approves them.
func (h *HotelHandler) Create(c echo.Context) error {
	ident, ok := currentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req hotelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hotel := &model.Hotel{
		OwnerID:     ident.UserID,
		Name:        req.Name,
		Description: req.Description,
		City:        strings.TrimSpace(req.City),
		Address:     strings.TrimSpace(req.Address),
		Images:      req.Images,
	}
	if err := h.Hotels.Create(ctx, hotel); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create hotel failed"})
	}
	return c.JSON(http.StatusCreated, newHotelView(hotel, true))
}

// Update rewrites the catalog fields of a hotel. Owners can only touch
// their own hotels; admins can touch any. Approval status is not
// changed here.
func (h *HotelHandler) Update(c echo.Context) error {
	ident, ok := currentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req hotelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hotel := &model.Hotel{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		City:        strings.TrimSpace(req.City),
		Address:     strings.TrimSpace(req.Address),
		Images:      req.Images,
	}
	if err := h.Hotels.Update(ctx, hotel, ident.UserID, ident.Role == guard.RoleAdmin); err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, newHotelView(hotel, true))
}

// Delete soft-deletes a hotel. Its rooms stop being bookable through
// the bookability join; existing bookings are untouched.
func (h *HotelHandler) Delete(c echo.Context) error {
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

	if err := h.Hotels.SoftDelete(ctx, id, ident.UserID, ident.Role == guard.RoleAdmin); err != nil {
		return repoError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListMine returns the calling owner's hotels, including pending,
// rejected and deactivated ones.
func (h *HotelHandler) ListMine(c echo.Context) error {
	ident, ok := currentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hotels, err := h.Hotels.ListByOwner(ctx, ident.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list hotels failed"})
	}
	out := make([]hotelView, 0, len(hotels))
	for _, hotel := range hotels {
		out = append(out, newHotelView(hotel, true))
	}
	return c.JSON(http.StatusOK, out)
}

// SetStatus moves a hotel between approval states. Admin only (the
// route carries RequireRole(ADMIN)).
func (h *HotelHandler) SetStatus(c echo.Context) error {
	if _, ok := currentIdentity(c); !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req hotelStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hotel, err := h.Hotels.SetStatus(ctx, id, status)
	if err != nil {
		if err == repository.ErrInvalidTransition {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, newHotelView(hotel, true))
}

// ListPublic returns active, approved hotels, optionally filtered by
// ?city=. No authentication required.
func (h *HotelHandler) ListPublic(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hotels, err := h.Hotels.ListApproved(ctx, strings.TrimSpace(c.QueryParam("city")))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list hotels failed"})
	}
	out := make([]hotelView, 0, len(hotels))
	for _, hotel := range hotels {
		v := newHotelView(hotel, false)
		v.Status = "" // public listing is approved-only; hide the field
		out = append(out, v)
	}
	return c.JSON(http.StatusOK, out)
}

// GetPublic returns one hotel for public viewing. Hotels that are not
// approved or not active read as not found to anonymous callers.
func (h *HotelHandler) GetPublic(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hotel, err := h.Hotels.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err)
	}
	if !hotel.IsActive || hotel.Status != model.HotelStatusApproved {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
	}
	v := newHotelView(hotel, false)
	v.Status = ""
	return c.JSON(http.StatusOK, v)
}

// ListRoomsPublic returns the active rooms of an approved hotel.
func (h *HotelHandler) ListRoomsPublic(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hotel, err := h.Hotels.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err)
	}
	if !hotel.IsActive || hotel.Status != model.HotelStatusApproved {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
	}
	rooms, err := h.Rooms.ListByHotel(ctx, id, true)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list rooms failed"})
	}
	out := make([]roomView, 0, len(rooms))
	for _, rm := range rooms {
		out = append(out, newRoomView(rm))
	}
	return c.JSON(http.StatusOK, out)
}
