//go:build integration

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openstay/hotel-room-booking/internal/database"
	"github.com/openstay/hotel-room-booking/internal/guard"
	"github.com/openstay/hotel-room-booking/internal/middleware"
	"github.com/openstay/hotel-room-booking/internal/model"
	"github.com/openstay/hotel-room-booking/internal/repository"
	"github.com/openstay/hotel-room-booking/internal/utils"
)

// These tests need a running MySQL with schema.sql applied. Configure
// it with TEST_DB_USER / TEST_DB_PASS / TEST_DB_HOST / TEST_DB_PORT /
// TEST_DB_NAME and run with -tags integration. All tables are
// truncated between tests.

const testJWTSecret = "integration-test-secret"

type integrationEnv struct {
	db       *sql.DB
	guard    *guard.Guard
	bookingH *BookingHandler
	e        *echo.Echo

	customerID uint64
	ownerID    uint64
	adminID    uint64
	roomID     uint64
}

func setupIntegration(t *testing.T) *integrationEnv {
	t.Helper()
	user := os.Getenv("TEST_DB_USER")
	if user == "" {
		t.Skip("TEST_DB_USER not set; skipping MySQL integration tests")
	}
	db, err := database.Open(user, os.Getenv("TEST_DB_PASS"),
		envOr("TEST_DB_HOST", "localhost"), envOr("TEST_DB_PORT", "3306"),
		envOr("TEST_DB_NAME", "hotel_booking_test"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	for _, table := range []string{"bookings", "rooms", "hotels", "refresh_tokens", "users"} {
		_, err := db.ExecContext(ctx, "DELETE FROM "+table)
		require.NoError(t, err)
	}

	users := repository.NewUserRepo(db)
	hotels := repository.NewHotelRepo(db)
	rooms := repository.NewRoomRepo(db)
	bookings := repository.NewBookingRepo(db)
	g := guard.New(users)

	env := &integrationEnv{
		db:       db,
		guard:    g,
		bookingH: NewBookingHandler(bookings, rooms, hotels),
		e:        echo.New(),
	}

	env.customerID = insertUser(t, users, "customer@test.local", "CUSTOMER")
	env.ownerID = insertUser(t, users, "owner@test.local", "OWNER")
	env.adminID = insertUser(t, users, "admin@test.local", "ADMIN")

	hotel := &model.Hotel{OwnerID: env.ownerID, Name: "Harbor View", City: "Lisbon"}
	require.NoError(t, hotels.Create(ctx, hotel))
	_, err = hotels.SetStatus(ctx, hotel.ID, model.HotelStatusApproved)
	require.NoError(t, err)

	rm := &model.Room{
		HotelID:             hotel.ID,
		Name:                "Twin",
		RateCents:           10000,
		AdultSurchargeCents: 2000,
		TotalUnits:          2,
		MaxAdults:           2,
	}
	require.NoError(t, rooms.Create(ctx, rm, env.ownerID, false))
	env.roomID = rm.ID
	return env
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func insertUser(t *testing.T, users *repository.UserRepo, email, role string) uint64 {
	t.Helper()
	id, err := users.Create(context.Background(), email, "password", role, 4)
	require.NoError(t, err)
	return id
}

// call runs one request through the real JWTAuth + LoadIdentity chain
// into the given handler, authenticated as userID/role.
func (env *integrationEnv) call(t *testing.T, h echo.HandlerFunc, method, path, body string, userID uint64, role string) *httptest.ResponseRecorder {
	t.Helper()
	at, err := utils.NewAccessToken(testJWTSecret, userID, role, 15)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+at.Token)
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	if i := strings.LastIndex(path, "/bookings/"); i >= 0 {
		rest := strings.TrimPrefix(path[i:], "/bookings/")
		if id := strings.TrimSuffix(rest, "/status"); id != "" {
			c.SetParamNames("id")
			c.SetParamValues(id)
		}
	}
	chain := middleware.JWTAuth(testJWTSecret)(middleware.LoadIdentity(env.guard)(h))
	require.NoError(t, chain(c))
	return rec
}

func bookingBody(roomID uint64, units int) string {
	return fmt.Sprintf(`{"room_id":%d,"check_in":"2027-03-10","check_out":"2027-03-12","unit_count":%d,"adult_count":%d}`,
		roomID, units, units)
}

func countBookings(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM bookings").Scan(&n))
	return n
}

func TestIntegrationConcurrentCreateLastUnits(t *testing.T) {
	env := setupIntegration(t)

	// Two concurrent requests for all 2 units of a 2-unit room:
	// exactly one may win, the other gets a conflict.
	var wg sync.WaitGroup
	codes := make([]int, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := env.call(t, env.bookingH.Create, http.MethodPost, "/v1/bookings",
				bookingBody(env.roomID, 2), env.customerID, "CUSTOMER")
			codes[i] = rec.Code
		}(i)
	}
	wg.Wait()

	created, conflicted := 0, 0
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicted++
		}
	}
	assert.Equal(t, 1, created, "codes: %v", codes)
	assert.Equal(t, 1, conflicted, "codes: %v", codes)
	assert.Equal(t, 1, countBookings(t, env.db))
}

func TestIntegrationConfirmAndCancelRoles(t *testing.T) {
	env := setupIntegration(t)

	rec := env.call(t, env.bookingH.Create, http.MethodPost, "/v1/bookings",
		bookingBody(env.roomID, 2), env.customerID, "CUSTOMER")
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID uint64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	statusPath := "/v1/bookings/" + strconv.FormatUint(created.ID, 10) + "/status"

	// The customer may not confirm their own booking.
	rec = env.call(t, env.bookingH.SetStatus, http.MethodPatch, statusPath,
		`{"status":"CONFIRMED"}`, env.customerID, "CUSTOMER")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Neither may the hotel owner; confirmation is an admin act.
	rec = env.call(t, env.bookingH.SetStatus, http.MethodPatch, statusPath,
		`{"status":"CONFIRMED"}`, env.ownerID, "OWNER")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.call(t, env.bookingH.SetStatus, http.MethodPatch, statusPath,
		`{"status":"CONFIRMED"}`, env.adminID, "ADMIN")
	assert.Equal(t, http.StatusOK, rec.Code)

	// Self-cancellation releases the nights: a full re-book of the
	// same dates succeeds afterwards.
	rec = env.call(t, env.bookingH.SetStatus, http.MethodPatch, statusPath,
		`{"status":"CANCELLED"}`, env.customerID, "CUSTOMER")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.call(t, env.bookingH.Create, http.MethodPost, "/v1/bookings",
		bookingBody(env.roomID, 2), env.customerID, "CUSTOMER")
	assert.Equal(t, http.StatusCreated, rec.Code)

	// Cancelling the cancelled booking again is an invalid transition,
	// not a second release.
	rec = env.call(t, env.bookingH.SetStatus, http.MethodPatch, statusPath,
		`{"status":"CANCELLED"}`, env.customerID, "CUSTOMER")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestIntegrationZeroNightStayRejected(t *testing.T) {
	env := setupIntegration(t)

	body := fmt.Sprintf(`{"room_id":%d,"check_in":"2027-03-10","check_out":"2027-03-10","unit_count":1,"adult_count":1}`, env.roomID)
	rec := env.call(t, env.bookingH.Create, http.MethodPost, "/v1/bookings",
		body, env.customerID, "CUSTOMER")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, countBookings(t, env.db))
}
