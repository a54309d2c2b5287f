package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/openstay/hotel-room-booking/internal/guard"
	"github.com/openstay/hotel-room-booking/internal/model"
)

type mockUsers struct {
	user model.User
	err  error
}

func (m *mockUsers) GetByID(ctx context.Context, id uint64) (model.User, error) {
	if m.err != nil {
		return model.User{}, m.err
	}
	u := m.user
	u.ID = id
	return u, nil
}

func runChain(t *testing.T, users *mockUsers, userID interface{}, roles ...guard.Role) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != nil {
		c.Set("user_id", userID) // what JWTAuth would have stored
	}

	h := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	chain := LoadIdentity(guard.New(users))(RequireRole(roles...)(h))
	assert.NoError(t, chain(c))
	return rec
}

func TestRequireRoleAllows(t *testing.T) {
	users := &mockUsers{user: model.User{Role: "OWNER", IsActive: true}}
	rec := runChain(t, users, float64(7), guard.RoleOwner, guard.RoleAdmin)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleForbids(t *testing.T) {
	users := &mockUsers{user: model.User{Role: "CUSTOMER", IsActive: true}}
	rec := runChain(t, users, float64(7), guard.RoleAdmin)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeactivatedAccountRejected(t *testing.T) {
	users := &mockUsers{user: model.User{Role: "OWNER", IsActive: false}}
	rec := runChain(t, users, float64(7), guard.RoleOwner)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoleFromRowNotClaim(t *testing.T) {
	// The row says CUSTOMER; whatever the token claimed is irrelevant.
	users := &mockUsers{user: model.User{Role: "CUSTOMER", IsActive: true}}
	rec := runChain(t, users, float64(7), guard.RoleOwner)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMissingUserIDRejected(t *testing.T) {
	users := &mockUsers{user: model.User{Role: "OWNER", IsActive: true}}
	rec := runChain(t, users, nil, guard.RoleOwner)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRoleWithoutIdentity(t *testing.T) {
	// RequireRole without LoadIdentity earlier in the chain is a 401.
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	err := RequireRole(guard.RoleAdmin)(h)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
