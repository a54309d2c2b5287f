package guard

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openstay/hotel-room-booking/internal/model"
)

// --- Mock UserSource ---

type mockUserSource struct {
	getByIDFn func(ctx context.Context, id uint64) (model.User, error)
}

func (m *mockUserSource) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return m.getByIDFn(ctx, id)
}

// --- Tests ---

func TestParseRole(t *testing.T) {
	got, ok := ParseRole(" owner ")
	assert.True(t, ok)
	assert.Equal(t, RoleOwner, got)

	_, ok = ParseRole("SUPERUSER")
	assert.False(t, ok)
	_, ok = ParseRole("")
	assert.False(t, ok)
}

func TestIdentityAllowed(t *testing.T) {
	id := Identity{UserID: 7, Role: RoleCustomer}
	assert.True(t, id.Allowed(RoleCustomer))
	assert.True(t, id.Allowed(RoleOwner, RoleCustomer))
	assert.False(t, id.Allowed(RoleAdmin))
	assert.False(t, id.Allowed())
}

func TestIdentityRequire(t *testing.T) {
	id := Identity{UserID: 7, Role: RoleOwner}
	assert.NoError(t, id.Require(RoleOwner, RoleAdmin))
	assert.ErrorIs(t, id.Require(RoleAdmin), ErrForbidden)
}

func TestResolveActiveUser(t *testing.T) {
	g := New(&mockUserSource{
		getByIDFn: func(ctx context.Context, id uint64) (model.User, error) {
			return model.User{ID: id, Role: "ADMIN", IsActive: true}, nil
		},
	})
	ident, err := g.Resolve(context.Background(), 42)
	assert.NoError(t, err)
	assert.Equal(t, uint64(42), ident.UserID)
	assert.Equal(t, RoleAdmin, ident.Role)
}

func TestResolveDeactivatedUser(t *testing.T) {
	// A deactivated account is rejected even though its token would
	// still verify.
	g := New(&mockUserSource{
		getByIDFn: func(ctx context.Context, id uint64) (model.User, error) {
			return model.User{ID: id, Role: "CUSTOMER", IsActive: false}, nil
		},
	})
	_, err := g.Resolve(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestResolveUnknownUser(t *testing.T) {
	g := New(&mockUserSource{
		getByIDFn: func(ctx context.Context, id uint64) (model.User, error) {
			return model.User{}, sql.ErrNoRows
		},
	})
	_, err := g.Resolve(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestResolveSourceError(t *testing.T) {
	// Infrastructure failures are not mapped to ErrUnauthorized.
	dbErr := errors.New("connection reset")
	g := New(&mockUserSource{
		getByIDFn: func(ctx context.Context, id uint64) (model.User, error) {
			return model.User{}, dbErr
		},
	})
	_, err := g.Resolve(context.Background(), 42)
	assert.ErrorIs(t, err, dbErr)
}

func TestResolveBadRoleInRow(t *testing.T) {
	g := New(&mockUserSource{
		getByIDFn: func(ctx context.Context, id uint64) (model.User, error) {
			return model.User{ID: id, Role: "banana", IsActive: true}, nil
		},
	})
	_, err := g.Resolve(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestNewPanicsOnNilSource(t *testing.T) {
	assert.Panics(t, func() { New(nil) })
}
