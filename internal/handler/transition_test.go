package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openstay/hotel-room-booking/internal/guard"
	"github.com/openstay/hotel-room-booking/internal/model"
)

func TestTransitionAllowedConfirmIsAdminOnly(t *testing.T) {
	const bookingUser, hotelOwner = uint64(10), uint64(20)

	admin := guard.Identity{UserID: 99, Role: guard.RoleAdmin}
	assert.True(t, transitionAllowed(admin, model.BookingConfirmed, bookingUser, hotelOwner))

	// The hotel owner of the booked room may not confirm.
	owner := guard.Identity{UserID: hotelOwner, Role: guard.RoleOwner}
	assert.False(t, transitionAllowed(owner, model.BookingConfirmed, bookingUser, hotelOwner))

	// Neither may the booking's customer.
	customer := guard.Identity{UserID: bookingUser, Role: guard.RoleCustomer}
	assert.False(t, transitionAllowed(customer, model.BookingConfirmed, bookingUser, hotelOwner))
}

func TestTransitionAllowedCancel(t *testing.T) {
	const bookingUser, hotelOwner = uint64(10), uint64(20)

	admin := guard.Identity{UserID: 99, Role: guard.RoleAdmin}
	assert.True(t, transitionAllowed(admin, model.BookingCancelled, bookingUser, hotelOwner))

	owner := guard.Identity{UserID: hotelOwner, Role: guard.RoleOwner}
	assert.True(t, transitionAllowed(owner, model.BookingCancelled, bookingUser, hotelOwner))

	customer := guard.Identity{UserID: bookingUser, Role: guard.RoleCustomer}
	assert.True(t, transitionAllowed(customer, model.BookingCancelled, bookingUser, hotelOwner))

	// Unrelated identities may not cancel.
	other := guard.Identity{UserID: 77, Role: guard.RoleCustomer}
	assert.False(t, transitionAllowed(other, model.BookingCancelled, bookingUser, hotelOwner))
	otherOwner := guard.Identity{UserID: 78, Role: guard.RoleOwner}
	assert.False(t, transitionAllowed(otherOwner, model.BookingCancelled, bookingUser, hotelOwner))
}
