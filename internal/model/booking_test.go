package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBookingStatus(t *testing.T) {
	got, ok := ParseBookingStatus(" confirmed ")
	assert.True(t, ok)
	assert.Equal(t, BookingConfirmed, got)

	_, ok = ParseBookingStatus("REFUNDED")
	assert.False(t, ok)
	_, ok = ParseBookingStatus("")
	assert.False(t, ok)
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		want     bool
	}{
		{BookingPending, BookingConfirmed, true},
		{BookingPending, BookingCancelled, true},
		{BookingConfirmed, BookingCancelled, true},
		{BookingConfirmed, BookingPending, false},
		{BookingCancelled, BookingPending, false},
		{BookingCancelled, BookingConfirmed, false},
		// Self-transitions are rejected; cancelling twice must fail
		// rather than release inventory twice.
		{BookingPending, BookingPending, false},
		{BookingConfirmed, BookingConfirmed, false},
		{BookingCancelled, BookingCancelled, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.from.CanTransition(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestHoldsInventory(t *testing.T) {
	assert.True(t, BookingPending.HoldsInventory())
	assert.True(t, BookingConfirmed.HoldsInventory())
	assert.False(t, BookingCancelled.HoldsInventory())
}
