// Package availability implements the availability ledger: the
// derived view of committed room-nights used to admit or reject new
// booking requests. The ledger has no persistence of its own; it is
// recomputed from the set of non-terminal bookings of a room, which
// the repository layer loads inside the same transaction that locks
// the room row. Everything here is pure arithmetic over date
// intervals.
package availability

import (
	"time"

	"github.com/openstay/hotel-room-booking/internal/pricing"
)

// Interval is a half-open stay interval [CheckIn, CheckOut): the
// check-out date itself is not occupied.
type Interval struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// Contains reports whether the calendar night starting at the given
// UTC midnight falls inside the interval.
func (iv Interval) Contains(night time.Time) bool {
	return !night.Before(pricing.Midnight(iv.CheckIn)) && night.Before(pricing.Midnight(iv.CheckOut))
}

// Hold is one booking's claim on room units over an interval. Only
// bookings whose status still holds inventory (PENDING or CONFIRMED)
// may appear here; cancelled bookings release their nights
// immediately and must be excluded by the caller's query.
type Hold struct {
	Interval
	Units int
}

// NightLoads returns, for every night of the requested stay in order,
// the number of units already committed by the given holds. The
// requested stay must be a valid interval (check-out after check-in);
// for an empty interval the result is empty.
func NightLoads(stay Interval, holds []Hold) []int {
	start := pricing.Midnight(stay.CheckIn)
	nights := pricing.Nights(stay.CheckIn, stay.CheckOut)
	loads := make([]int, nights)
	for i := 0; i < nights; i++ {
		night := start.AddDate(0, 0, i)
		for _, h := range holds {
			if h.Contains(night) {
				loads[i] += h.Units
			}
		}
	}
	return loads
}

// Fits reports whether requested additional units are available for
// every night of the stay, given the room's total unit count and the
// holds of all active bookings. The invariant enforced: for every
// night, committed + requested <= totalUnits.
func Fits(totalUnits, requested int, stay Interval, holds []Hold) bool {
	if requested < 1 || requested > totalUnits {
		return false
	}
	for _, load := range NightLoads(stay, holds) {
		if load+requested > totalUnits {
			return false
		}
	}
	return true
}
