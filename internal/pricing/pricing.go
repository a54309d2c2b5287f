// Package pricing contains the pure pricing engine for room bookings.
// It performs no I/O and has no dependencies beyond the standard
// library; identical inputs always produce identical breakdowns. All
// amounts are handled in currency minor units (cents) so arithmetic
// stays exact; ToCents converts decimal input at the API boundary.
package pricing

import (
	"math"
	"time"
)

// Breakdown is the priced result of a stay. BaseCents covers one
// adult per reserved unit; AdultSurchargeCents covers adults beyond
// that ratio. The breakdown is snapshotted onto the booking row at
// creation time and never recomputed.
type Breakdown struct {
	Nights              int   `json:"nights"`
	BaseCents           int64 `json:"base_cents"`
	AdultSurchargeCents int64 `json:"adult_surcharge_cents"`
	TotalCents          int64 `json:"total_cents"`
}

// Nights returns the number of whole nights in the half-open interval
// [checkIn, checkOut). Both arguments are truncated to UTC midnight
// before the difference is taken, so time-of-day noise in the inputs
// cannot change the count. A non-positive span is reported as 0 and
// must be rejected by the caller; the engine never prices a
// zero-length stay.
func Nights(checkIn, checkOut time.Time) int {
	n := int(Midnight(checkOut).Sub(Midnight(checkIn)).Hours() / 24)
	if n <= 0 {
		return 0
	}
	return n
}

// Midnight truncates t to 00:00:00 UTC on its calendar date.
func Midnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Quote prices a stay of the given number of nights. rateCents is the
// nightly base rate per unit and surchargeCents the nightly rate per
// additional adult beyond one per reserved unit. Negative or zero
// rates are caller errors validated upstream; Quote does not clamp
// them.
func Quote(rateCents, surchargeCents int64, nights, unitCount, adultCount int) Breakdown {
	extraAdults := adultCount - unitCount
	if extraAdults < 0 {
		extraAdults = 0
	}
	base := int64(nights) * rateCents * int64(unitCount)
	surcharge := int64(nights) * surchargeCents * int64(extraAdults)
	return Breakdown{
		Nights:              nights,
		BaseCents:           base,
		AdultSurchargeCents: surcharge,
		TotalCents:          base + surcharge,
	}
}

// ToCents converts a decimal currency amount (e.g. 100.00) to minor
// units, rounding half away from zero. It is used when accepting
// rates from clients so everything stored and computed downstream is
// an exact integer. Exact half cents like 1.005 have no float64
// representation (1.005 is stored just below the half), so the scaled
// value is first snapped to a sub-cent grid; without that, rounding
// would land on the wrong cent.
func ToCents(amount float64) int64 {
	scaled := amount * 100
	scaled = math.Round(scaled*1e6) / 1e6
	return int64(math.Round(scaled))
}

// FromCents converts minor units back to a decimal amount for
// presentation.
func FromCents(cents int64) float64 {
	return float64(cents) / 100
}
