package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
	assert.Equal(t, 3, Nights(date(2026, 3, 10), date(2026, 3, 13)))
	assert.Equal(t, 1, Nights(date(2026, 3, 10), date(2026, 3, 11)))
	// Same day and inverted intervals have no nights.
	assert.Equal(t, 0, Nights(date(2026, 3, 10), date(2026, 3, 10)))
	assert.Equal(t, 0, Nights(date(2026, 3, 13), date(2026, 3, 10)))
}

func TestNightsIgnoresTimeOfDay(t *testing.T) {
	in := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)
	out := time.Date(2026, 3, 12, 0, 15, 0, 0, time.UTC)
	assert.Equal(t, 2, Nights(in, out))
}

func TestQuoteBaseOnly(t *testing.T) {
	// 2 nights x 100.00 x 2 units, adults within one-per-unit.
	b := Quote(10000, 2500, 2, 2, 2)
	assert.Equal(t, int64(40000), b.BaseCents)
	assert.Equal(t, int64(0), b.AdultSurchargeCents)
	assert.Equal(t, int64(40000), b.TotalCents)
}

func TestQuoteWithSurcharge(t *testing.T) {
	// 3 nights x 80.00 x 1 unit, 3 adults: 2 extra adults pay 15.00/night.
	b := Quote(8000, 1500, 3, 1, 3)
	assert.Equal(t, int64(24000), b.BaseCents)
	assert.Equal(t, int64(9000), b.AdultSurchargeCents)
	assert.Equal(t, int64(33000), b.TotalCents)
	assert.Equal(t, 3, b.Nights)
}

func TestQuoteTwoExtraAdults(t *testing.T) {
	// 2 nights x 100.00 x 1 unit with 3 adults: two extra adults pay
	// 20.00 each per night, 280.00 total.
	b := Quote(10000, 2000, 2, 1, 3)
	assert.Equal(t, int64(20000), b.BaseCents)
	assert.Equal(t, int64(8000), b.AdultSurchargeCents)
	assert.Equal(t, int64(28000), b.TotalCents)
}

func TestQuoteFewerAdultsThanUnits(t *testing.T) {
	// 1 adult in 2 units never produces a negative surcharge.
	b := Quote(10000, 2500, 2, 2, 1)
	assert.Equal(t, int64(0), b.AdultSurchargeCents)
	assert.Equal(t, b.BaseCents, b.TotalCents)
}

func TestQuoteDeterministic(t *testing.T) {
	a := Quote(12345, 678, 7, 3, 5)
	b := Quote(12345, 678, 7, 3, 5)
	assert.Equal(t, a, b)
}

func TestToCents(t *testing.T) {
	assert.Equal(t, int64(10000), ToCents(100.00))
	assert.Equal(t, int64(9999), ToCents(99.99))
	// Half cents round away from zero, even though 1.005 is stored as
	// 1.00499... in float64.
	assert.Equal(t, int64(101), ToCents(1.005))
	assert.Equal(t, int64(-101), ToCents(-1.005))
	assert.Equal(t, int64(268), ToCents(2.675))
	assert.Equal(t, int64(-268), ToCents(-2.675))
	// Float noise near a cent boundary still lands on the cent.
	assert.Equal(t, int64(2675), ToCents(26.75))
	assert.Equal(t, int64(0), ToCents(0))
}

func TestFromCents(t *testing.T) {
	assert.Equal(t, 100.0, FromCents(10000))
	assert.Equal(t, 0.01, FromCents(1))
}

func TestMidnight(t *testing.T) {
	// 18:45 at UTC+1 is 17:45 UTC on the same calendar date.
	got := Midnight(time.Date(2026, 5, 1, 18, 45, 12, 999, time.FixedZone("X", 3600)))
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), got)
}
