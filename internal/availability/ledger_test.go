package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func stay(inDay, outDay int) Interval {
	return Interval{CheckIn: date(2026, 6, inDay), CheckOut: date(2026, 6, outDay)}
}

func hold(inDay, outDay, units int) Hold {
	return Hold{Interval: stay(inDay, outDay), Units: units}
}

func TestIntervalContains(t *testing.T) {
	iv := stay(10, 13)
	assert.True(t, iv.Contains(date(2026, 6, 10)))
	assert.True(t, iv.Contains(date(2026, 6, 12)))
	// Check-out night is not occupied.
	assert.False(t, iv.Contains(date(2026, 6, 13)))
	assert.False(t, iv.Contains(date(2026, 6, 9)))
}

func TestNightLoads(t *testing.T) {
	holds := []Hold{hold(10, 12, 2), hold(11, 14, 1)}
	loads := NightLoads(stay(10, 14), holds)
	assert.Equal(t, []int{2, 3, 1, 1}, loads)
}

func TestNightLoadsEmptyStay(t *testing.T) {
	assert.Empty(t, NightLoads(stay(10, 10), []Hold{hold(10, 12, 1)}))
}

func TestFitsWhenRoomEmpty(t *testing.T) {
	assert.True(t, Fits(3, 3, stay(10, 13), nil))
}

func TestFitsRejectsOverbooking(t *testing.T) {
	holds := []Hold{hold(10, 13, 2)}
	assert.True(t, Fits(3, 1, stay(10, 13), holds))
	assert.False(t, Fits(3, 2, stay(10, 13), holds))
}

func TestFitsSingleNightOverlapBlocks(t *testing.T) {
	// A one-night overlap on the 12th is enough to reject the request.
	holds := []Hold{hold(12, 15, 3)}
	assert.False(t, Fits(3, 1, stay(10, 13), holds))
	assert.True(t, Fits(3, 1, stay(10, 12), holds))
}

func TestFitsBackToBackStays(t *testing.T) {
	// Check-out day equals check-in day: the intervals do not overlap.
	holds := []Hold{hold(10, 13, 3)}
	assert.True(t, Fits(3, 3, stay(13, 16), holds))
}

func TestFitsRejectsBadRequests(t *testing.T) {
	assert.False(t, Fits(3, 0, stay(10, 13), nil))
	assert.False(t, Fits(3, -1, stay(10, 13), nil))
	assert.False(t, Fits(3, 4, stay(10, 13), nil))
}

func TestFitsInvariantHoldsPerNight(t *testing.T) {
	// Whatever Fits admits must keep committed+requested <= total on
	// every night of the stay.
	holds := []Hold{hold(10, 12, 1), hold(11, 14, 1), hold(13, 15, 1)}
	total := 3
	req := 1
	if assert.True(t, Fits(total, req, stay(10, 15), holds)) {
		for _, load := range NightLoads(stay(10, 15), holds) {
			assert.LessOrEqual(t, load+req, total)
		}
	}
}
