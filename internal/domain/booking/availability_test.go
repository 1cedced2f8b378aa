package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func juneBooking(accommodationID string) Booking {
	return Booking{
		ID:              "b-1",
		AccommodationID: accommodationID,
		StartDate:       day(2024, time.June, 1),
		EndDate:         day(2024, time.June, 10),
		Status:          StatusConfirmed,
		TotalPrice:      1000,
	}
}

func TestIsAvailable_NoDatesAlwaysAvailable(t *testing.T) {
	bookings := []Booking{juneBooking("villa-1")}

	assert.True(t, IsAvailable("villa-1", time.Time{}, time.Time{}, bookings))
	assert.True(t, IsAvailable("villa-1", day(2024, time.June, 1), time.Time{}, bookings))
	assert.True(t, IsAvailable("villa-1", time.Time{}, day(2024, time.June, 10), bookings))
}

func TestIsAvailable_SelfOverlapUnavailable(t *testing.T) {
	bookings := []Booking{juneBooking("villa-1")}

	available := IsAvailable("villa-1", day(2024, time.June, 1), day(2024, time.June, 10), bookings)

	assert.False(t, available)
}

func TestIsAvailable_SameDayTurnoverBlocked(t *testing.T) {
	bookings := []Booking{juneBooking("villa-1")}

	// Checking in the day the existing booking ends is blocked under the
	// inclusive endpoint rule.
	assert.False(t, IsAvailable("villa-1", day(2024, time.June, 10), day(2024, time.June, 15), bookings))
	// Symmetric case: checking out the day the existing booking starts.
	assert.False(t, IsAvailable("villa-1", day(2024, time.May, 25), day(2024, time.June, 1), bookings))
}

func TestIsAvailable_DisjointRangeAvailable(t *testing.T) {
	bookings := []Booking{juneBooking("villa-1")}

	assert.True(t, IsAvailable("villa-1", day(2024, time.June, 12), day(2024, time.June, 15), bookings))
	assert.True(t, IsAvailable("villa-1", day(2024, time.May, 20), day(2024, time.May, 30), bookings))
}

func TestIsAvailable_CandidateContainsBooking(t *testing.T) {
	bookings := []Booking{juneBooking("villa-1")}

	available := IsAvailable("villa-1", day(2024, time.May, 25), day(2024, time.June, 20), bookings)

	assert.False(t, available)
}

func TestIsAvailable_OtherAccommodationIgnored(t *testing.T) {
	bookings := []Booking{juneBooking("villa-2")}

	available := IsAvailable("villa-1", day(2024, time.June, 1), day(2024, time.June, 10), bookings)

	assert.True(t, available)
}

func TestIsAvailable_CancelledBookingStillBlocks(t *testing.T) {
	b := juneBooking("villa-1")
	b.Status = StatusCancelled

	available := IsAvailable("villa-1", day(2024, time.June, 5), day(2024, time.June, 7), []Booking{b})

	assert.False(t, available)
}

func TestIsAvailable_EmptySnapshotFailsOpen(t *testing.T) {
	available := IsAvailable("villa-1", day(2024, time.June, 1), day(2024, time.June, 10), nil)

	assert.True(t, available)
}
