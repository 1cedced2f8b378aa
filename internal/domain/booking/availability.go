package booking

import "time"

// IsAvailable reports whether an accommodation can be reserved for the
// candidate [start, end] range given the bulk booking snapshot.
//
// A zero start or end means an unfiltered browse and is always available.
// Intervals are compared endpoint-inclusive: a candidate starting the day an
// existing booking ends is still blocked, so same-day turnover is not
// supported. The check does not look at booking status; cancelled bookings
// block just like confirmed ones.
func IsAvailable(accommodationID string, start, end time.Time, bookings []Booking) bool {
	if start.IsZero() || end.IsZero() {
		return true
	}
	for _, b := range bookings {
		if b.AccommodationID != accommodationID {
			continue
		}
		if overlapsInclusive(start, end, b.StartDate, b.EndDate) {
			return false
		}
	}
	return true
}

// overlapsInclusive is the three-clause inclusive intersection test: the
// candidate start falls inside the booking, the candidate end falls inside
// the booking, or the candidate fully contains the booking.
func overlapsInclusive(candStart, candEnd, bookStart, bookEnd time.Time) bool {
	if !candStart.After(bookEnd) && !candStart.Before(bookStart) {
		return true
	}
	if !candEnd.After(bookEnd) && !candEnd.Before(bookStart) {
		return true
	}
	if !candStart.After(bookStart) && !candEnd.Before(bookEnd) {
		return true
	}
	return false
}
