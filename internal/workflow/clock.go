package workflow

import "time"

// ParseClock converts an HH:MM clock time to minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, Invalid("scheduled_time", "must be HH:MM")
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ParseDate validates a YYYY-MM-DD calendar date.
func ParseDate(s string) error {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return Invalid("scheduled_date", "must be YYYY-MM-DD")
	}
	return nil
}

// Overlaps reports whether the half-open minute intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Intervals sharing a boundary do not overlap, so
// back-to-back bookings are allowed.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}
