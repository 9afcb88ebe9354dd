package stlouisfed

import "time"

// The service's real-time period bounds.
var (
	minRealtimeDate = time.Date(1776, time.July, 4, 0, 0, 0, 0, time.UTC)
	maxRealtimeDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// centralTime is the service's home zone; "today" defaults are taken there
// so a client east of the US does not request a date the service considers
// tomorrow.
var centralTime = func() *time.Location {
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		return time.UTC
	}
	return loc
}()

// today returns the current date in the service's home zone, truncated to
// midnight UTC for comparisons.
func today() time.Time {
	now := time.Now().In(centralTime)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func startOfYear() time.Time {
	return time.Date(today().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

// orToday substitutes today for a zero date.
func orToday(t time.Time) time.Time {
	if t.IsZero() {
		return today()
	}
	return t
}

func orDate(t, fallback time.Time) time.Time {
	if t.IsZero() {
		return fallback
	}
	return t
}

// validateRealtime enforces the service's real-time period rules: the start
// may not precede 1776-07-04, the end may not lie in the future, and the
// period may not be inverted.
func validateRealtime(start, end time.Time) error {
	if start.Before(minRealtimeDate) {
		return NewDateRangeError("realtime_start", start, minRealtimeDate)
	}
	if end.After(today()) && !end.Equal(maxRealtimeDate) {
		return NewDateRangeError("realtime_end", end, today())
	}
	if start.After(end) {
		return NewDateRangeError("realtime_start", start, end)
	}
	return nil
}
