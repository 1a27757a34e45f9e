package utils

import "time"

// dateFormats are the accepted query-parameter date layouts, most specific
// first. Upstream modules send plain YYYY-MM-DD; dashboard clients send
// RFC3339 variants.
var dateFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses a date string, trying multiple formats.
func ParseDate(dateStr string) (time.Time, error) {
	var lastErr error
	for _, format := range dateFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, lastErr
}

// DayStart returns t truncated to 00:00:00 in its own location.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayEnd returns the last nanosecond of t's day.
func DayEnd(t time.Time) time.Time {
	return DayStart(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// DaysInclusive counts calendar days from start to end, both endpoints
// included. Endpoints are compared as dates in UTC so a DST transition
// inside the range cannot shorten or stretch a day. Returns 0 when start
// is after end.
func DaysInclusive(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	if s.After(e) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}
