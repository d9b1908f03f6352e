package dateutil

import (
	"time"
)

// MonthStart truncates a time to the first instant of its calendar month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// AddMonths shifts a month-start timestamp by n calendar months.
// Using month starts avoids day-of-month overflow (Jan 31 + 1 month).
func AddMonths(t time.Time, n int) time.Time {
	return MonthStart(t).AddDate(0, n, 0)
}

// MonthsBetween counts whole calendar months from a to b. Negative when
// b precedes a.
func MonthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// SeasonalIndex maps a calendar month to [0, 11] for seasonal curves,
// with January = 0.
func SeasonalIndex(t time.Time) int {
	return int(t.Month()) - 1
}
