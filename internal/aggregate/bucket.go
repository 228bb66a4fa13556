package aggregate

import "time"

// TruncMonth truncates a date to the first day of its month.
// Idempotent: TruncMonth(TruncMonth(t)) == TruncMonth(t).
func TruncMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// TruncYear truncates a date to January 1st of its year.
func TruncYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

// MonthsBetween returns the calendar month difference from -> to,
// ignoring the day component (2014-01-31 -> 2014-02-01 is one month).
func MonthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// YearsBetween returns the calendar year difference from -> to,
// ignoring month and day.
func YearsBetween(from, to time.Time) int {
	return to.Year() - from.Year()
}
