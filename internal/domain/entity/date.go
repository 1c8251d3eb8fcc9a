package entity

import (
	"strings"
	"time"

	domainerror "github.com/habit-tracker/tracker/internal/domain/error"
)

// DateLayout is the calendar date format used for display and serialization.
const DateLayout = "2006-01-02"

// hoursPerDay converts a duration between two normalized dates into whole days.
const hoursPerDay = 24

// MinDate is the earliest supported date. 0001-01-01 normalizes to the zero
// time.Time, which marks an unset date.
var MinDate = time.Date(1, time.January, 2, 0, 0, 0, 0, time.UTC)

// NormalizeDate drops the time of day and location of t, keeping its calendar day.
// The result is midnight UTC so that day arithmetic is exact.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a normalized date.
// Dates before MinDate are rejected.
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, domainerror.NewInvalidArgumentError(
			domainerror.ErrCodeInvalidDateFormat,
			"date '"+value+"' must use the YYYY-MM-DD format",
		)
	}
	date := NormalizeDate(parsed)
	if date.Before(MinDate) {
		return time.Time{}, domainerror.NewInvalidArgumentError(
			domainerror.ErrCodeInvalidDateFormat,
			"date '"+value+"' must be on or after "+FormatDate(MinDate),
		)
	}
	return date, nil
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// daysBetween returns the number of calendar days from a to b for normalized dates.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours()) / hoursPerDay
}

// sameMonth reports whether a and b fall in the same calendar year and month.
func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
