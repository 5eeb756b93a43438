// Package dateutil holds the date-only parsing, formatting and arithmetic
// shared by the domain packages. All record dates are calendar dates; time of
// day never participates in comparisons.
package dateutil

import (
	"database/sql"
	"time"
)

const (
	// DateLayout is the wire format for calendar dates.
	DateLayout = "2006-01-02"
	// DateTimeLayout is the wire format for row timestamps.
	DateTimeLayout = "2006-01-02 15:04:05"
)

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatDateTime renders t as YYYY-MM-DD HH:MM:SS.
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// Midnight truncates t to the start of its calendar day in UTC.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole calendar days from -> to. Negative when to
// precedes from.
func DaysBetween(from, to time.Time) int {
	return int(Midnight(to).Sub(Midnight(from)).Hours() / 24)
}

// YearsBetween returns whole years from birth to today, counting a year only
// once its anniversary has passed.
func YearsBetween(birth, today time.Time) int {
	years := today.Year() - birth.Year()
	if today.Month() < birth.Month() ||
		(today.Month() == birth.Month() && today.Day() < birth.Day()) {
		years--
	}
	return years
}

// NullDateString renders an optional date as a *string for projections.
func NullDateString(t sql.NullTime) *string {
	if !t.Valid {
		return nil
	}
	s := FormatDate(t.Time)
	return &s
}
