package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the storage format for every date field of a Travel.
const DateLayout = "2006-01-02"

// compactLayout is the 8-digit all-day format used by calendar services.
const compactLayout = "20060102"

// ParseDate parses a YYYY-MM-DD string into a calendar date at midnight UTC.
// Keeping every calendar date in UTC means day arithmetic never crosses a DST
// transition.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrValidation, s)
	}
	return t, nil
}

// DateOf returns the calendar date of t in t's own location, as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate formats a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatCompact formats a calendar date as YYYYMMDD.
func FormatCompact(t time.Time) string {
	return t.Format(compactLayout)
}

// FormatDisplay renders a stored date as "Mar 10, 2024".
// Unparsable input is returned unchanged.
func FormatDisplay(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return s
	}
	return t.Format("Jan 2, 2006")
}

// DaysBetween returns the whole number of days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(DateOf(b).Sub(DateOf(a)).Hours() / 24)
}
