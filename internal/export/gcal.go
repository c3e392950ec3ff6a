// Package export turns travel records into formats other calendar tools
// understand: a Google Calendar "create event" link, an iCalendar feed, and
// a flat CSV table.
package export

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pkordes/travel-calendar/internal/domain"
)

// DefaultGoogleCalendarBase is the event-template endpoint of Google Calendar.
const DefaultGoogleCalendarBase = "https://www.google.com/calendar/render"

// Title is the event title used by every export format.
func Title(t domain.Travel) string {
	return "Trip to " + t.Location
}

// Details is the event description used by every export format.
func Details(t domain.Travel) string {
	return "Type: " + string(t.Type) + "\n" +
		"Accommodation: " + orDefault(t.Accommodation, "N/A") + "\n" +
		"Transportation: " + orDefault(t.Transportation, "N/A") + "\n" +
		"Notes: " + t.Notes
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// AllDayRange returns the start and the exclusive end of the all-day event:
// the stored end date is inclusive, so one day is added.
func AllDayRange(t domain.Travel) (start, endExclusive string, err error) {
	s, e, ok := t.DateRange()
	if !ok {
		return "", "", fmt.Errorf("%w: travel %q has an invalid date range", domain.ErrValidation, t.ID)
	}
	return domain.FormatCompact(s), domain.FormatCompact(e.AddDate(0, 0, 1)), nil
}

// GoogleCalendarURL builds the deep link that opens a pre-filled all-day event.
// base defaults to DefaultGoogleCalendarBase. The link is assembled in a fixed
// parameter order with every value percent-encoded (spaces as %20).
func GoogleCalendarURL(base string, t domain.Travel) (string, error) {
	if base == "" {
		base = DefaultGoogleCalendarBase
	}
	start, end, err := AllDayRange(t)
	if err != nil {
		return "", fmt.Errorf("export.GoogleCalendarURL: %w", err)
	}

	var b strings.Builder
	b.WriteString(base)
	b.WriteString("?action=TEMPLATE")
	b.WriteString("&text=" + escape(Title(t)))
	b.WriteString("&dates=" + start + "/" + end)
	b.WriteString("&details=" + escape(Details(t)))
	b.WriteString("&location=" + escape(t.Location))
	return b.String(), nil
}

// escape percent-encodes a query component with %20 for spaces.
// url.QueryEscape already turns a literal '+' into %2B, so every remaining
// '+' is an encoded space.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
