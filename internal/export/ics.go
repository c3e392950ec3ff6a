package export

import (
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/pkordes/travel-calendar/internal/domain"
)

const (
	productID    = "-//travel-calendar//EN"
	calendarName = "Travel plans"
	uidDomain    = "@travel-calendar"
)

// ICS renders travels as an iCalendar document with one all-day VEVENT per
// record. UIDs derive from the record ID so re-imports update, not duplicate.
// Records with an unparsable date range are skipped.
func ICS(travels []domain.Travel, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(calendarName)

	for _, t := range travels {
		start, end, ok := t.DateRange()
		if !ok {
			continue
		}
		ev := cal.AddEvent(t.ID + uidDomain)
		ev.SetDtStampTime(now.UTC())
		ev.SetAllDayStartAt(start)
		ev.SetAllDayEndAt(end.AddDate(0, 0, 1))
		ev.SetSummary(Title(t))
		ev.SetDescription(Details(t))
		ev.SetLocation(t.Location)
	}

	return cal.Serialize()
}
