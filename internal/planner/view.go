package planner

import (
	"context"
	"fmt"

	"github.com/pkordes/travel-calendar/internal/calendar"
	"github.com/pkordes/travel-calendar/internal/domain"
)

// View is everything a renderer needs after a command: the month grid, the
// sorted travel list and the editor.
type View struct {
	Grid      calendar.Grid
	Travels   []ListItem
	Editor    Editor
	ExportURL string
}

// ListItem is one travel card of the list view.
type ListItem struct {
	domain.Travel
	Glyph        string
	StartDisplay string
	EndDisplay   string
	// Days is the inclusive duration; HasDays is false for unparsable ranges.
	Days    int
	HasDays bool
}

// DaysLabel renders "3 days" or "1 day".
func (li ListItem) DaysLabel() string {
	if li.Days > 1 {
		return fmt.Sprintf("%d days", li.Days)
	}
	return fmt.Sprintf("%d day", li.Days)
}

// NewListItem derives display values for t.
func NewListItem(t domain.Travel) ListItem {
	days, ok := t.DurationDays()
	return ListItem{
		Travel:       t,
		Glyph:        t.Glyph(),
		StartDisplay: domain.FormatDisplay(t.StartDate),
		EndDisplay:   domain.FormatDisplay(t.EndDate),
		Days:         days,
		HasDays:      ok,
	}
}

// render builds the view from current state. It runs with c.mu held.
func (c *Controller) render(ctx context.Context) (View, error) {
	travels, err := c.travels.List(ctx)
	if err != nil {
		return View{}, fmt.Errorf("planner.render: %w", err)
	}

	items := make([]ListItem, len(travels))
	for i, t := range travels {
		items[i] = NewListItem(t)
	}

	return View{
		Grid:    calendar.Build(c.state.Year, c.state.Month, domain.DateOf(c.clock()), travels),
		Travels: items,
		Editor:  c.state.Editor.snapshot(),
	}, nil
}
