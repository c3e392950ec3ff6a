// Package calendar builds the month grid shown by the planner: leading
// previous-month days, the month itself, trailing next-month days, with
// today and travel days marked.
package calendar

import (
	"time"

	"github.com/pkordes/travel-calendar/internal/domain"
)

// Cell is one rendered calendar day.
type Cell struct {
	Date       string `json:"date"` // YYYY-MM-DD, used to open the editor
	Day        int    `json:"day"`
	OtherMonth bool   `json:"other_month"`
	Today      bool   `json:"today"`
	HasTravel  bool   `json:"has_travel"`
}

// Grid is the visible month. len(Cells) is always a multiple of 7 and the
// first cell is a Sunday.
type Grid struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Cells []Cell     `json:"cells"`
}

// Build computes the grid for year/month. today is a calendar date from the
// caller's clock; travels are checked for inclusive range containment on
// current-month days only.
func Build(year int, month time.Month, today time.Time, travels []domain.Travel) Grid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// Day 0 of the next month is the last day of this one.
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	daysInPrev := time.Date(year, month, 0, 0, 0, 0, 0, time.UTC).Day()
	leading := int(first.Weekday())
	today = domain.DateOf(today)

	cells := make([]Cell, 0, 42)

	for i := leading - 1; i >= 0; i-- {
		d := daysInPrev - i
		cells = append(cells, otherMonthCell(time.Date(year, month-1, d, 0, 0, 0, 0, time.UTC)))
	}

	ranges := parseRanges(travels)
	for d := 1; d <= daysInMonth; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
		cells = append(cells, Cell{
			Date:      domain.FormatDate(date),
			Day:       d,
			Today:     date.Equal(today),
			HasTravel: ranges.contain(date),
		})
	}

	trailing := (7 - len(cells)%7) % 7
	for d := 1; d <= trailing; d++ {
		cells = append(cells, otherMonthCell(time.Date(year, month+1, d, 0, 0, 0, 0, time.UTC)))
	}

	return Grid{Year: year, Month: month, Cells: cells}
}

func otherMonthCell(date time.Time) Cell {
	return Cell{Date: domain.FormatDate(date), Day: date.Day(), OtherMonth: true}
}

// Title renders the month header, e.g. "February 2024".
func (g Grid) Title() string {
	return g.first().Format("January 2006")
}

// Prev returns the year and month before the grid's month.
func (g Grid) Prev() (int, time.Month) {
	return Shift(g.Year, g.Month, -1)
}

// Next returns the year and month after the grid's month.
func (g Grid) Next() (int, time.Month) {
	return Shift(g.Year, g.Month, 1)
}

// Weeks splits the cells into rows of seven.
func (g Grid) Weeks() [][]Cell {
	weeks := make([][]Cell, 0, len(g.Cells)/7)
	for i := 0; i+7 <= len(g.Cells); i += 7 {
		weeks = append(weeks, g.Cells[i:i+7])
	}
	return weeks
}

// MonthDays returns only the current-month cells.
func (g Grid) MonthDays() []Cell {
	var out []Cell
	for _, c := range g.Cells {
		if !c.OtherMonth {
			out = append(out, c)
		}
	}
	return out
}

func (g Grid) first() time.Time {
	return time.Date(g.Year, g.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Shift moves year/month by delta months using calendar normalisation,
// so December + 1 is January of the next year.
func Shift(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

type dateRange struct{ start, end time.Time }

type rangeSet []dateRange

func parseRanges(travels []domain.Travel) rangeSet {
	out := make(rangeSet, 0, len(travels))
	for _, t := range travels {
		start, end, ok := t.DateRange()
		if !ok {
			continue
		}
		out = append(out, dateRange{start: start, end: end})
	}
	return out
}

func (rs rangeSet) contain(d time.Time) bool {
	for _, r := range rs {
		if !d.Before(r.start) && !d.After(r.end) {
			return true
		}
	}
	return false
}
