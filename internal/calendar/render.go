package calendar

import (
	"fmt"
	"io"
	"strings"
)

var weekdayHeader = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// Render writes a plain-text month grid for terminals.
//
//	[12]  day with travel
//	 12*  today
//	{12}  today, with travel
//	(12)  previous or next month
func Render(w io.Writer, g Grid) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", g.Title())
	for _, h := range weekdayHeader {
		fmt.Fprintf(&b, " %-4s", h)
	}
	b.WriteString("\n")

	for _, week := range g.Weeks() {
		for _, c := range week {
			b.WriteString(" ")
			b.WriteString(cellText(c))
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func cellText(c Cell) string {
	switch {
	case c.OtherMonth:
		return fmt.Sprintf("(%2d)", c.Day)
	case c.HasTravel && c.Today:
		return fmt.Sprintf("{%2d}", c.Day)
	case c.HasTravel:
		return fmt.Sprintf("[%2d]", c.Day)
	case c.Today:
		return fmt.Sprintf(" %2d*", c.Day)
	default:
		return fmt.Sprintf(" %2d ", c.Day)
	}
}
