package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkordes/travel-calendar/internal/calendar"
	"github.com/pkordes/travel-calendar/internal/planner"
)

func newMonthCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Print a month calendar with travel days marked",
		Long: `Prints the month grid. [12] marks a travel day, 12* is today,
{12} is a travel day that is today, and (12) belongs to a neighbouring month.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			var cmds []planner.Command
			if len(args) == 1 {
				m, err := time.Parse("2006-01", args[0])
				if err != nil {
					return fmt.Errorf("month must be YYYY-MM: %q", args[0])
				}
				cmds = append(cmds, planner.GoToMonth{Year: m.Year(), Month: m.Month()})
			}
			view, err := a.Planner.DispatchAll(cmd.Context(), cmds...)
			if err != nil {
				return err
			}
			return calendar.Render(cmd.OutOrStdout(), view.Grid)
		},
	}
}
