package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkordes/travel-calendar/internal/planner"
)

func newLinkCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "link ID",
		Short: "Print the Google Calendar link for a travel plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			view, err := a.Planner.Dispatch(cmd.Context(), planner.ExportPlan{ID: args[0]})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), view.ExportURL)
			return nil
		},
	}
}
