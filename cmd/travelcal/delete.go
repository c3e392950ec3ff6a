package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkordes/travel-calendar/internal/planner"
)

func newDeleteCmd(c *cli) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a travel plan after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			t, err := a.Travels.GetByID(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("no travel plan with that id: %w", err)
			}

			if !yes {
				li := planner.NewListItem(t)
				fmt.Fprintf(cmd.OutOrStdout(), "Delete %s %s (%s - %s)? (y/N): ", li.Glyph, t.Location, li.StartDisplay, li.EndDisplay)
				response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				response = strings.TrimSpace(strings.ToLower(response))
				if response != "y" && response != "yes" {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			if _, err := a.Planner.Dispatch(cmd.Context(), planner.DeletePlan{ID: t.ID, Confirmed: true}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", t.ID)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")
	return cmd
}
