package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pkordes/travel-calendar/internal/planner"
)

func newListCmd(c *cli) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List travel plans ordered by start date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			travels, err := a.Travels.List(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(travels)
			}

			if len(travels) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No travel plans yet.")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, t := range travels {
				li := planner.NewListItem(t)
				days := ""
				if li.HasDays {
					days = li.DaysLabel()
				}
				fmt.Fprintf(tw, "%s\t%s %s\t%s - %s\t%s\n", t.ID, li.Glyph, t.Location, li.StartDisplay, li.EndDisplay, days)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}
