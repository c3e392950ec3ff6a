package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkordes/travel-calendar/internal/export"
)

func newExportCmd(c *cli) *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every travel plan as JSON, CSV or iCalendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "csv" && format != "ics" {
				return fmt.Errorf("--format must be one of json, csv, ics: %q", format)
			}

			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			switch format {
			case "ics":
				travels, err := a.Export.Travels(cmd.Context())
				if err != nil {
					return err
				}
				_, err = io.WriteString(w, export.ICS(travels, c.clock()))
				return err
			case "csv":
				rows, err := a.Export.Export(cmd.Context())
				if err != nil {
					return err
				}
				return export.WriteCSV(w, rows)
			default:
				travels, err := a.Export.Travels(cmd.Context())
				if err != nil {
					return err
				}
				encoder := json.NewEncoder(w)
				encoder.SetIndent("", "  ")
				return encoder.Encode(travels)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "json, csv or ics")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}
