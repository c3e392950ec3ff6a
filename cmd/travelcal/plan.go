package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkordes/travel-calendar/internal/domain"
	"github.com/pkordes/travel-calendar/internal/planner"
)

// planFlags maps command-line flags onto editor fields.
var planFlags = []struct {
	flag, field, usage string
}{
	{"location", planner.FieldLocation, "Destination"},
	{"type", planner.FieldType, "vacation, business, adventure, cultural, family or other"},
	{"start", planner.FieldStartDate, "First day, YYYY-MM-DD"},
	{"end", planner.FieldEndDate, "Last day (inclusive), YYYY-MM-DD"},
	{"date", planner.FieldDate, "Day the plan was made for, YYYY-MM-DD (defaults to --start)"},
	{"accommodation", planner.FieldAccommodation, "Where you stay"},
	{"transportation", planner.FieldTransportation, "How you get there"},
	{"budget", planner.FieldBudget, "Budget as a non-negative number"},
	{"notes", planner.FieldNotes, "Free-form notes"},
}

func addPlanFlags(cmd *cobra.Command) {
	for _, f := range planFlags {
		cmd.Flags().String(f.flag, "", f.usage)
	}
}

// changedFields returns the editor fields whose flags were given.
func changedFields(cmd *cobra.Command) map[string]string {
	values := map[string]string{}
	for _, f := range planFlags {
		if cmd.Flags().Changed(f.flag) {
			v, _ := cmd.Flags().GetString(f.flag)
			values[f.field] = v
		}
	}
	return values
}

func newAddCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add --location PLACE --start YYYY-MM-DD --end YYYY-MM-DD",
		Short: "Add a travel plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values := changedFields(cmd)
			date := values[planner.FieldDate]
			if date == "" {
				date = values[planner.FieldStartDate]
			}
			if date == "" {
				return errors.New("--start is required")
			}

			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			before, err := a.Travels.List(cmd.Context())
			if err != nil {
				return err
			}

			cmds := append([]planner.Command{planner.OpenCreate{Date: date}}, planner.FormCommands(values)...)
			view, err := a.Planner.DispatchAll(cmd.Context(), append(cmds, planner.SubmitPlan{})...)
			if err != nil {
				return submitError(view, err)
			}

			for _, li := range view.Travels {
				if !slices.ContainsFunc(before, func(t domain.Travel) bool { return t.ID == li.ID }) {
					fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s (%s)\n", li.Glyph, li.Location, li.ID)
				}
			}
			return nil
		},
	}
	addPlanFlags(cmd)
	return cmd
}

func newEditCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change fields of a travel plan; unset flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			cmds := append([]planner.Command{planner.OpenEdit{ID: args[0]}}, planner.FormCommands(changedFields(cmd))...)
			view, err := a.Planner.DispatchAll(cmd.Context(), append(cmds, planner.SubmitPlan{})...)
			if err != nil {
				return submitError(view, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", args[0])
			return nil
		},
	}
	addPlanFlags(cmd)
	return cmd
}

// submitError describes a rejected plan with one line per failing field.
func submitError(view planner.View, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("no travel plan with that id: %w", err)
	}
	if len(view.Editor.Errors) == 0 {
		return err
	}
	names := make([]string, 0, len(view.Editor.Errors))
	for name := range view.Editor.Errors {
		names = append(names, name)
	}
	slices.Sort(names)
	var b strings.Builder
	b.WriteString("invalid travel plan:")
	for _, name := range names {
		fmt.Fprintf(&b, "\n  %s %s", name, view.Editor.Errors[name])
	}
	return errors.New(b.String())
}
