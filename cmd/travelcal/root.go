package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkordes/travel-calendar/internal/app"
	"github.com/pkordes/travel-calendar/internal/config"
)

// cli carries the streams and clock shared by every subcommand.
type cli struct {
	in      io.Reader
	out     io.Writer
	errOut  io.Writer
	clock   func() time.Time
	verbose bool
	log     *slog.Logger
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "travelcal",
		Short: "Plan trips on a month calendar",
		Long: `travelcal keeps a list of travel plans and shows them on a month calendar.
Plans are stored in a local file by default; set STORAGE_BACKEND=postgres and
DATABASE_URL to share them with a server. CONFIG_FILE may name a YAML file with
the same settings.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if c.verbose {
				level = slog.LevelDebug
			}
			c.log = slog.New(slog.NewTextHandler(c.errOut, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(c.log)
		},
	}
	root.SetIn(c.in)
	root.SetOut(c.out)
	root.SetErr(c.errOut)
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newServeCmd(c),
		newMonthCmd(c),
		newListCmd(c),
		newAddCmd(c),
		newEditCmd(c),
		newDeleteCmd(c),
		newLinkCmd(c),
		newExportCmd(c),
		newHashPasswordCmd(c),
	)
	return root
}

// open loads the configuration and the stored travels. The caller closes the App.
func (c *cli) open(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	a, err := app.Open(ctx, cfg, c.log, app.Options{Clock: c.clock})
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.StorageBackend, err)
	}
	return a, nil
}
