package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"turf/internal/ui"
)

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Show sync state after the startup reconcile",
		Long: `Show sync state. Reconciliation itself runs on every start: the local
and remote records are compared and the one with the higher total wins.
This command just reports where things landed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			rec := svc.Record()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconCloud, "Sync"))
			fmt.Fprintln(out, ui.LabelValue("Local total", rec.ScoreTotal))
			fmt.Fprintln(out, ui.LabelValue("Last active day", rec.LastDay))
			fmt.Fprintln(out, ui.Muted.Render("Every save mirrors out best-effort; a higher remote total replaces local state on next start."))
			return nil
		},
	}
	return cmd
}

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Wipe all progress and start over",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to wipe progress without --yes")
			}
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.Reset(ctx); err != nil {
				return err
			}
			cmd.Println(ui.Warn.Render(ui.IconWarn + " Progress wiped."))
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the wipe")
	return cmd
}
