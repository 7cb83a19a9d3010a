package root

import (
	"context"

	"github.com/spf13/cobra"

	"turf/internal/tui"
)

func newPatrolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patrol",
		Short: "Play a 30-second patrol session (2 energy)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunPatrol(ctx, svc, cmd.OutOrStdout())
		},
	}
	return cmd
}

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the TUI dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, districts, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunBoard(ctx, svc, districts, cmd.OutOrStdout())
		},
	}
	return cmd
}
