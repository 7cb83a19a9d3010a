package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"turf/internal/engine"
	"turf/internal/ui"
)

func newBoostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boost",
		Short: "Throw a super contribution at the season (3 energy)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			pts, err := svc.Boost(ctx)
			if err != nil {
				return err
			}
			cmd.Println(ui.Award(pts, "Super contribution"))
			return nil
		},
	}
	return cmd
}

func newSeasonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "season",
		Short: "Show the season standings (cosmetic)",
		Long: `Show the season standings.

The table is a seeded daily demo plus your own contribution; without a
server nothing aggregates other players for real.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, districts, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconRocket, fmt.Sprintf("Season • day %d", engine.SeasonDay(time.Now()))))
			for i, s := range svc.SeasonStandings(districts) {
				line := fmt.Sprintf("%2d. %s %-24s %6d", i+1, s.District.Icon, s.District.Name, s.Points)
				if s.Mine {
					line = ui.Gold.Render(line + "  ← you")
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	return cmd
}
