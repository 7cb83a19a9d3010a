package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"turf/internal/catalog"
	"turf/internal/engine"
	"turf/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show your district, scores, streak and energy",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, districts, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			rec := svc.Record()
			d := catalog.DistrictByID(districts, rec.DistrictID)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Turf status"))
			if d != nil {
				fmt.Fprintln(out, ui.LabelValue("District", d.Icon+" "+d.Name))
			} else {
				fmt.Fprintln(out, ui.LabelValue("District", ui.Muted.Render("none — run `turf join`")))
			}
			if name := rec.User.DisplayName(); name != "" {
				fmt.Fprintln(out, ui.LabelValue("Player", name))
			}
			fmt.Fprintln(out, ui.LabelValue("Total score", rec.ScoreTotal))
			fmt.Fprintln(out, ui.LabelValue("Today", rec.ScoreToday))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d days", ui.IconFire, rec.Streak)))
			fmt.Fprintln(out, ui.LabelValue("Energy", fmt.Sprintf("%s %d/%d", ui.IconBolt, rec.Energy, engine.MaxEnergy)))
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.H2.Render(ui.IconTrophy+" Bests"))
			fmt.Fprintf(out, "- %s patrol: %d\n", ui.IconPatrol, rec.Best(engine.ActivityPatrol))
			fmt.Fprintf(out, "- %s quiz: %d\n", ui.IconQuiz, rec.Best(engine.ActivityQuiz))
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.Muted.Render(svc.ShareLine(d)))
			return nil
		},
	}
	return cmd
}
