package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"turf/internal/ui"
)

func newJoinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "join [district-id]",
		Short: "Join a district and start the season",
		Long: `Join a district and start the season.

Without arguments, lists the available districts. Joining (or switching)
replaces your personal progress: score, streak and bests start over.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, districts, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprintln(out, ui.Heading(ui.IconDistrict, "Districts"))
				for _, d := range districts {
					fmt.Fprintf(out, "- %s %s %s\n", d.Icon, d.Name, ui.Muted.Render("("+d.ID+")"))
				}
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.Muted.Render("Pick one with `turf join <id>`."))
				return nil
			}

			if err := svc.Join(ctx, districts, args[0]); err != nil {
				return err
			}
			rec := svc.Record()
			fmt.Fprintln(out, ui.Good.Render(ui.IconDone+" Welcome to the season!"))
			fmt.Fprintln(out, ui.LabelValue("District", args[0]))
			fmt.Fprintln(out, ui.LabelValue("Energy", fmt.Sprintf("%s %d", ui.IconBolt, rec.Energy)))
			return nil
		},
	}
	return cmd
}
