package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"turf/internal/platform"
	"turf/internal/ui"
)

func newCheckinCmd() *cobra.Command {
	var lat, lon float64

	cmd := &cobra.Command{
		Use:   "checkin --lat <deg> --lon <deg>",
		Short: "Daily geo check-in (1 energy, once per day)",
		Long: `Daily geo check-in. Pays by proximity to the home reference point:
within 25 km pays 80, within 120 km pays 55, anywhere else pays 35.
At most one payout per calendar day.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var loc platform.Locator
			if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lon") {
				loc = platform.NewCachedLocator(platform.StaticLocator{
					Fix: platform.Position{Lat: lat, Lon: lon},
				})
			}

			res, err := svc.CheckIn(ctx, loc)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s %s\n", ui.IconPin, ui.Award(res.Points, res.Reason),
				ui.Muted.Render(fmt.Sprintf("(%.0f km out)", res.DistanceKm)))
			return nil
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "Current latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "Current longitude")
	return cmd
}
