package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"turf/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "turf",
	Short:         "Turf — local-first district battle mini-game",
	Long:          "Turf is a local-first CLI/TUI game: pick a district, earn points through daily mini-activities, keep the streak alive. State lives on-device with best-effort cloud mirroring.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newJoinCmd(),
		newStatusCmd(),
		newPatrolCmd(),
		newQuizCmd(),
		newCheckinCmd(),
		newBoostCmd(),
		newSeasonCmd(),
		newSyncCmd(),
		newResetCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
