package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	coilfallgame "github.com/vovakirdan/tui-coilfall/internal/games/coilfall"
	"github.com/vovakirdan/tui-coilfall/internal/games/coilfall/levels"
)

var trialCmd = &cobra.Command{
	Use:   "trial",
	Short: "Run scripted campaign solutions",
	Long: `Play the bundled solutions headless against every campaign level.

Each trial replays a scripted move sequence and fails when a board no
longer completes, or completes off par. Run it after editing level
files.

Examples:
  coilfall trial
  coilfall trial --levels ./mylevels`,
	Run: runTrial,
}

func runTrial(_ *cobra.Command, _ []string) {
	loader := levels.NewLoader(flagLevels)
	trials := coilfallgame.CampaignTrials()

	for _, trial := range trials {
		if err := coilfallgame.RunTrial(loader, trial); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("ok   %s\n", trial.LevelID)
	}

	fmt.Printf("%d levels verified\n", len(trials))
}
