package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-coilfall/internal/core"
	coilfallgame "github.com/vovakirdan/tui-coilfall/internal/games/coilfall"
	"github.com/vovakirdan/tui-coilfall/internal/platform/tui"
	"github.com/vovakirdan/tui-coilfall/internal/registry"
	"github.com/vovakirdan/tui-coilfall/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	Long: `Start coilfall in interactive menu mode. Running coilfall with no
command does the same thing.

Use arrow keys or j/k to navigate, Enter to select.
After a run ends, you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Scores & records
  Q            - Quit

Examples:
  coilfall menu
  coilfall menu --fps 30
  coilfall menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg, err := applyConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cleanupSound := setupSound(cfg)
	defer cleanupSound()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	rtCfg := terminalConfig()

	// Menu loop
menuLoop:
	for {
		menuResult, menuErr := tui.RunMenu(store, rtCfg)
		if menuErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", menuErr)
			break
		}

		// Update config with any size changes
		rtCfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		switch menuResult.Choice {
		case tui.MenuChoicePlay:
			launchGame(store, rtCfg, 0)

		case tui.MenuChoiceLevels:
			selection, updatedCfg, selErr := tui.RunLevelSelector(rtCfg)
			if selErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
				continue
			}
			rtCfg = updatedCfg

			// User pressed back or quit
			if selection == nil {
				continue
			}
			launchGame(store, rtCfg, selection.Level)

		case tui.MenuChoiceScores:
			goBack, sbErr := tui.RunScoreboard(store, rtCfg.ScreenW, rtCfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break menuLoop // User quit from scoreboard
		}

		// Loop back to menu
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}

// launchGame starts one campaign run at the given level (0 = beginning).
func launchGame(store *storage.Store, cfg core.RuntimeConfig, level int) {
	if level > 0 {
		coilfallgame.SetStartLevel(level)
	}

	game, err := registry.Create("coilfall")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		return
	}

	if err := tui.Run(game, store, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
	}
}
