package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	coilfallgame "github.com/vovakirdan/tui-coilfall/internal/games/coilfall"
	"github.com/vovakirdan/tui-coilfall/internal/games/coilfall/levels"
	"github.com/vovakirdan/tui-coilfall/internal/platform/tui"
	"github.com/vovakirdan/tui-coilfall/internal/registry"
	"github.com/vovakirdan/tui-coilfall/internal/storage"
	"github.com/vovakirdan/tui-coilfall/internal/trace"
)

var flagTrace string

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play the campaign",
	Long: `Start playing, optionally from a specific level.

The level argument is a campaign position (1-based) or a level id.
Without it the campaign starts from the beginning.

Controls:
  WASD/Arrows - Move
  Space/E     - Rise (climb)
  Q/C         - Dive
  U/Z         - Undo
  Tab         - Switch snake
  P           - Pause
  R           - Restart level
  M           - Toggle sound
  Ctrl+C      - Quit

Examples:
  coilfall play
  coilfall play 3
  coilfall play 03-box-bridge
  coilfall play --difficulty ironman
  coilfall play --trace run.trace.zst`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagTrace, "trace", "", "Record the session to a trace file")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := applyConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Resolve the start level
	if len(args) == 1 {
		level, resolveErr := resolveLevel(args[0])
		if resolveErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", resolveErr)
			os.Exit(1)
		}
		coilfallgame.SetStartLevel(level)
	}

	rtCfg := terminalConfig()

	// Start trace recording
	if flagTrace != "" {
		w, traceErr := trace.Create(flagTrace, trace.Header{
			Config:   cfg.SimConfig(),
			TickRate: rtCfg.TickRate,
		})
		if traceErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", traceErr)
			os.Exit(1)
		}
		coilfallgame.SetTrace(w)
		defer func() {
			coilfallgame.SetTrace(nil)
			w.Close()
		}()
	}

	cleanupSound := setupSound(cfg)
	defer cleanupSound()

	// Create game instance
	game, err := registry.Create("coilfall")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	// Run the game
	runErr := tui.Run(game, store, rtCfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// resolveLevel turns a campaign position or level id into a 1-based index.
func resolveLevel(arg string) (int, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if count := coilfallgame.LevelCount(); n < 1 || n > count {
			return 0, fmt.Errorf("level %d out of range, campaign has %d levels", n, count)
		}
		return n, nil
	}

	lvls, err := levels.NewLoader(flagLevels).LoadAll()
	if err != nil {
		return 0, err
	}
	for i, lvl := range lvls {
		if lvl.ID == arg {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("unknown level %q, run 'coilfall levels' to see the campaign", arg)
}
