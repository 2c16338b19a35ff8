// coilfall is a terminal puzzle where snakes coil, fall and feed their
// way to the level exit.
//
// Usage:
//
//	coilfall                 - Interactive menu (default)
//	coilfall play [level]    - Jump straight into the campaign
//	coilfall levels          - List campaign levels
//	coilfall scores          - Show solve records and high scores
//	coilfall serve           - Start SSH server for remote play
//	coilfall vet <file>...   - Validate level files
//	coilfall trial           - Run scripted campaign solutions
//	coilfall replay <trace>  - Verify a recorded session
//	coilfall config          - Show the effective configuration
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--db <path>       - Set database path (default: ~/.coilfall/scores.db)
//	--config <path>   - Custom config YAML
//	--difficulty <p>  - Preset: relaxed, classic or ironman
//	--levels <dir>    - Load levels from a directory instead of the built-ins
//	--no-sound        - Disable sound effects
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-coilfall/internal/config"
	"github.com/vovakirdan/tui-coilfall/internal/core"
	coilfallgame "github.com/vovakirdan/tui-coilfall/internal/games/coilfall"
	"github.com/vovakirdan/tui-coilfall/internal/platform/audio"
	"github.com/vovakirdan/tui-coilfall/internal/platform/tui"
)

var (
	// Global flags
	flagFPS        int
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevels     string
	flagNoSound    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "coilfall",
	Short: "Coilfall - A falling snake puzzle for your terminal",
	Long: `Coilfall is a terminal puzzle game. Steer segmented snakes across
floating boards, eat to grow, trip the triggers and get every snake to
the exit. Gravity is unforgiving, undo is your friend.

Available commands:
  play     - Jump straight into the campaign
  menu     - Interactive menu (also the default)
  levels   - List campaign levels
  scores   - View solve records and high scores
  serve    - Start SSH server for remote play
  vet      - Validate level files
  trial    - Run scripted campaign solutions
  replay   - Verify a recorded session
  config   - Show the effective configuration

Examples:
  coilfall
  coilfall play 3
  coilfall play --difficulty ironman
  coilfall serve --ssh :2222
  coilfall scores --recent 10`,
	Run: runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.coilfall/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: relaxed, classic, ironman")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Load levels from a directory instead of the built-ins")
	rootCmd.PersistentFlags().BoolVar(&flagNoSound, "no-sound", false, "Disable sound effects")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(vetCmd)
	rootCmd.AddCommand(trialCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// applyConfig loads the YAML config, applies the difficulty preset and
// pushes the result into the game and theme globals.
func applyConfig() (config.CoilfallConfig, error) {
	cfg, err := config.LoadCoilfall(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagDifficulty != "" {
		preset := config.DifficultyPreset(flagDifficulty)
		if !config.IsKnownPreset(preset) {
			return cfg, fmt.Errorf("unknown difficulty %q (relaxed, classic or ironman)", flagDifficulty)
		}
		config.ApplyCoilfallPreset(&cfg, preset)
	}

	coilfallgame.SetSimConfig(cfg.SimConfig())
	coilfallgame.SetLevelsRoot(flagLevels)
	tui.SetCoilfallTheme(tui.ThemeByName(cfg.Interface.Theme))
	return cfg, nil
}

// setupSound starts the effect player when the config asks for one.
// The returned cleanup is safe to call even when audio never started.
func setupSound(cfg config.CoilfallConfig) func() {
	if !cfg.Interface.Sound || flagNoSound {
		return func() {}
	}

	sm := audio.NewSoundManager()
	if err := sm.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: audio unavailable: %v\n", err)
		return func() {}
	}

	tui.SetSoundManager(sm)
	return func() {
		tui.SetSoundManager(nil)
		sm.Cleanup()
	}
}

// terminalConfig builds a runtime config from the current terminal size.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	return cfg
}
