package coilfall

import (
	"fmt"

	"github.com/vovakirdan/tui-coilfall/internal/games/coilfall/core"
	"github.com/vovakirdan/tui-coilfall/internal/games/coilfall/levels"
)

const trialDt = 1.0 / 60.0

// Trial is a scripted solve. Running trials after editing level files
// catches boards that silently became unsolvable or changed par.
type Trial struct {
	LevelID string
	Moves   []core.Vec3
}

// CampaignTrials returns the scripted solutions for the bundled
// campaign. Control hops to the next snake after an exit, so
// twin-coils needs no switch input.
func CampaignTrials() []Trial {
	right := core.Right
	left := core.Left
	up := core.Up
	down := core.Down
	forward := core.Forward

	return []Trial{
		{"01-first-steps", []core.Vec3{right, right, right}},
		{"02-appetite", []core.Vec3{right, right, right, right, right, right, right}},
		{"03-box-bridge", []core.Vec3{right, right, right, right, right, right}},
		{"04-pressure-plate", []core.Vec3{right, right, right, up, right, right, down, right}},
		{"05-twin-coils", []core.Vec3{right, right, right, left, left, left}},
		{"06-spike-canyon", []core.Vec3{right, right, right, right, right, right, right}},
		{"07-undertow", []core.Vec3{right, right, forward, right, right}},
	}
}

// RunTrial plays one trial headless and reports whether the board
// completes in exactly the scripted moves.
func RunTrial(loader *levels.Loader, trial Trial) error {
	lvl, err := loader.LoadByID(trial.LevelID)
	if err != nil {
		return err
	}

	sim, err := lvl.NewSim(core.DefaultConfig())
	if err != nil {
		return fmt.Errorf("level %s: %w", trial.LevelID, err)
	}

	if err := settleSim(sim); err != nil {
		return fmt.Errorf("level %s: %w", trial.LevelID, err)
	}
	for i, dir := range trial.Moves {
		d := dir
		sim.Tick(core.Input{Direction: &d}, trialDt)
		if err := settleSim(sim); err != nil {
			return fmt.Errorf("level %s, move %d: %w", trial.LevelID, i+1, err)
		}
	}

	if sim.Status() != core.StatusCompleted {
		return fmt.Errorf("level %s: not completed after %d moves", trial.LevelID, len(trial.Moves))
	}
	if lvl.Par > 0 && sim.Moves() != lvl.Par {
		return fmt.Errorf("level %s: solved in %d moves, par is %d", trial.LevelID, sim.Moves(), lvl.Par)
	}
	return nil
}

// RunTrials plays every trial and stops at the first failing board.
func RunTrials(loader *levels.Loader, trials []Trial) error {
	for _, trial := range trials {
		if err := RunTrial(loader, trial); err != nil {
			return err
		}
	}
	return nil
}

// settleSim ticks with no input until nothing is in motion.
func settleSim(sim *core.Sim) error {
	for i := 0; i < 2000; i++ {
		if simQuiet(sim) {
			return nil
		}
		sim.Tick(core.Input{}, trialDt)
	}
	return fmt.Errorf("board did not settle")
}

func simQuiet(sim *core.Sim) bool {
	if sim.AnyFalling() || sim.UndoPending() {
		return false
	}
	for _, info := range sim.SnakeInfos() {
		if info.Moving || info.Exiting {
			return false
		}
	}
	return true
}
