// Package coilfall adapts the Coilfall puzzle simulation to the terminal
// game platform.
package coilfall

import (
	platformcore "github.com/vovakirdan/tui-coilfall/internal/core"
	"github.com/vovakirdan/tui-coilfall/internal/games/coilfall/core"
	"github.com/vovakirdan/tui-coilfall/internal/games/coilfall/levels"
	"github.com/vovakirdan/tui-coilfall/internal/registry"
	"github.com/vovakirdan/tui-coilfall/internal/trace"
)

const (
	scoreFood     = 25
	scoreLevel    = 100
	scoreParBonus = 50
)

// Solve records one completed level for the scoreboard.
type Solve struct {
	LevelID   string
	LevelName string
	Moves     int
	Undos     int
	Par       int
	Ticks     uint64
}

// Game implements the Coilfall puzzle game.
type Game struct {
	sim    *core.Sim
	level  levels.Level
	loader *levels.Loader

	levelIndex int
	allLevels  []levels.Level

	// Screen dimensions
	screenW int
	screenH int

	// Status
	tick       uint64
	levelTicks uint64
	score      int
	gameOver   bool
	won        bool
	paused     bool
	tooSmall   bool
	dt         float64

	// Events from the latest simulation tick, for sound and effects.
	events []core.Event

	// Completed levels not yet persisted by the platform.
	solves []Solve

	// Depth slice shown by the renderer.
	viewZ int

	// Rendering config
	cellW     int
	cellH     int
	hudHeight int

	// Calculated offsets and board bounds
	gridOffsetX int
	gridOffsetY int
	minX, maxX  int
	minY, maxY  int
}

// Package-level variables for configuration
var (
	selectedStartLevel int
	levelsRoot         string
	simConfig          = core.DefaultConfig()
	traceWriter        *trace.Writer
)

// SetStartLevel sets the starting level (1-indexed). 0 means start from beginning.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	return selectedStartLevel
}

// SetLevelsRoot points the game at a level directory. An empty root
// serves the embedded campaign.
func SetLevelsRoot(root string) {
	levelsRoot = root
}

// SetSimConfig overrides the simulation tuning for new games.
func SetSimConfig(cfg core.Config) {
	simConfig = cfg
}

// SetTrace installs a trace writer recording every level load and
// simulation tick. Pass nil to stop recording.
func SetTrace(w *trace.Writer) {
	traceWriter = w
}

func init() {
	registry.Register("coilfall", func() registry.Game {
		return New()
	})
}

// New creates a new Coilfall game.
func New() *Game {
	return &Game{
		hudHeight: 4,
		cellW:     2,
		cellH:     1,
		dt:        1.0 / 60.0,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "coilfall"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Coilfall"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	if cfg.TickRate > 0 {
		g.dt = 1.0 / float64(cfg.TickRate)
	}
	g.tick = 0
	g.score = 0
	g.gameOver = false
	g.won = false
	g.paused = false
	g.events = nil
	g.solves = nil

	// Load levels
	g.loader = levels.NewLoader(levelsRoot)
	allLevels, err := g.loader.LoadAll()
	if err != nil || len(allLevels) == 0 {
		g.gameOver = true
		return
	}
	g.allLevels = allLevels

	// Apply selected start level
	if selectedStartLevel > 0 && selectedStartLevel <= len(allLevels) {
		g.levelIndex = selectedStartLevel - 1
		selectedStartLevel = 0 // Reset after use
	} else {
		g.levelIndex = 0
	}

	g.loadCurrentLevel()
}

// loadCurrentLevel builds a fresh simulation for the level at levelIndex.
func (g *Game) loadCurrentLevel() {
	if g.levelIndex >= len(g.allLevels) {
		g.won = true
		g.gameOver = true
		return
	}

	g.level = g.allLevels[g.levelIndex]
	g.levelTicks = 0

	g.calculateLayout()
	if g.tooSmall {
		return
	}

	sim, err := g.level.NewSim(simConfig)
	if err != nil {
		g.gameOver = true
		return
	}
	g.sim = sim
	g.viewZ = g.headDepth()

	if traceWriter != nil {
		//nolint:errcheck // Best-effort recording, play continues regardless
		traceWriter.WriteLevel(g.level.ID)
	}
}

// calculateLayout measures the board and centers it under the HUD.
func (g *Game) calculateLayout() {
	g.minX, g.maxX, g.minY, g.maxY = g.level.Bounds()

	boardW := (g.maxX - g.minX + 1) * g.cellW
	boardH := (g.maxY - g.minY + 1) * g.cellH

	neededW := boardW + 4
	neededH := boardH + g.hudHeight + 4

	if g.screenW < neededW || g.screenH < neededH {
		g.tooSmall = true
		return
	}
	g.tooSmall = false

	g.gridOffsetX = (g.screenW - boardW) / 2
	g.gridOffsetY = g.hudHeight + (g.screenH-g.hudHeight-boardH)/2
}

// headDepth returns the Z slice of the controlled snake's head.
func (g *Game) headDepth() int {
	if g.sim == nil {
		return 0
	}
	if snake := g.sim.SelectedSnake(); snake != nil {
		return snake.HeadPosition().Z
	}
	return g.viewZ
}

// Step advances the game by one tick.
func (g *Game) Step(input platformcore.InputFrame) platformcore.StepResult {
	g.tick++
	g.events = nil

	// Handle restart
	if input.Has(platformcore.ActionRestart) {
		if g.gameOver {
			g.Reset(platformcore.RuntimeConfig{
				ScreenW: g.screenW,
				ScreenH: g.screenH,
			})
		} else {
			g.loadCurrentLevel()
		}
		return platformcore.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if input.Has(platformcore.ActionPause) {
		g.paused = !g.paused
	}

	// Don't process if game over, paused, or too small
	if g.gameOver || g.paused || g.tooSmall || g.sim == nil {
		return platformcore.StepResult{State: g.State()}
	}

	g.levelTicks++
	in := mapInput(input)
	g.events = g.sim.Tick(in, g.dt)
	g.viewZ = g.headDepth()

	if traceWriter != nil {
		//nolint:errcheck // Best-effort recording, play continues regardless
		traceWriter.WriteTick(in, g.events)
	}

	for _, ev := range g.events {
		switch ev.Kind {
		case core.EvFoodEaten:
			g.score += scoreFood
		case core.EvFoodRespawned:
			// An undone meal gives its points back.
			g.score -= scoreFood
		case core.EvLevelCompleted:
			g.finishLevel()
		}
	}

	return platformcore.StepResult{State: g.State()}
}

// mapInput translates platform actions into one simulation input.
// Screen-up means away from the camera; Rise and Dive move along Y.
func mapInput(input platformcore.InputFrame) core.Input {
	in := core.Input{
		Undo:   input.Has(platformcore.ActionUndo),
		Switch: input.Has(platformcore.ActionSwitch),
	}

	var dir core.Vec3
	switch {
	case input.Has(platformcore.ActionUp):
		dir = core.Forward
	case input.Has(platformcore.ActionDown):
		dir = core.Back
	case input.Has(platformcore.ActionLeft):
		dir = core.Left
	case input.Has(platformcore.ActionRight):
		dir = core.Right
	case input.Has(platformcore.ActionRise):
		dir = core.Up
	case input.Has(platformcore.ActionDive):
		dir = core.Down
	default:
		return in
	}
	in.Direction = &dir
	return in
}

// finishLevel banks the solve and moves on to the next board.
func (g *Game) finishLevel() {
	moves := g.sim.Moves()
	g.score += scoreLevel
	if g.level.Par > 0 && moves <= g.level.Par {
		g.score += scoreParBonus
	}
	g.solves = append(g.solves, Solve{
		LevelID:   g.level.ID,
		LevelName: g.level.Name,
		Moves:     moves,
		Undos:     g.sim.Undos(),
		Par:       g.level.Par,
		Ticks:     g.levelTicks,
	})

	g.levelIndex++
	if g.levelIndex >= len(g.allLevels) {
		g.won = true
		g.gameOver = true
		return
	}
	g.loadCurrentLevel()
}

// TakeSolves drains the completed levels queue. The platform calls
// this after stepping to persist finished boards.
func (g *Game) TakeSolves() []Solve {
	solves := g.solves
	g.solves = nil
	return solves
}

// Events returns the simulation events from the latest tick.
func (g *Game) Events() []core.Event {
	return g.events
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// LevelCount returns the number of available levels.
func LevelCount() int {
	lvls, err := levels.NewLoader(levelsRoot).LoadAll()
	if err != nil {
		return 0
	}
	return len(lvls)
}

// LevelNames returns the names of all levels.
func LevelNames() []string {
	lvls, err := levels.NewLoader(levelsRoot).LoadAll()
	if err != nil {
		return nil
	}
	names := make([]string, len(lvls))
	for i, l := range lvls {
		names[i] = l.Name
	}
	return names
}

// LevelPars returns par values keyed by level ID. Levels without a par
// are reported as 0.
func LevelPars() map[string]int {
	lvls, err := levels.NewLoader(levelsRoot).LoadAll()
	if err != nil {
		return nil
	}
	pars := make(map[string]int, len(lvls))
	for _, l := range lvls {
		pars[l.ID] = l.Par
	}
	return pars
}
