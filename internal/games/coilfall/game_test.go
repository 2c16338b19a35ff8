package coilfall

import (
	"strings"
	"testing"

	platformcore "github.com/vovakirdan/tui-coilfall/internal/core"
	"github.com/vovakirdan/tui-coilfall/internal/games/coilfall/core"
	"github.com/vovakirdan/tui-coilfall/internal/games/coilfall/levels"
	"github.com/vovakirdan/tui-coilfall/internal/registry"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	SetLevelsRoot("")
	g := New()
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})
	if g.gameOver {
		t.Fatal("game over right after reset")
	}
	if g.sim == nil {
		t.Fatal("no simulation after reset")
	}
	return g
}

func stepEmpty(g *Game, n int) {
	for i := 0; i < n; i++ {
		g.Step(platformcore.NewInputFrame())
	}
}

func stepAction(g *Game, action platformcore.Action) {
	frame := platformcore.NewInputFrame()
	frame.Set(action)
	g.Step(frame)
}

// One pressed direction, then enough idle frames for animations,
// falls, and exits to play out.
func stepMove(g *Game, action platformcore.Action) {
	stepAction(g, action)
	stepEmpty(g, 60)
}

func TestGameRegistered(t *testing.T) {
	if !registry.Exists("coilfall") {
		t.Fatal("coilfall is not registered")
	}
	g, err := registry.Create("coilfall")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.ID() != "coilfall" || g.Title() != "Coilfall" {
		t.Errorf("unexpected identity: %s / %s", g.ID(), g.Title())
	}

	found := false
	for _, info := range registry.List() {
		if info.ID == "coilfall" && info.Title == "Coilfall" {
			found = true
		}
	}
	if !found {
		t.Error("coilfall missing from registry listing")
	}
}

func TestResetLoadsCampaign(t *testing.T) {
	g := newTestGame(t)

	if len(g.allLevels) != 7 {
		t.Errorf("expected 7 campaign levels, got %d", len(g.allLevels))
	}
	if g.level.ID != "01-first-steps" {
		t.Errorf("first level %q, want 01-first-steps", g.level.ID)
	}
	if g.tooSmall {
		t.Error("80x24 should fit the first board")
	}
}

func TestInputMapping(t *testing.T) {
	tests := []struct {
		action platformcore.Action
		dir    core.Vec3
	}{
		{platformcore.ActionUp, core.Forward},
		{platformcore.ActionDown, core.Back},
		{platformcore.ActionLeft, core.Left},
		{platformcore.ActionRight, core.Right},
		{platformcore.ActionRise, core.Up},
		{platformcore.ActionDive, core.Down},
	}

	for _, tc := range tests {
		frame := platformcore.NewInputFrame()
		frame.Set(tc.action)
		in := mapInput(frame)
		if in.Direction == nil || *in.Direction != tc.dir {
			t.Errorf("%v: mapped to %v, want %v", tc.action, in.Direction, tc.dir)
		}
	}

	frame := platformcore.NewInputFrame()
	frame.Set(platformcore.ActionUndo)
	frame.Set(platformcore.ActionSwitch)
	in := mapInput(frame)
	if !in.Undo || !in.Switch {
		t.Error("undo and switch flags not mapped")
	}
	if in.Direction != nil {
		t.Error("direction set without a direction action")
	}
}

func TestStepMovesSnake(t *testing.T) {
	g := newTestGame(t)

	start := g.sim.SelectedSnake().HeadPosition()
	stepMove(g, platformcore.ActionRight)

	head := g.sim.SelectedSnake().HeadPosition()
	if head != start.Add(core.Right) {
		t.Errorf("head at %v, want %v", head, start.Add(core.Right))
	}
	if g.sim.Moves() != 1 {
		t.Errorf("moves = %d, want 1", g.sim.Moves())
	}
}

func TestSolveAdvancesLevel(t *testing.T) {
	g := newTestGame(t)

	// First Steps is three moves right.
	stepMove(g, platformcore.ActionRight)
	stepMove(g, platformcore.ActionRight)
	stepMove(g, platformcore.ActionRight)

	if g.levelIndex != 1 {
		t.Fatalf("levelIndex = %d, want 1", g.levelIndex)
	}
	if g.level.ID != "02-appetite" {
		t.Errorf("current level %q, want 02-appetite", g.level.ID)
	}
	if want := scoreLevel + scoreParBonus; g.score != want {
		t.Errorf("score = %d, want %d", g.score, want)
	}

	solves := g.TakeSolves()
	if len(solves) != 1 {
		t.Fatalf("expected 1 solve, got %d", len(solves))
	}
	solve := solves[0]
	if solve.LevelID != "01-first-steps" || solve.Moves != 3 || solve.Undos != 0 || solve.Par != 3 {
		t.Errorf("unexpected solve record: %+v", solve)
	}
	if solve.Ticks == 0 {
		t.Error("solve has no tick count")
	}

	if len(g.TakeSolves()) != 0 {
		t.Error("TakeSolves did not drain the queue")
	}
}

func TestStartLevelConsumedOnReset(t *testing.T) {
	SetLevelsRoot("")
	SetStartLevel(3)
	if GetStartLevel() != 3 {
		t.Fatalf("start level = %d, want 3", GetStartLevel())
	}

	g := New()
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})
	if g.levelIndex != 2 {
		t.Errorf("levelIndex = %d, want 2", g.levelIndex)
	}
	if g.level.ID != "03-box-bridge" {
		t.Errorf("level %q, want 03-box-bridge", g.level.ID)
	}

	// The selection is one-shot: the next reset starts from the top.
	if GetStartLevel() != 0 {
		t.Errorf("start level = %d after reset, want 0", GetStartLevel())
	}
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})
	if g.levelIndex != 0 {
		t.Errorf("levelIndex = %d after second reset, want 0", g.levelIndex)
	}
}

func TestPauseBlocksSimulation(t *testing.T) {
	g := newTestGame(t)

	stepAction(g, platformcore.ActionPause)
	if !g.paused {
		t.Fatal("not paused after pause action")
	}

	before := g.sim.Ticks()
	stepAction(g, platformcore.ActionRight)
	stepEmpty(g, 10)
	if g.sim.Ticks() != before {
		t.Error("simulation advanced while paused")
	}

	stepAction(g, platformcore.ActionPause)
	if g.paused {
		t.Error("still paused after second pause action")
	}
}

func TestRestartReloadsLevel(t *testing.T) {
	g := newTestGame(t)

	start := g.sim.SelectedSnake().HeadPosition()
	stepMove(g, platformcore.ActionRight)
	stepAction(g, platformcore.ActionRestart)

	if g.sim.Moves() != 0 {
		t.Errorf("moves = %d after restart, want 0", g.sim.Moves())
	}
	if head := g.sim.SelectedSnake().HeadPosition(); head != start {
		t.Errorf("head at %v after restart, want %v", head, start)
	}
	if g.levelIndex != 0 {
		t.Errorf("restart changed level index to %d", g.levelIndex)
	}
	if got := g.State(); got.Score != 0 || got.GameOver {
		t.Errorf("unexpected state after restart: %+v", got)
	}
}

func TestUndoActionRewinds(t *testing.T) {
	g := newTestGame(t)

	start := g.sim.SelectedSnake().HeadPosition()
	stepMove(g, platformcore.ActionRight)
	stepAction(g, platformcore.ActionUndo)
	stepEmpty(g, 20)

	if head := g.sim.SelectedSnake().HeadPosition(); head != start {
		t.Errorf("head at %v after undo, want %v", head, start)
	}
	if g.sim.Undos() != 1 {
		t.Errorf("undos = %d, want 1", g.sim.Undos())
	}
}

func TestRenderSmoke(t *testing.T) {
	g := newTestGame(t)

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)

	if hud := screen.Row(0); !strings.Contains(hud, "Coilfall") {
		t.Errorf("HUD missing from top row: %q", hud)
	}
	out := screen.String()
	if !strings.ContainsRune(out, '█') {
		t.Error("board blocks missing from render")
	}
	if !strings.ContainsRune(out, '◎') {
		t.Error("active goal missing from render")
	}
}

func TestCampaignTrialsPass(t *testing.T) {
	if err := RunTrials(levels.NewLoader(""), CampaignTrials()); err != nil {
		t.Fatalf("campaign trial failed: %v", err)
	}
}
