package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-coilfall/internal/games/coilfall/core"
)

func TestEatGrowsSnakeAndOrdersHistory(t *testing.T) {
	entities := append(floorRow(1, 0, 4), spawns(core.KindFood, v(3, 2, 0))...)
	tpl := &core.LevelTemplate{
		Snakes:   [][]core.SnakeElement{body(v(2, 2, 0), v(1, 2, 0), v(0, 2, 0))},
		Entities: entities,
	}
	s := mustSim(t, tpl, core.DefaultConfig())
	snake := s.SnakeInfos()[0].Snake

	before := s.Grid().Snapshot()
	beforeParts := partsOf(snake)

	events := move(t, s, core.Right)

	if snake.HeadPosition() != v(3, 2, 0) {
		t.Errorf("head = %v, want the food cell (3,2,0)", snake.HeadPosition())
	}
	if snake.Len() != 4 {
		t.Errorf("length = %d after eating, want 4", snake.Len())
	}
	if s.FoodsRemaining() != 0 {
		t.Errorf("foods remaining = %d, want 0", s.FoodsRemaining())
	}
	if !hasEvent(events, core.EvFoodEaten) || !hasEvent(events, core.EvSnakeGrew) {
		t.Error("eating should report both the food and the growth")
	}

	// The turn decomposes into marker, eat, head advance, growth.
	wantKinds := []core.HistoryEventKind{
		core.EventPlayerAction,
		core.EventEat,
		core.EventSnakeMoveForward,
		core.EventGrow,
	}
	got := s.History().Events()
	if len(got) != len(wantKinds) {
		t.Fatalf("history length = %d, want %d", len(got), len(wantKinds))
	}
	for i, want := range wantKinds {
		if got[i].Kind != want {
			t.Errorf("history[%d] = %v, want %v", i, got[i].Kind, want)
		}
	}

	undoMove(t, s)

	if !sameGrid(before, s.Grid().Snapshot()) {
		t.Error("undo should restore the exact occupancy, food included")
	}
	if !sameParts(beforeParts, partsOf(snake)) {
		t.Errorf("undo left parts %v, want %v", snake.Parts(), beforeParts)
	}
	if s.FoodsRemaining() != 1 {
		t.Errorf("foods remaining = %d after undo, want 1", s.FoodsRemaining())
	}
	if !s.History().Empty() {
		t.Errorf("history length = %d after undo, want 0", s.History().Len())
	}
}

func TestBlockedMoveLeavesNoTrace(t *testing.T) {
	// Wall ahead and a ceiling above the head, so neither the move nor
	// the climb fallback can land anywhere.
	entities := append(floorRow(1, 0, 2), spawns(core.KindWall, v(2, 2, 0), v(1, 3, 0))...)
	tpl := &core.LevelTemplate{
		Snakes:   [][]core.SnakeElement{body(v(1, 2, 0), v(0, 2, 0))},
		Entities: entities,
	}
	s := mustSim(t, tpl, core.DefaultConfig())
	snake := s.SnakeInfos()[0].Snake
	before := s.Grid().Snapshot()
	beforeParts := partsOf(snake)

	d := core.Right
	events := s.Tick(core.Input{Direction: &d}, dt)

	if len(events) != 0 {
		t.Errorf("blocked move produced events: %v", events)
	}
	if s.History().Len() != 0 {
		t.Errorf("blocked move logged %d history events, want 0", s.History().Len())
	}
	if s.Moves() != 0 {
		t.Errorf("blocked move counted as a move")
	}
	if !sameParts(beforeParts, partsOf(snake)) {
		t.Error("blocked move changed the snake")
	}
	if !sameGrid(before, s.Grid().Snapshot()) {
		t.Error("blocked move changed the grid")
	}
}

func TestReversalIgnored(t *testing.T) {
	tpl := &core.LevelTemplate{
		Snakes:   [][]core.SnakeElement{body(v(1, 2, 0), v(0, 2, 0))},
		Entities: floorRow(1, 0, 3),
	}
	s := mustSim(t, tpl, core.DefaultConfig())
	snake := s.SnakeInfos()[0].Snake

	// The snake faces right; left is straight back into its own neck.
	d := core.Left
	s.Tick(core.Input{Direction: &d}, dt)

	if snake.HeadPosition() != v(1, 2, 0) {
		t.Errorf("head = %v after reversal input, want unchanged", snake.HeadPosition())
	}
	if s.History().Len() != 0 {
		t.Error("reversal input should not reach the history")
	}
}

func TestBlockedMoveClimbs(t *testing.T) {
	entities := append(floorRow(1, 0, 2), spawns(core.KindWall, v(2, 2, 0))...)
	tpl := &core.LevelTemplate{
		Snakes:   [][]core.SnakeElement{body(v(1, 2, 0), v(0, 2, 0))},
		Entities: entities,
	}
	s := mustSim(t, tpl, core.DefaultConfig())
	snake := s.SnakeInfos()[0].Snake

	events := move(t, s, core.Right)

	// The wall blocks the move, the open cell above the head does not.
	if snake.HeadPosition() != v(1, 3, 0) {
		t.Errorf("head = %v, want the climb target (1,3,0)", snake.HeadPosition())
	}
	if !hasEvent(events, core.EvSnakeMoved) {
		t.Error("climb should be reported as a move")
	}
	if s.History().Len() != 2 {
		t.Errorf("history length = %d, want marker plus one step", s.History().Len())
	}
}

func TestPushBoxAndUndo(t *testing.T) {
	entities := append(floorRow(1, 0, 4), spawns(core.KindBox, v(2, 2, 0))...)
	tpl := &core.LevelTemplate{
		Snakes:   [][]core.SnakeElement{body(v(1, 2, 0), v(0, 2, 0))},
		Entities: entities,
	}
	s := mustSim(t, tpl, core.DefaultConfig())
	snake := s.SnakeInfos()[0].Snake
	box := s.Boxes()[0]
	before := s.Grid().Snapshot()

	events := move(t, s, core.Right)

	if box.Position() != v(3, 2, 0) {
		t.Errorf("box = %v, want (3,2,0)", box.Position())
	}
	if snake.HeadPosition() != v(2, 2, 0) {
		t.Errorf("head = %v, want the box's old cell", snake.HeadPosition())
	}
	if !hasEvent(events, core.EvEntityPushed) {
		t.Error("push should be reported")
	}

	wantKinds := []core.HistoryEventKind{
		core.EventPlayerAction,
		core.EventPassiveMove,
		core.EventSnakeMoveForward,
	}
	got := s.History().Events()
	if len(got) != len(wantKinds) {
		t.Fatalf("history length = %d, want %d", len(got), len(wantKinds))
	}
	for i, want := range wantKinds {
		if got[i].Kind != want {
			t.Errorf("history[%d] = %v, want %v", i, got[i].Kind, want)
		}
	}

	undoMove(t, s)
	if box.Position() != v(2, 2, 0) {
		t.Errorf("box = %v after undo, want (2,2,0)", box.Position())
	}
	if !sameGrid(before, s.Grid().Snapshot()) {
		t.Error("undo should restore the pre-push occupancy")
	}
}

func TestPushRefusedAgainstWall(t *testing.T) {
	entities := append(floorRow(1, 0, 3),
		spawns(core.KindBox, v(2, 2, 0))...)
	entities = append(entities, spawns(core.KindWall, v(3, 2, 0), v(1, 3, 0))...)
	tpl := &core.LevelTemplate{
		Snakes:   [][]core.SnakeElement{body(v(1, 2, 0), v(0, 2, 0))},
		Entities: entities,
	}
	s := mustSim(t, tpl, core.DefaultConfig())
	box := s.Boxes()[0]

	d := core.Right
	s.Tick(core.Input{Direction: &d}, dt)

	if box.Position() != v(2, 2, 0) {
		t.Errorf("box = %v, want unmoved", box.Position())
	}
	if s.History().Len() != 0 {
		t.Errorf("refused push logged %d history events, want 0", s.History().Len())
	}
}

func TestPushRefusedBehindAnotherBox(t *testing.T) {
	entities := append(floorRow(1, 0, 4),
		spawns(core.KindBox, v(2, 2, 0), v(3, 2, 0))...)
	entities = append(entities, spawns(core.KindWall, v(1, 3, 0))...)
	tpl := &core.LevelTemplate{
		Snakes:   [][]core.SnakeElement{body(v(1, 2, 0), v(0, 2, 0))},
		Entities: entities,
	}
	s := mustSim(t, tpl, core.DefaultConfig())

	d := core.Right
	s.Tick(core.Input{Direction: &d}, dt)

	// Boxes do not push in chains.
	if s.Boxes()[0].Position() != v(2, 2, 0) || s.Boxes()[1].Position() != v(3, 2, 0) {
		t.Errorf("boxes moved: %v, %v", s.Boxes()[0].Position(), s.Boxes()[1].Position())
	}
	if s.History().Len() != 0 {
		t.Errorf("refused push logged %d history events, want 0", s.History().Len())
	}
}

func TestFoodAboveHeadEatenInsteadOfJump(t *testing.T) {
	entities := append(floorRow(1, 0, 1), spawns(core.KindFood, v(0, 4, 0))...)
	tpl := &core.LevelTemplate{
		Snakes:   [][]core.SnakeElement{body(v(0, 3, 0), v(0, 2, 0))},
		Entities: entities,
	}
	s := mustSim(t, tpl, core.DefaultConfig())
	snake := s.SnakeInfos()[0].Snake

	if !snake.IsStanding() {
		t.Fatal("snake should start standing upright")
	}

	events := move(t, s, core.Up)

	// Rising into food is a normal eating move, not a hop.
	if snake.HeadPosition() != v(0, 4, 0) {
		t.Errorf("head = %v, want the food cell", snake.HeadPosition())
	}
	if snake.Len() != 3 {
		t.Errorf("length = %d, want 3", snake.Len())
	}
	if !hasEvent(events, core.EvFoodEaten) {
		t.Error("food above the head should be eaten")
	}
	if s.History().Len() != 4 {
		t.Errorf("history length = %d, want a full eating turn", s.History().Len())
	}
}
