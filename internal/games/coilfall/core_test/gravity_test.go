package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-coilfall/internal/games/coilfall/core"
)

func TestFreeFallLandsAndUndoesAsOneTurn(t *testing.T) {
	entities := append(floorRow(1, 0, 4), spawns(core.KindWall, v(0, 4, 0), v(1, 4, 0))...)
	tpl := &core.LevelTemplate{
		Snakes:   [][]core.SnakeElement{body(v(1, 5, 0), v(0, 5, 0))},
		Entities: entities,
	}
	s := mustSim(t, tpl, core.DefaultConfig())
	snake := s.SnakeInfos()[0].Snake

	move(t, s, core.Right)
	afterFirst := s.Grid().Snapshot()
	afterFirstParts := partsOf(snake)

	// The second step leaves the ledge entirely: a three-cell drop.
	events := move(t, s, core.Right)

	if !hasEvent(events, core.EvFallStarted) {
		t.Error("leaving the ledge should start a fall")
	}
	landed := false
	for _, ev := range events {
		if ev.Kind == core.EvFallLanded {
			landed = true
			if ev.Distance != 3 {
				t.Errorf("landing distance = %d, want 3", ev.Distance)
			}
		}
	}
	if !landed {
		t.Fatal("the fall should land")
	}
	if snake.HeadPosition() != v(3, 2, 0) {
		t.Errorf("head = %v after landing, want (3,2,0)", snake.HeadPosition())
	}

	// The whole drop is one welded history entry, not one per cell.
	falls := 0
	for _, ev := range s.History().Events() {
		if ev.Kind == core.EventBeginFall {
			falls++
			if ev.End == nil {
				t.Error("landed fall should be closed")
			}
		}
	}
	if falls != 1 {
		t.Errorf("begin-fall entries = %d, want 1", falls)
	}
	if s.History().Len() != 5 {
		t.Errorf("history length = %d, want 5", s.History().Len())
	}

	// One undo peels off the step and the entire drop together.
	undoMove(t, s)
	if !sameParts(afterFirstParts, partsOf(snake)) {
		t.Errorf("parts = %v after undo, want %v", snake.Parts(), afterFirstParts)
	}
	if !sameGrid(afterFirst, s.Grid().Snapshot()) {
		t.Error("undo should restore the state after the first step")
	}
	if s.History().Len() != 2 {
		t.Errorf("history length = %d after undo, want 2", s.History().Len())
	}
	if s.Undos() != 1 {
		t.Errorf("undo count = %d, want 1", s.Undos())
	}
}

func TestBottomlessBoxFallsForever(t *testing.T) {
	entities := append(floorRow(1, 0, 1), spawns(core.KindBox, v(4, 8, 0))...)
	tpl := &core.LevelTemplate{
		Snakes:   [][]core.SnakeElement{body(v(1, 2, 0), v(0, 2, 0))},
		Entities: entities,
	}
	s := mustSim(t, tpl, core.DefaultConfig())
	snake := s.SnakeInfos()[0].Snake
	box := s.Boxes()[0]
	snakeParts := partsOf(snake)

	events := idle(s, 300)

	if !hasEvent(events, core.EvFallStarted) {
		t.Error("unsupported box should start falling")
	}
	if hasEvent(events, core.EvFallLanded) {
		t.Error("box with nothing below should never land")
	}
	if !s.AnyFalling() {
		t.Error("box should still be airborne")
	}
	if box.Position().Y > -50 {
		t.Errorf("box = %v after 5 seconds, want far below the level", box.Position())
	}

	// Only snakes are rescued from the void.
	if s.Undos() != 0 {
		t.Errorf("undo count = %d, want 0", s.Undos())
	}

	falls := 0
	for _, ev := range s.History().Events() {
		if ev.Kind == core.EventBeginFall {
			falls++
			if ev.End != nil {
				t.Error("an unfinished fall should stay open")
			}
		}
	}
	if falls != 1 {
		t.Errorf("begin-fall entries = %d, want 1", falls)
	}
	if !sameParts(snakeParts, partsOf(snake)) {
		t.Error("grounded snake should be untouched by the box's fall")
	}
}

func TestSpikeLandingRewindsTurn(t *testing.T) {
	entities := floorRow(1, 0, 4)
	entities = append(entities, spawns(core.KindWall, v(0, 3, 0), v(1, 3, 0))...)
	entities = append(entities, spawns(core.KindSpike, v(3, 2, 0))...)
	tpl := &core.LevelTemplate{
		Snakes:   [][]core.SnakeElement{body(v(1, 4, 0), v(0, 4, 0))},
		Entities: entities,
	}
	s := mustSim(t, tpl, core.DefaultConfig())
	snake := s.SnakeInfos()[0].Snake

	move(t, s, core.Right)
	afterFirst := s.Grid().Snapshot()
	afterFirstParts := partsOf(snake)

	// The next step drops the snake through the spike row.
	events := move(t, s, core.Right)

	if !hasEvent(events, core.EvFallStarted) {
		t.Error("stepping past the ledge should start a fall")
	}
	if !hasEvent(events, core.EvLandedOnSpikes) {
		t.Fatal("the drop should end on the spike")
	}
	if hasEvent(events, core.EvFallLanded) {
		t.Error("a spike landing is not a normal landing")
	}
	if !hasEvent(events, core.EvUndoApplied) {
		t.Error("the spike landing should force a rewind")
	}

	if !sameParts(afterFirstParts, partsOf(snake)) {
		t.Errorf("parts = %v after rewind, want %v", snake.Parts(), afterFirstParts)
	}
	if !sameGrid(afterFirst, s.Grid().Snapshot()) {
		t.Error("rewind should restore the state before the fatal step")
	}
	if s.History().Len() != 2 {
		t.Errorf("history length = %d after rewind, want 2", s.History().Len())
	}
	if s.Undos() != 1 {
		t.Errorf("undo count = %d, want 1", s.Undos())
	}
}

func TestJumpLeavesNoHistory(t *testing.T) {
	tpl := &core.LevelTemplate{
		Snakes:   [][]core.SnakeElement{body(v(0, 3, 0), v(0, 2, 0))},
		Entities: floorRow(1, 0, 1),
	}
	s := mustSim(t, tpl, core.DefaultConfig())
	snake := s.SnakeInfos()[0].Snake
	before := s.Grid().Snapshot()
	beforeParts := partsOf(snake)

	if !snake.IsStanding() {
		t.Fatal("snake should start standing upright")
	}

	d := core.Up
	events := append([]core.Event(nil), s.Tick(core.Input{Direction: &d}, dt)...)
	if !s.AnyFalling() {
		t.Fatal("rising while standing should hop")
	}
	events = append(events, idle(s, 120)...)

	if s.AnyFalling() {
		t.Error("hop should be over after two seconds")
	}
	// The hop went up and came straight back down: no motion in grid
	// terms, nothing to log, nothing to undo.
	if hasEvent(events, core.EvFallStarted) || hasEvent(events, core.EvFallLanded) {
		t.Error("a hop is not a logged fall")
	}
	if s.History().Len() != 0 {
		t.Errorf("history length = %d after hop, want 0", s.History().Len())
	}
	if s.Moves() != 0 {
		t.Errorf("moves = %d, a hop is not a move", s.Moves())
	}
	if !sameParts(beforeParts, partsOf(snake)) {
		t.Errorf("parts = %v after hop, want unchanged", snake.Parts())
	}
	if !sameGrid(before, s.Grid().Snapshot()) {
		t.Error("hop should leave the grid untouched")
	}
}

func TestFallOffWorldRewinds(t *testing.T) {
	tpl := &core.LevelTemplate{
		Snakes:   [][]core.SnakeElement{body(v(1, 6, 0), v(0, 6, 0))},
		Entities: spawns(core.KindWall, v(0, 5, 0), v(1, 5, 0)),
	}
	s := mustSim(t, tpl, core.DefaultConfig())
	snake := s.SnakeInfos()[0].Snake

	move(t, s, core.Right)
	afterFirst := s.Grid().Snapshot()
	afterFirstParts := partsOf(snake)

	// The next step leaves the platform over the void.
	events := move(t, s, core.Right)

	if !hasEvent(events, core.EvFellOffWorld) {
		t.Fatal("sinking below the floor of the world should be caught")
	}
	if !hasEvent(events, core.EvUndoApplied) {
		t.Error("falling off the world should force a rewind")
	}
	if !sameParts(afterFirstParts, partsOf(snake)) {
		t.Errorf("parts = %v after rewind, want %v", snake.Parts(), afterFirstParts)
	}
	if !sameGrid(afterFirst, s.Grid().Snapshot()) {
		t.Error("rewind should restore the state before the fatal step")
	}
	if s.History().Len() != 2 {
		t.Errorf("history length = %d after rewind, want 2", s.History().Len())
	}
	if s.Undos() != 1 {
		t.Errorf("undo count = %d, want 1", s.Undos())
	}
}
