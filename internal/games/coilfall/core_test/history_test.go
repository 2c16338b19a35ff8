package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-coilfall/internal/games/coilfall/core"
)

// recordingHooks captures undo side effects without a full level
// around them.
type recordingHooks struct {
	respawned   []core.Vec3
	despawned   []core.OccupantRef
	reactivated []core.OccupantRef
}

func (h *recordingHooks) RespawnFood(position core.Vec3) {
	h.respawned = append(h.respawned, position)
}

func (h *recordingHooks) DespawnSegment(snake core.OccupantRef) {
	h.despawned = append(h.despawned, snake)
}

func (h *recordingHooks) Reactivate(entity core.OccupantRef) {
	h.reactivated = append(h.reactivated, entity)
}

func markSnake(g *core.GridIndex, s *core.Snake) {
	for _, pos := range s.Positions() {
		g.MarkOccupied(pos, s.Ref())
	}
}

func TestOpenFallPanicsWithoutFall(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("OpenFall with no fall on record should panic")
		}
	}()
	core.NewHistory().OpenFall(ref(1, core.KindSnake))
}

func TestOpenFallPanicsWhenAlreadyClosed(t *testing.T) {
	h := core.NewHistory()
	h.Push(core.HistoryEvent{
		Kind:   core.EventBeginFall,
		Entity: ref(1, core.KindSnake),
		End:    &core.EndFall{},
	})
	defer func() {
		if recover() == nil {
			t.Error("OpenFall on a closed fall should panic")
		}
	}()
	h.OpenFall(ref(1, core.KindSnake))
}

func TestOpenFallMatchesEntity(t *testing.T) {
	h := core.NewHistory()
	h.Push(core.HistoryEvent{
		Kind:          core.EventBeginFall,
		Entity:        ref(1, core.KindSnake),
		FallPositions: []core.Vec3{v(1, 5, 0)},
	})
	h.Push(core.HistoryEvent{
		Kind:          core.EventBeginFall,
		Entity:        ref(2, core.KindBox),
		FallPositions: []core.Vec3{v(4, 7, 0)},
	})

	ev := h.OpenFall(ref(1, core.KindSnake))
	if len(ev.FallPositions) != 1 || ev.FallPositions[0] != v(1, 5, 0) {
		t.Errorf("OpenFall picked the wrong entry: %v", ev.FallPositions)
	}
}

func TestUndoStopsAtMarker(t *testing.T) {
	g := core.NewGridIndex()
	h := core.NewHistory()
	snake := core.NewSnake(1, body(v(1, 1, 0), v(0, 1, 0)))
	markSnake(g, snake)
	cmds := core.NewCommands(g, h)

	cmds.PlayerMove(snake, core.Right).Execute()
	mid := g.Snapshot()
	midParts := partsOf(snake)
	cmds.PlayerMove(snake, core.Right).Execute()

	if h.Len() != 4 {
		t.Fatalf("history length = %d after two turns, want 4", h.Len())
	}

	registry := core.NewMovableRegistry()
	registry.Add(snake.Ref(), snake)
	h.UndoLast(g, registry, &recordingHooks{})

	// Exactly one turn came off.
	if h.Len() != 2 {
		t.Errorf("history length = %d after one undo, want 2", h.Len())
	}
	if !sameParts(midParts, partsOf(snake)) {
		t.Errorf("parts = %v, want the mid-state %v", snake.Parts(), midParts)
	}
	if !sameGrid(mid, g.Snapshot()) {
		t.Error("grid should match the mid-state")
	}
}

func TestUndoLastOnEmptyHistoryIsQuiet(t *testing.T) {
	g := core.NewGridIndex()
	h := core.NewHistory()
	h.UndoLast(g, core.NewMovableRegistry(), &recordingHooks{})
	if h.Len() != 0 || g.Len() != 0 {
		t.Error("undo of nothing should change nothing")
	}
}

func TestUndoCallsHooksForEatAndGrow(t *testing.T) {
	g := core.NewGridIndex()
	h := core.NewHistory()
	snake := core.NewSnake(1, body(v(1, 1, 0), v(0, 1, 0)))
	markSnake(g, snake)
	food := ref(2, core.KindFood)
	g.MarkOccupied(v(2, 1, 0), food)
	cmds := core.NewCommands(g, h)

	cmds.PlayerMove(snake, core.Right).EatingFood(v(2, 1, 0)).Execute()
	if snake.Len() != 3 {
		t.Fatalf("length = %d after eating, want 3", snake.Len())
	}

	registry := core.NewMovableRegistry()
	registry.Add(snake.Ref(), snake)
	hooks := &recordingHooks{}
	h.UndoLast(g, registry, hooks)

	if len(hooks.despawned) != 1 || hooks.despawned[0] != snake.Ref() {
		t.Errorf("despawned = %v, want the snake once", hooks.despawned)
	}
	if len(hooks.respawned) != 1 || hooks.respawned[0] != v(2, 1, 0) {
		t.Errorf("respawned = %v, want the food cell once", hooks.respawned)
	}
	if snake.Len() != 2 {
		t.Errorf("length = %d after undo, want 2", snake.Len())
	}
	if got, ok := g.Get(v(2, 1, 0)); !ok || got != food {
		t.Errorf("food cell = %v (ok=%v) after undo, want the food back", got, ok)
	}
}

func TestFallRoundTripAtCommandLayer(t *testing.T) {
	g := core.NewGridIndex()
	h := core.NewHistory()
	snake := core.NewSnake(1, body(v(1, 5, 0), v(0, 5, 0)))
	markSnake(g, snake)
	before := g.Snapshot()
	beforeParts := partsOf(snake)
	cmds := core.NewCommands(g, h)

	cmds.StartFalling(snake, snake.Ref())
	if g.Len() != 0 {
		t.Fatal("falling entity should own no cells")
	}
	snake.Translate(core.Down)
	snake.Translate(core.Down)
	cmds.StopFalling(snake, snake.Ref())

	if h.Len() != 1 {
		t.Fatalf("history length = %d, want one welded fall entry", h.Len())
	}
	if h.Events()[0].End == nil {
		t.Fatal("landed fall should be closed")
	}
	if got, _ := g.Get(v(1, 3, 0)); got != snake.Ref() {
		t.Errorf("landing cell = %v, want the snake", got)
	}

	registry := core.NewMovableRegistry()
	registry.Add(snake.Ref(), snake)
	h.UndoLast(g, registry, &recordingHooks{})

	if !sameGrid(before, g.Snapshot()) {
		t.Error("undo should restore the pre-fall occupancy")
	}
	if !sameParts(beforeParts, partsOf(snake)) {
		t.Errorf("parts = %v after undo, want %v", snake.Parts(), beforeParts)
	}
	if h.Len() != 0 {
		t.Errorf("history length = %d after undo, want 0", h.Len())
	}
}

func TestSpikeLandingKeepsCellsVacant(t *testing.T) {
	g := core.NewGridIndex()
	h := core.NewHistory()
	snake := core.NewSnake(1, body(v(1, 5, 0), v(0, 5, 0)))
	markSnake(g, snake)
	before := g.Snapshot()
	cmds := core.NewCommands(g, h)

	cmds.StartFalling(snake, snake.Ref())
	snake.Translate(core.Down)
	cmds.StopFallingOnSpikes(snake.Ref())

	// The entity died on landing: the fall is closed but nothing was
	// re-marked.
	if g.Len() != 0 {
		t.Errorf("grid has %d cells, want none before the rewind", g.Len())
	}
	end := h.Events()[0].End
	if end == nil || len(end.Updates) != 0 {
		t.Errorf("spike landing should close the fall without updates, got %v", end)
	}

	registry := core.NewMovableRegistry()
	registry.Add(snake.Ref(), snake)
	h.UndoLast(g, registry, &recordingHooks{})

	if !sameGrid(before, g.Snapshot()) {
		t.Error("undo should restore the pre-fall occupancy")
	}
	if snake.HeadPosition() != v(1, 5, 0) {
		t.Errorf("head = %v after undo, want back on the ledge", snake.HeadPosition())
	}
}

func TestExitWhileFallingLogsWithoutClearing(t *testing.T) {
	g := core.NewGridIndex()
	h := core.NewHistory()
	snake := core.NewSnake(1, body(v(1, 5, 0), v(0, 5, 0)))
	markSnake(g, snake)
	before := g.Snapshot()
	cmds := core.NewCommands(g, h)

	cmds.StartFalling(snake, snake.Ref())
	snake.Translate(core.Down)
	cmds.ExitLevel(snake, true)

	// The airborne snake owned no cells, so the exit recorded no deltas.
	last := h.Events()[h.Len()-1]
	if last.Kind != core.EventExitLevel {
		t.Fatalf("last event = %v, want exit-level", last.Kind)
	}
	if len(last.Updates) != 0 {
		t.Errorf("mid-fall exit logged %d grid updates, want 0", len(last.Updates))
	}

	hooks := &recordingHooks{}
	registry := core.NewMovableRegistry()
	registry.Add(snake.Ref(), snake)
	h.UndoLast(g, registry, hooks)

	if len(hooks.reactivated) != 1 || hooks.reactivated[0] != snake.Ref() {
		t.Errorf("reactivated = %v, want the snake once", hooks.reactivated)
	}
	if !sameGrid(before, g.Snapshot()) {
		t.Error("undo should restore the pre-fall occupancy")
	}
	if snake.HeadPosition() != v(1, 5, 0) {
		t.Errorf("head = %v after undo, want back on the ledge", snake.HeadPosition())
	}
}

func TestRegistryPanicsOnUnknownEntity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("resolving an unregistered entity should panic")
		}
	}()
	core.NewMovableRegistry().Get(ref(42, core.KindBox))
}
