package core

import "fmt"

// HistoryEventKind tags one entry in the move history.
type HistoryEventKind uint8

const (
	// EventPlayerAction is the rollback boundary: undo pops everything
	// back to, and including, the most recent marker.
	EventPlayerAction HistoryEventKind = iota
	// EventSnakeMoveForward records one head advance; OldTail holds the
	// dropped segment.
	EventSnakeMoveForward
	// EventPassiveMove records a pushed entity's translation by Offset.
	EventPassiveMove
	// EventBeginFall opens a fall: FallPositions holds the pre-fall
	// cells, End stays nil until the entity lands.
	EventBeginFall
	// EventGrow records one segment appended after eating.
	EventGrow
	// EventEat records a consumed food item at FoodPosition.
	EventEat
	// EventExitLevel records a snake leaving through the goal.
	EventExitLevel
)

func (k HistoryEventKind) String() string {
	switch k {
	case EventPlayerAction:
		return "player-action"
	case EventSnakeMoveForward:
		return "snake-move-forward"
	case EventPassiveMove:
		return "passive-move"
	case EventBeginFall:
		return "begin-fall"
	case EventGrow:
		return "grow"
	case EventEat:
		return "eat"
	case EventExitLevel:
		return "exit-level"
	default:
		return fmt.Sprintf("event(%d)", uint8(k))
	}
}

// EndFall closes a BeginFall entry with the occupancy deltas of the
// landing. A fall that ended on spikes carries no updates: the cells
// were never re-marked because the whole turn is about to rewind.
type EndFall struct {
	Updates []GridUpdate
}

// HistoryEvent is one reversible entry. Kind selects which payload
// fields are meaningful; Updates always holds the occupancy deltas this
// entry applied.
type HistoryEvent struct {
	Kind    HistoryEventKind
	Entity  OccupantRef
	Updates []GridUpdate

	OldTail       SnakeElement // EventSnakeMoveForward
	Offset        Vec3         // EventPassiveMove
	FallPositions []Vec3       // EventBeginFall
	End           *EndFall     // EventBeginFall, nil while airborne
	FoodPosition  Vec3         // EventEat
}

// History is the append-only stack of reversible events for one level
// instance. Entries are mutable in place only to close an open fall.
type History struct {
	events []HistoryEvent
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Push appends an event.
func (h *History) Push(ev HistoryEvent) {
	h.events = append(h.events, ev)
}

// Len returns the number of stored events.
func (h *History) Len() int {
	return len(h.events)
}

// Empty reports whether there is nothing to undo.
func (h *History) Empty() bool {
	return len(h.events) == 0
}

// Events returns the live backing slice, oldest first.
func (h *History) Events() []HistoryEvent {
	return h.events
}

// Clear drops all events; called on level load.
func (h *History) Clear() {
	h.events = h.events[:0]
}

// OpenFall finds the most recent BeginFall for the entity so the
// landing can be patched into it. An entity reporting a landing without
// an open fall means the command flow is broken, so both a missing and
// an already-closed entry panic.
func (h *History) OpenFall(entity OccupantRef) *HistoryEvent {
	for i := len(h.events) - 1; i >= 0; i-- {
		ev := &h.events[i]
		if ev.Kind == EventBeginFall && ev.Entity == entity {
			if ev.End != nil {
				panic(fmt.Sprintf("history: fall for %v already closed", entity))
			}
			return ev
		}
	}
	panic(fmt.Sprintf("history: no open fall for %v", entity))
}

// UndoHooks receives the side effects of rewinding that reach beyond
// grid and movable geometry: entities leaving or re-entering play.
type UndoHooks interface {
	// RespawnFood reactivates the food item that was eaten at the cell.
	RespawnFood(position Vec3)
	// DespawnSegment reports that the snake's newest tail segment is
	// about to be removed by an undone Grow.
	DespawnSegment(snake OccupantRef)
	// Reactivate returns a snake that exited the level to active play.
	Reactivate(entity OccupantRef)
}

// UndoLast rewinds one full player turn: events are popped and reversed
// until a player-action marker has been consumed. An exhausted stack
// without a marker stops quietly; that only happens when history was
// cleared mid-turn, which no caller does during play.
func (h *History) UndoLast(grid *GridIndex, registry *MovableRegistry, hooks UndoHooks) {
	for len(h.events) > 0 {
		ev := h.events[len(h.events)-1]
		h.events = h.events[:len(h.events)-1]

		if ev.Kind == EventPlayerAction {
			return
		}

		switch ev.Kind {
		case EventSnakeMoveForward:
			registry.Snake(ev.Entity).MoveBack(ev.OldTail)
		case EventPassiveMove:
			registry.Get(ev.Entity).Translate(ev.Offset.Neg())
		case EventBeginFall:
			registry.Get(ev.Entity).SetPositions(ev.FallPositions)
			if ev.End != nil {
				grid.UndoUpdates(ev.End.Updates)
			}
		case EventGrow:
			hooks.DespawnSegment(ev.Entity)
			registry.Snake(ev.Entity).Shrink()
		case EventEat:
			hooks.RespawnFood(ev.FoodPosition)
		case EventExitLevel:
			hooks.Reactivate(ev.Entity)
		}

		grid.UndoUpdates(ev.Updates)
	}
}

// MovableRegistry resolves the entity references stored in history
// events to live movables. It is rebuilt from the current entity set
// for each undo call; a miss means history refers to an entity the
// level no longer tracks, which is unrecoverable.
type MovableRegistry struct {
	movables map[OccupantRef]Movable
}

// NewMovableRegistry creates an empty registry.
func NewMovableRegistry() *MovableRegistry {
	return &MovableRegistry{movables: make(map[OccupantRef]Movable)}
}

// Add registers a movable under its reference.
func (r *MovableRegistry) Add(ref OccupantRef, m Movable) {
	r.movables[ref] = m
}

// Get returns the movable for the reference; panics on a miss.
func (r *MovableRegistry) Get(ref OccupantRef) Movable {
	m, ok := r.movables[ref]
	if !ok {
		panic(fmt.Sprintf("registry: unknown movable %v", ref))
	}
	return m
}

// Snake returns the snake for the reference; panics when the reference
// is not a registered snake.
func (r *MovableRegistry) Snake(ref OccupantRef) *Snake {
	s, ok := r.movables[ref].(*Snake)
	if !ok {
		panic(fmt.Sprintf("registry: %v is not a snake", ref))
	}
	return s
}
