package core

// Commands couples the grid and the history so every mutation that
// reaches one also reaches the other. It is the only entry point
// allowed to change occupancy during play.
type Commands struct {
	grid    *GridIndex
	history *History
}

// NewCommands binds a command issuer to a level's grid and history.
func NewCommands(grid *GridIndex, history *History) Commands {
	return Commands{grid: grid, history: history}
}

// PlayerMove starts building one player turn for the snake.
func (c Commands) PlayerMove(snake *Snake, direction Vec3) *PlayerMoveCommand {
	return &PlayerMoveCommand{
		grid:      c.grid,
		history:   c.history,
		snake:     snake,
		direction: direction,
	}
}

// PlayerMoveCommand accumulates the optional parts of a move (a pushed
// entity, a food item at the destination) and commits them atomically.
type PlayerMoveCommand struct {
	grid      *GridIndex
	history   *History
	snake     *Snake
	direction Vec3

	pushed    Movable
	pushedRef OccupantRef
	hasPushed bool

	foodPosition Vec3
	hasFood      bool
}

// PushingEntity attaches the movable standing in the way; it will be
// shoved one cell in the move direction.
func (p *PlayerMoveCommand) PushingEntity(ref OccupantRef, m Movable) *PlayerMoveCommand {
	if m != nil {
		p.pushed = m
		p.pushedRef = ref
		p.hasPushed = true
	}
	return p
}

// EatingFood attaches the food item at the destination cell.
func (p *PlayerMoveCommand) EatingFood(position Vec3) *PlayerMoveCommand {
	p.foodPosition = position
	p.hasFood = true
	return p
}

// Execute commits the turn: marker, then push, then eat, then the head
// advance, then growth. Each step logs its inverse so UndoLast can peel
// the whole turn off again.
func (p *PlayerMoveCommand) Execute() {
	ref := p.snake.Ref()

	p.history.Push(HistoryEvent{Kind: EventPlayerAction, Entity: ref})

	if p.hasPushed {
		updates := p.grid.MoveEntityByOffset(p.pushed, p.pushedRef, p.direction)
		p.pushed.Translate(p.direction)
		p.history.Push(HistoryEvent{
			Kind:    EventPassiveMove,
			Entity:  p.pushedRef,
			Updates: updates,
			Offset:  p.direction,
		})
	}

	if p.hasFood {
		updates := p.grid.EatFood(p.foodPosition)
		p.history.Push(HistoryEvent{
			Kind:         EventEat,
			Entity:       ref,
			Updates:      updates,
			FoodPosition: p.foodPosition,
		})
	}

	oldTail := p.snake.Tail()
	updates := p.grid.MoveSnakeForward(p.snake, ref, p.direction)
	p.snake.MoveForward(p.direction)
	p.history.Push(HistoryEvent{
		Kind:    EventSnakeMoveForward,
		Entity:  ref,
		Updates: updates,
		OldTail: oldTail,
	})

	if p.hasFood {
		growUpdates := p.grid.GrowSnake(p.snake, ref)
		p.snake.Grow()
		p.history.Push(HistoryEvent{
			Kind:    EventGrow,
			Entity:  ref,
			Updates: growUpdates,
		})
	}
}

// ExitLevel clears the snake off the grid as it leaves through the
// goal. A snake exiting mid-fall owns no cells, so there is nothing to
// clear; the event is still logged so undo can bring the snake back.
func (c Commands) ExitLevel(snake *Snake, falling bool) {
	var updates []GridUpdate
	if !falling {
		updates = c.grid.ClearPositions(snake.Positions())
	}
	c.history.Push(HistoryEvent{
		Kind:    EventExitLevel,
		Entity:  snake.Ref(),
		Updates: updates,
	})
}

// StartFalling vacates the entity's cells and opens a fall entry
// recording where it stood. The entry stays open until StopFalling or
// StopFallingOnSpikes patches the landing in.
func (c Commands) StartFalling(m Movable, ref OccupantRef) {
	positions := append([]Vec3(nil), m.Positions()...)
	updates := c.grid.ClearPositions(positions)
	c.history.Push(HistoryEvent{
		Kind:          EventBeginFall,
		Entity:        ref,
		Updates:       updates,
		FallPositions: positions,
	})
}

// StopFalling re-marks the entity's cells where it landed and closes
// the matching open fall entry, welding start and end into one
// undoable unit.
func (c Commands) StopFalling(m Movable, ref OccupantRef) {
	updates := c.grid.MarkPositions(m.Positions(), ref)
	ev := c.history.OpenFall(ref)
	ev.End = &EndFall{Updates: updates}
}

// StopFallingOnSpikes closes the open fall entry without re-marking
// anything: the entity died on landing and the turn is about to be
// rewound, so its cells stay vacated.
func (c Commands) StopFallingOnSpikes(ref OccupantRef) {
	ev := c.history.OpenFall(ref)
	ev.End = &EndFall{}
}
