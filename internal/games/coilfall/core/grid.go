package core

import "fmt"

// BottomlessDistance is the ground-distance sentinel returned when the
// downward walk leaves the level (y <= 0) without finding support. The
// gravity driver treats it as "keep falling forever".
const BottomlessDistance = 50

// GridUpdateKind tags one occupancy delta.
type GridUpdateKind uint8

const (
	// ClearPosition records that a cell was emptied; Occupant holds what
	// was removed so undo can put it back.
	ClearPosition GridUpdateKind = iota
	// FillPosition records that a cell was marked occupied.
	FillPosition
)

// GridUpdate is one reversible occupancy delta produced by the batched
// mutation helpers and replayed backward by UndoUpdates.
type GridUpdate struct {
	Kind     GridUpdateKind
	Position Vec3
	Occupant OccupantRef
}

// GridIndex is the sparse cell-to-occupant map for one level instance.
//
// Fixtures (spikes, triggers, the goal) live in their own sublayer:
// they stay put for the whole level, entities pass over or through
// them, and keeping them out of the main layer means a snake walking
// onto a trigger never erases the trigger's own entry. The main layer
// holds everything that blocks, moves, or can be consumed.
type GridIndex struct {
	cells    map[Vec3]OccupantRef
	fixtures map[Vec3]OccupantRef
}

// NewGridIndex creates an empty index.
func NewGridIndex() *GridIndex {
	return &GridIndex{
		cells:    make(map[Vec3]OccupantRef),
		fixtures: make(map[Vec3]OccupantRef),
	}
}

// Occupied reports whether anything at all is recorded at the cell.
func (g *GridIndex) Occupied(cell Vec3) bool {
	if _, ok := g.cells[cell]; ok {
		return true
	}
	_, ok := g.fixtures[cell]
	return ok
}

// Get returns the occupant at the cell, main layer first.
func (g *GridIndex) Get(cell Vec3) (OccupantRef, bool) {
	if ref, ok := g.cells[cell]; ok {
		return ref, true
	}
	ref, ok := g.fixtures[cell]
	return ref, ok
}

// MarkOccupied records the occupant at the cell, overwriting any prior
// entry in its layer.
func (g *GridIndex) MarkOccupied(cell Vec3, ref OccupantRef) {
	if ref.Kind == KindSpike || ref.Kind.Traversable() {
		g.fixtures[cell] = ref
		return
	}
	g.cells[cell] = ref
}

// Clear removes and returns the main-layer occupant at the cell.
// Clearing an empty cell is an invariant violation and panics: the
// caller believed something was there, so the index and the entity
// geometry have already diverged.
func (g *GridIndex) Clear(cell Vec3) OccupantRef {
	ref, ok := g.cells[cell]
	if !ok {
		panic(fmt.Sprintf("grid: clear of empty cell %v", cell))
	}
	delete(g.cells, cell)
	return ref
}

// IsFood reports whether the cell holds a food item.
func (g *GridIndex) IsFood(cell Vec3) bool {
	ref, ok := g.cells[cell]
	return ok && ref.Kind == KindFood
}

// IsSpike reports whether the cell holds a spike.
func (g *GridIndex) IsSpike(cell Vec3) bool {
	ref, ok := g.fixtures[cell]
	return ok && ref.Kind == KindSpike
}

// IsTraversableCell reports whether an entity can move into the cell:
// nothing there, or only a walk-through fixture (trigger, goal).
func (g *GridIndex) IsTraversableCell(cell Vec3) bool {
	if _, ok := g.cells[cell]; ok {
		return false
	}
	ref, ok := g.fixtures[cell]
	if !ok {
		return true
	}
	return ref.Kind.Traversable()
}

// CanWalkOrEat reports whether a snake head may advance into the cell.
func (g *GridIndex) CanWalkOrEat(cell Vec3) bool {
	return g.IsTraversableCell(cell) || g.IsFood(cell)
}

// IsEntity reports whether the cell is occupied by the given entity
// itself.
func (g *GridIndex) IsEntity(cell Vec3, id EntityID) bool {
	ref, ok := g.cells[cell]
	return ok && ref.ID == id
}

// IsMovable returns the movable occupant at the cell, if any.
func (g *GridIndex) IsMovable(cell Vec3) (OccupantRef, bool) {
	ref, ok := g.cells[cell]
	if ok && ref.Kind.Movable() {
		return ref, true
	}
	return OccupantRef{}, false
}

// CanPushEntity reports whether the entity occupying the given cells
// can be shoved one step in direction: every destination cell must be
// traversable or occupied by the pushed entity itself, so a multi-cell
// body never blocks its own push.
func (g *GridIndex) CanPushEntity(id EntityID, cells []Vec3, direction Vec3) bool {
	for _, cell := range cells {
		dest := cell.Add(direction)
		if !g.IsTraversableCell(dest) && !g.IsEntity(dest, id) {
			return false
		}
	}
	return true
}

// emptyOrSpike reports whether a falling entity passes through the
// cell. Fixtures other than spikes (trigger, goal) count as ground.
func (g *GridIndex) emptyOrSpike(cell Vec3) bool {
	if _, ok := g.cells[cell]; ok {
		return false
	}
	ref, ok := g.fixtures[cell]
	if !ok {
		return true
	}
	return ref.Kind == KindSpike
}

// DistanceToGround walks down from the cell counting steps until it
// hits support, passing through empty cells, spikes, and cells occupied
// by the ignored entity itself. Reaching y <= 0 with nothing below
// returns BottomlessDistance.
func (g *GridIndex) DistanceToGround(cell Vec3, ignored EntityID) int {
	distance := 1
	current := cell.Add(Down)
	for g.emptyOrSpike(current) || g.IsEntity(current, ignored) {
		current = current.Add(Down)
		distance++
		if current.Y <= 0 {
			return BottomlessDistance
		}
	}
	return distance
}

// MoveSnakeForward frees the snake's tail cell and occupies the cell
// ahead of its head, returning the deltas needed to undo both.
func (g *GridIndex) MoveSnakeForward(snake *Snake, ref OccupantRef, direction Vec3) []GridUpdate {
	oldTail := snake.TailPosition()
	newHead := snake.HeadPosition().Add(direction)

	prior := g.Clear(oldTail)
	g.cells[newHead] = ref

	return []GridUpdate{
		{Kind: ClearPosition, Position: oldTail, Occupant: prior},
		{Kind: FillPosition, Position: newHead},
	}
}

// MoveEntityByOffset shifts every cell of a movable by the offset. All
// old cells are cleared before any new cell is filled: for an entity
// moved by exactly its own pitch the two sets overlap, and interleaving
// would make it collide with itself.
func (g *GridIndex) MoveEntityByOffset(movable Movable, ref OccupantRef, offset Vec3) []GridUpdate {
	positions := movable.Positions()
	updates := make([]GridUpdate, 0, 2*len(positions))

	for _, pos := range positions {
		prior := g.Clear(pos)
		updates = append(updates, GridUpdate{Kind: ClearPosition, Position: pos, Occupant: prior})
	}
	for _, pos := range positions {
		dest := pos.Add(offset)
		g.cells[dest] = ref
		updates = append(updates, GridUpdate{Kind: FillPosition, Position: dest})
	}
	return updates
}

// EatFood frees a food cell.
func (g *GridIndex) EatFood(cell Vec3) []GridUpdate {
	prior := g.Clear(cell)
	return []GridUpdate{{Kind: ClearPosition, Position: cell, Occupant: prior}}
}

// GrowSnake occupies the cell the snake's new tail segment will take,
// one step behind the current tail.
func (g *GridIndex) GrowSnake(snake *Snake, ref OccupantRef) []GridUpdate {
	tail := snake.Tail()
	cell := tail.Position.Sub(tail.Direction)
	g.cells[cell] = ref
	return []GridUpdate{{Kind: FillPosition, Position: cell}}
}

// ClearPositions frees a batch of cells.
func (g *GridIndex) ClearPositions(cells []Vec3) []GridUpdate {
	updates := make([]GridUpdate, 0, len(cells))
	for _, cell := range cells {
		prior := g.Clear(cell)
		updates = append(updates, GridUpdate{Kind: ClearPosition, Position: cell, Occupant: prior})
	}
	return updates
}

// MarkPositions occupies a batch of cells for one entity.
func (g *GridIndex) MarkPositions(cells []Vec3, ref OccupantRef) []GridUpdate {
	updates := make([]GridUpdate, 0, len(cells))
	for _, cell := range cells {
		g.cells[cell] = ref
		updates = append(updates, GridUpdate{Kind: FillPosition, Position: cell})
	}
	return updates
}

// UndoUpdates reverses a delta list. Updates are replayed backward so
// that for a self-overlapping move the refills land after the clears
// that would otherwise collide with them.
func (g *GridIndex) UndoUpdates(updates []GridUpdate) {
	for i := len(updates) - 1; i >= 0; i-- {
		u := updates[i]
		switch u.Kind {
		case ClearPosition:
			g.cells[u.Position] = u.Occupant
		case FillPosition:
			g.Clear(u.Position)
		}
	}
}

// Len returns the number of occupied cells across both layers.
func (g *GridIndex) Len() int {
	return len(g.cells) + len(g.fixtures)
}

// Each calls fn for every occupied cell. Iteration order is not
// defined; callers needing determinism must sort.
func (g *GridIndex) Each(fn func(cell Vec3, ref OccupantRef)) {
	for cell, ref := range g.cells {
		fn(cell, ref)
	}
	for cell, ref := range g.fixtures {
		fn(cell, ref)
	}
}

// Snapshot returns a copy of the merged occupancy map, main layer
// winning on overlap. Tests use it for byte-for-byte comparisons.
func (g *GridIndex) Snapshot() map[Vec3]OccupantRef {
	out := make(map[Vec3]OccupantRef, g.Len())
	for cell, ref := range g.fixtures {
		out[cell] = ref
	}
	for cell, ref := range g.cells {
		out[cell] = ref
	}
	return out
}
