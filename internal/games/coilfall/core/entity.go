package core

import "fmt"

// EntityID identifies a spawned entity within one level instance.
// IDs are assigned sequentially at spawn and never reused.
type EntityID int

// EntityKind classifies every occupant the grid can hold.
type EntityKind uint8

const (
	KindFood EntityKind = iota
	KindSpike
	KindWall
	KindBox
	KindTrigger
	KindSnake
	KindGoal
)

// Movable reports whether entities of this kind can be pushed or fall.
func (k EntityKind) Movable() bool {
	return k == KindSnake || k == KindBox
}

// Traversable reports whether entities of this kind can be walked into
// without blocking the cell.
func (k EntityKind) Traversable() bool {
	return k == KindGoal || k == KindTrigger
}

func (k EntityKind) String() string {
	switch k {
	case KindFood:
		return "food"
	case KindSpike:
		return "spike"
	case KindWall:
		return "wall"
	case KindBox:
		return "box"
	case KindTrigger:
		return "trigger"
	case KindSnake:
		return "snake"
	case KindGoal:
		return "goal"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// OccupantRef is the (id, kind) pair recorded in the grid for an
// occupied cell.
type OccupantRef struct {
	ID   EntityID
	Kind EntityKind
}

func (r OccupantRef) String() string {
	return fmt.Sprintf("%s#%d", r.Kind, r.ID)
}

// Movable is the capability shared by entities whose occupied cells can
// be queried and translated uniformly (snakes, boxes).
type Movable interface {
	Positions() []Vec3
	Translate(offset Vec3)
	SetPositions(positions []Vec3)
	Kind() EntityKind
}

// Box is a single-cell pushable entity.
type Box struct {
	id  EntityID
	pos [1]Vec3
}

// NewBox creates a box occupying the given cell.
func NewBox(id EntityID, at Vec3) *Box {
	return &Box{id: id, pos: [1]Vec3{at}}
}

// ID returns the box's entity id.
func (b *Box) ID() EntityID {
	return b.id
}

// Position returns the single cell the box occupies.
func (b *Box) Position() Vec3 {
	return b.pos[0]
}

// Positions implements Movable.
func (b *Box) Positions() []Vec3 {
	return b.pos[:]
}

// Translate implements Movable.
func (b *Box) Translate(offset Vec3) {
	b.pos[0] = b.pos[0].Add(offset)
}

// SetPositions implements Movable.
func (b *Box) SetPositions(positions []Vec3) {
	if len(positions) != 1 {
		panic(fmt.Sprintf("box %d: expected 1 position, got %d", b.id, len(positions)))
	}
	b.pos[0] = positions[0]
}

// Kind implements Movable.
func (b *Box) Kind() EntityKind {
	return KindBox
}

// Ref returns the occupant reference for this box.
func (b *Box) Ref() OccupantRef {
	return OccupantRef{ID: b.id, Kind: KindBox}
}
