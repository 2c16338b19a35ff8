package core

import "fmt"

// SnakeElement is one body segment: where it sits and the direction it
// entered that cell with.
type SnakeElement struct {
	Position  Vec3
	Direction Vec3
}

// Snake is an ordered chain of segments, head first. The positions
// slice mirrors the segment positions so Movable callers get a plain
// cell list without rebuilding it on every query.
type Snake struct {
	id        EntityID
	parts     []SnakeElement
	positions []Vec3
}

// NewSnake creates a snake from a head-first segment template.
func NewSnake(id EntityID, template []SnakeElement) *Snake {
	if len(template) == 0 {
		panic(fmt.Sprintf("snake %d: empty template", id))
	}
	s := &Snake{
		id:    id,
		parts: append([]SnakeElement(nil), template...),
	}
	s.syncPositions()
	return s
}

// ID returns the snake's entity id.
func (s *Snake) ID() EntityID {
	return s.id
}

// Ref returns the occupant reference for this snake.
func (s *Snake) Ref() OccupantRef {
	return OccupantRef{ID: s.id, Kind: KindSnake}
}

// Len returns the number of body segments.
func (s *Snake) Len() int {
	return len(s.parts)
}

// Parts returns the live segment list, head first.
func (s *Snake) Parts() []SnakeElement {
	return s.parts
}

// Part returns the segment at the given index; panics when out of range.
func (s *Snake) Part(i int) SnakeElement {
	if i < 0 || i >= len(s.parts) {
		panic(fmt.Sprintf("snake %d: segment %d out of range (len %d)", s.id, i, len(s.parts)))
	}
	return s.parts[i]
}

// HeadPosition returns the cell the head occupies.
func (s *Snake) HeadPosition() Vec3 {
	return s.parts[0].Position
}

// HeadDirection returns the direction the head last moved in.
func (s *Snake) HeadDirection() Vec3 {
	return s.parts[0].Direction
}

// Tail returns the last segment.
func (s *Snake) Tail() SnakeElement {
	return s.parts[len(s.parts)-1]
}

// TailPosition returns the cell the tail occupies.
func (s *Snake) TailPosition() Vec3 {
	return s.parts[len(s.parts)-1].Position
}

// IsStanding reports whether the body forms a full vertical column,
// head on top.
func (s *Snake) IsStanding() bool {
	return s.HeadPosition().Y-s.TailPosition().Y == len(s.parts)-1
}

// OccupiesPosition reports whether any segment sits on the given cell.
func (s *Snake) OccupiesPosition(position Vec3) bool {
	for _, p := range s.parts {
		if p.Position == position {
			return true
		}
	}
	return false
}

// MoveForward advances the head one cell in the given direction and
// drops the tail, keeping the length constant.
func (s *Snake) MoveForward(direction Vec3) {
	head := SnakeElement{Position: s.HeadPosition().Add(direction), Direction: direction}
	copy(s.parts[1:], s.parts)
	s.parts[0] = head
	s.syncPositions()
}

// MoveBack reverses a MoveForward: the head is dropped and the saved
// tail segment is appended again.
func (s *Snake) MoveBack(oldTail SnakeElement) {
	copy(s.parts, s.parts[1:])
	s.parts[len(s.parts)-1] = oldTail
	s.syncPositions()
}

// Grow appends a segment one cell behind the tail, opposite the
// direction the tail entered with.
func (s *Snake) Grow() {
	tail := s.Tail()
	s.parts = append(s.parts, SnakeElement{
		Position:  tail.Position.Sub(tail.Direction),
		Direction: tail.Direction,
	})
	s.syncPositions()
}

// Shrink removes the tail segment.
func (s *Snake) Shrink() {
	if len(s.parts) == 0 {
		panic(fmt.Sprintf("snake %d: shrink of empty body", s.id))
	}
	s.parts = s.parts[:len(s.parts)-1]
	s.syncPositions()
}

// SetParts replaces the whole body.
func (s *Snake) SetParts(parts []SnakeElement) {
	s.parts = append(s.parts[:0], parts...)
	s.syncPositions()
}

// Positions implements Movable.
func (s *Snake) Positions() []Vec3 {
	return s.positions
}

// Translate implements Movable; segment directions are preserved.
func (s *Snake) Translate(offset Vec3) {
	for i := range s.parts {
		s.parts[i].Position = s.parts[i].Position.Add(offset)
	}
	s.syncPositions()
}

// SetPositions implements Movable; segment directions are preserved.
func (s *Snake) SetPositions(positions []Vec3) {
	if len(positions) != len(s.parts) {
		panic(fmt.Sprintf("snake %d: %d positions for %d segments", s.id, len(positions), len(s.parts)))
	}
	for i := range s.parts {
		s.parts[i].Position = positions[i]
	}
	s.syncPositions()
}

// Kind implements Movable.
func (s *Snake) Kind() EntityKind {
	return KindSnake
}

func (s *Snake) syncPositions() {
	s.positions = s.positions[:0]
	for _, p := range s.parts {
		s.positions = append(s.positions, p.Position)
	}
}
