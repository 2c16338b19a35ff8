package core

// FallState tracks one airborne entity. Velocity is cells per second,
// positive upward. RelativeY is the sub-cell offset above the entity's
// current grid row; each time it drops below zero the entity has
// crossed a cell boundary and the driver decides whether to translate
// down another cell or land. GridDistance counts whole cells fallen.
type FallState struct {
	Velocity     float64
	RelativeY    float64
	GridDistance int
}

// Config holds the tunable physics and rule constants of a level run.
type Config struct {
	// Gravity is the downward acceleration in cells per second squared.
	Gravity float64
	// MoveVelocity is the speed of the move animation in cells per
	// second; a snake cannot take its next step until the animation
	// completes, so this bounds the input cadence.
	MoveVelocity float64
	// JumpVelocity is the initial upward velocity of a standing snake's
	// hop. The hop never changes grid state; it exists so a standing
	// snake has somewhere to go when told to rise.
	JumpVelocity float64
	// FallDepth is the y coordinate below which a falling snake's head
	// counts as off the world, forcing a rewind.
	FallDepth int
	// UndoLimit caps explicit undos per level; zero means unlimited.
	UndoLimit int
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Gravity:      30.0,
		MoveVelocity: 5.0,
		JumpVelocity: 10.0,
		FallDepth:    -2,
		UndoLimit:    0,
	}
}

// step advances the fall by one tick and reports whether the entity
// crossed a cell boundary this tick.
func (f *FallState) step(gravity, dt float64) bool {
	f.Velocity -= gravity * dt
	f.RelativeY += f.Velocity * dt
	return f.RelativeY < 0
}

// continueFall resets the sub-cell offset after the entity translated
// down one more cell.
func (f *FallState) continueFall() {
	f.RelativeY = 1.0
	f.GridDistance++
}
