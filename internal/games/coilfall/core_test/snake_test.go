package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-coilfall/internal/games/coilfall/core"
)

func TestSnakeMoveForwardAndBack(t *testing.T) {
	snake := core.NewSnake(1, body(v(2, 1, 0), v(1, 1, 0), v(0, 1, 0)))
	before := partsOf(snake)
	oldTail := snake.Tail()

	snake.MoveForward(core.Right)
	if snake.HeadPosition() != v(3, 1, 0) {
		t.Errorf("head = %v, want (3,1,0)", snake.HeadPosition())
	}
	if snake.TailPosition() != v(1, 1, 0) {
		t.Errorf("tail = %v, want (1,1,0)", snake.TailPosition())
	}
	if snake.Len() != 3 {
		t.Errorf("length = %d, want 3", snake.Len())
	}

	snake.MoveBack(oldTail)
	if !sameParts(before, partsOf(snake)) {
		t.Errorf("parts = %v after move back, want %v", snake.Parts(), before)
	}
}

func TestSnakeTurnKeepsSegmentDirections(t *testing.T) {
	snake := core.NewSnake(1, body(v(1, 1, 0), v(0, 1, 0)))

	snake.MoveForward(core.Up)

	// The head records the turn, the body still points the way it came.
	if snake.Part(0) != (core.SnakeElement{Position: v(1, 2, 0), Direction: core.Up}) {
		t.Errorf("head segment = %v", snake.Part(0))
	}
	if snake.Part(1) != (core.SnakeElement{Position: v(1, 1, 0), Direction: core.Right}) {
		t.Errorf("neck segment = %v", snake.Part(1))
	}
}

func TestSnakeGrowAndShrink(t *testing.T) {
	snake := core.NewSnake(1, body(v(2, 1, 0), v(1, 1, 0)))

	snake.Grow()
	if snake.Len() != 3 {
		t.Fatalf("length = %d after grow, want 3", snake.Len())
	}
	// The new segment extends opposite the tail's travel direction.
	if snake.TailPosition() != v(0, 1, 0) {
		t.Errorf("tail = %v after grow, want (0,1,0)", snake.TailPosition())
	}

	snake.Shrink()
	if snake.Len() != 2 {
		t.Errorf("length = %d after shrink, want 2", snake.Len())
	}
	if snake.TailPosition() != v(1, 1, 0) {
		t.Errorf("tail = %v after shrink, want (1,1,0)", snake.TailPosition())
	}
}

func TestSnakeIsStanding(t *testing.T) {
	upright := core.NewSnake(1, body(v(0, 3, 0), v(0, 2, 0), v(0, 1, 0)))
	if !upright.IsStanding() {
		t.Error("vertical column should count as standing")
	}

	flat := core.NewSnake(2, body(v(2, 1, 0), v(1, 1, 0)))
	if flat.IsStanding() {
		t.Error("horizontal snake should not count as standing")
	}

	bent := core.NewSnake(3, body(v(1, 2, 0), v(1, 1, 0), v(0, 1, 0)))
	if bent.IsStanding() {
		t.Error("bent snake should not count as standing")
	}
}

func TestSnakeOccupiesPosition(t *testing.T) {
	snake := core.NewSnake(1, body(v(2, 1, 0), v(1, 1, 0)))
	if !snake.OccupiesPosition(v(1, 1, 0)) {
		t.Error("snake should occupy its own tail cell")
	}
	if snake.OccupiesPosition(v(3, 1, 0)) {
		t.Error("snake should not occupy a cell ahead of it")
	}
}

func TestSnakeTranslateAndRestore(t *testing.T) {
	snake := core.NewSnake(1, body(v(1, 4, 0), v(0, 4, 0)))
	before := append([]core.Vec3(nil), snake.Positions()...)

	snake.Translate(core.Down)
	snake.Translate(core.Down)
	if snake.HeadPosition() != v(1, 2, 0) {
		t.Errorf("head = %v after two drops, want (1,2,0)", snake.HeadPosition())
	}

	snake.SetPositions(before)
	if snake.HeadPosition() != v(1, 4, 0) || snake.TailPosition() != v(0, 4, 0) {
		t.Errorf("positions not restored: head %v tail %v", snake.HeadPosition(), snake.TailPosition())
	}
}

func TestNewSnakeRejectsEmptyBody(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("empty body should panic")
		}
	}()
	core.NewSnake(1, nil)
}
