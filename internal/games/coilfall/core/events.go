package core

import "fmt"

// EventKind tags one outbound simulation event.
type EventKind uint8

const (
	EvSnakeMoved EventKind = iota
	EvEntityPushed
	EvFoodEaten
	EvSnakeGrew
	EvSegmentDespawned
	EvFoodRespawned
	EvFallStarted
	EvFallLanded
	EvLandedOnSpikes
	EvFellOffWorld
	EvUndoApplied
	EvSnakeReachedGoal
	EvSnakeExitedLevel
	EvSnakeSelected
	EvLevelCompleted
)

func (k EventKind) String() string {
	switch k {
	case EvSnakeMoved:
		return "snake-moved"
	case EvEntityPushed:
		return "entity-pushed"
	case EvFoodEaten:
		return "food-eaten"
	case EvSnakeGrew:
		return "snake-grew"
	case EvSegmentDespawned:
		return "segment-despawned"
	case EvFoodRespawned:
		return "food-respawned"
	case EvFallStarted:
		return "fall-started"
	case EvFallLanded:
		return "fall-landed"
	case EvLandedOnSpikes:
		return "landed-on-spikes"
	case EvFellOffWorld:
		return "fell-off-world"
	case EvUndoApplied:
		return "undo-applied"
	case EvSnakeReachedGoal:
		return "snake-reached-goal"
	case EvSnakeExitedLevel:
		return "snake-exited-level"
	case EvSnakeSelected:
		return "snake-selected"
	case EvLevelCompleted:
		return "level-completed"
	default:
		return fmt.Sprintf("ev(%d)", uint8(k))
	}
}

// Event is one outbound notification from the simulation. The core
// never waits on consumers; the tick returns the batch and moves on.
type Event struct {
	Kind     EventKind   `json:"kind"`
	Entity   OccupantRef `json:"entity,omitempty"`
	Position Vec3        `json:"position,omitempty"`
	Distance int         `json:"distance,omitempty"`
}

func (e Event) String() string {
	return fmt.Sprintf("%s %v at %v", e.Kind, e.Entity, e.Position)
}
