package core

import "fmt"

// EntitySpawn places one static or movable entity at level load.
type EntitySpawn struct {
	Kind     EntityKind
	Position Vec3
}

// LevelTemplate is everything the simulation needs to build a level
// instance: snake bodies head-first, and the placed entities. How the
// template was serialized is the loader's business.
type LevelTemplate struct {
	Snakes   [][]SnakeElement
	Entities []EntitySpawn
}

// Validate checks the template is playable: at least one snake, at most
// one goal, and no two spawns or segments sharing a cell.
func (t *LevelTemplate) Validate() error {
	if len(t.Snakes) == 0 {
		return fmt.Errorf("template: no snakes")
	}

	goals := 0
	seen := make(map[Vec3]bool)
	for _, e := range t.Entities {
		if e.Kind == KindGoal {
			goals++
		}
		if e.Kind == KindSnake {
			return fmt.Errorf("template: snakes must be listed in Snakes, not Entities")
		}
		if seen[e.Position] {
			return fmt.Errorf("template: duplicate spawn at %v", e.Position)
		}
		seen[e.Position] = true
	}
	if goals > 1 {
		return fmt.Errorf("template: %d goals, want at most 1", goals)
	}

	for i, body := range t.Snakes {
		if len(body) == 0 {
			return fmt.Errorf("template: snake %d has no segments", i)
		}
		for _, el := range body {
			if seen[el.Position] {
				return fmt.Errorf("template: snake %d overlaps spawn at %v", i, el.Position)
			}
			seen[el.Position] = true
		}
	}
	return nil
}
