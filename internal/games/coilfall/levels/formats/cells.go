// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/tui-coilfall/internal/games/coilfall/core"
)

// Level represents a parsed level ready for use.
type Level struct {
	ID     string
	Name   string
	Author string
	Par    int
	Spawns []core.EntitySpawn
	Snakes [][]core.SnakeElement
}

// Board grammar, one rune per cell:
//
//	.  empty        #  wall         o  food
//	+  spike        X  goal         =  box
//	_  trigger
//	a-f  snake body, A-F the matching head
//
// Row 0 is the top of the board, so Y = rows-1-row and X = column.
var tileKinds = map[rune]core.EntityKind{
	'#': core.KindWall,
	'o': core.KindFood,
	'+': core.KindSpike,
	'X': core.KindGoal,
	'=': core.KindBox,
	'_': core.KindTrigger,
}

func isSnakeBody(r rune) bool { return r >= 'a' && r <= 'f' }
func isSnakeHead(r rune) bool { return r >= 'A' && r <= 'F' }

// parseRows reads one Z slice of the board grammar into the cell map.
func parseRows(rows []string, z int, cells map[core.Vec3]rune) error {
	height := len(rows)
	for r, row := range rows {
		for c, tile := range []rune(row) {
			if tile == '.' || tile == ' ' {
				continue
			}
			if _, ok := tileKinds[tile]; !ok && !isSnakeBody(tile) && !isSnakeHead(tile) {
				return fmt.Errorf("unknown tile %q at row %d column %d", tile, r, c)
			}
			pos := core.Vec3{X: c, Y: height - 1 - r, Z: z}
			cells[pos] = tile
		}
	}
	return nil
}

// buildEntities turns the cell map into spawn lists and snake bodies.
// Cells are walked in sorted order so spawn lists come out the same
// for the same board.
func buildEntities(cells map[core.Vec3]rune) ([]core.EntitySpawn, [][]core.SnakeElement, error) {
	positions := make([]core.Vec3, 0, len(cells))
	for pos := range cells {
		positions = append(positions, pos)
	}
	sort.Slice(positions, func(i, j int) bool {
		a, b := positions[i], positions[j]
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})

	var spawns []core.EntitySpawn
	heads := make(map[rune]core.Vec3)
	hasHead := make(map[rune]bool)
	bodies := make(map[rune]map[core.Vec3]bool)

	for _, pos := range positions {
		tile := cells[pos]
		if kind, ok := tileKinds[tile]; ok {
			spawns = append(spawns, core.EntitySpawn{Kind: kind, Position: pos})
			continue
		}
		if isSnakeHead(tile) {
			letter := tile - 'A' + 'a'
			if hasHead[letter] {
				return nil, nil, fmt.Errorf("snake %q has two heads", letter)
			}
			hasHead[letter] = true
			heads[letter] = pos
			continue
		}
		if bodies[tile] == nil {
			bodies[tile] = make(map[core.Vec3]bool)
		}
		bodies[tile][pos] = true
	}

	for letter := range bodies {
		if !hasHead[letter] {
			return nil, nil, fmt.Errorf("snake %q has body cells but no head", letter)
		}
	}

	letters := make([]rune, 0, len(heads))
	for letter := range heads {
		letters = append(letters, letter)
	}
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })

	snakes := make([][]core.SnakeElement, 0, len(letters))
	for _, letter := range letters {
		parts, err := chainSnake(heads[letter], bodies[letter])
		if err != nil {
			return nil, nil, fmt.Errorf("snake %q: %w", letter, err)
		}
		snakes = append(snakes, parts)
	}

	return spawns, snakes, nil
}

var chainDirections = []core.Vec3{core.Right, core.Left, core.Up, core.Down, core.Forward, core.Back}

// chainSnake orders a snake's cells head to tail by following cell
// adjacency from the head. Forked or disconnected bodies are rejected;
// a body that folds back against itself cannot be written in this
// grammar at all.
func chainSnake(head core.Vec3, bodySet map[core.Vec3]bool) ([]core.SnakeElement, error) {
	chain := []core.Vec3{head}
	current := head
	for len(bodySet) > 0 {
		var next core.Vec3
		links := 0
		for _, dir := range chainDirections {
			cand := current.Add(dir)
			if bodySet[cand] {
				links++
				next = cand
			}
		}
		if links == 0 {
			return nil, fmt.Errorf("%d body cells not connected to the head", len(bodySet))
		}
		if links > 1 {
			return nil, fmt.Errorf("body forks at %v", current)
		}
		delete(bodySet, next)
		chain = append(chain, next)
		current = next
	}

	parts := make([]core.SnakeElement, len(chain))
	for i := range chain {
		parts[i].Position = chain[i]
	}
	for i := 0; i < len(chain)-1; i++ {
		parts[i].Direction = chain[i].Sub(chain[i+1])
	}
	if len(parts) > 1 {
		parts[len(parts)-1].Direction = parts[len(parts)-2].Direction
	} else {
		parts[0].Direction = core.Right
	}
	return parts, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".txt", ".yaml", ".yml"}
}
