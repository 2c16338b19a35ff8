package formats

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-coilfall/internal/games/coilfall/core"
)

// ParseASCII parses a plain text board: one Z=0 slice, no metadata.
// The caller fills in the ID, typically from the file name.
func ParseASCII(data []byte) (Level, error) {
	text := strings.TrimRight(string(data), "\n")
	if strings.TrimSpace(text) == "" {
		return Level{}, fmt.Errorf("empty board")
	}

	rows := strings.Split(text, "\n")
	for i := range rows {
		rows[i] = strings.TrimRight(rows[i], "\r")
	}

	cells := make(map[core.Vec3]rune)
	if err := parseRows(rows, 0, cells); err != nil {
		return Level{}, err
	}

	spawns, snakes, err := buildEntities(cells)
	if err != nil {
		return Level{}, err
	}

	return Level{Spawns: spawns, Snakes: snakes}, nil
}
