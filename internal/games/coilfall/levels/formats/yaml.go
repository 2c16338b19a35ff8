package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-coilfall/internal/games/coilfall/core"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID     string      `yaml:"id"`
	Name   string      `yaml:"name"`
	Author string      `yaml:"author,omitempty"`
	Par    int         `yaml:"par,omitempty"`
	Slices []YAMLSlice `yaml:"slices"`
}

// YAMLSlice is one horizontal depth layer of the board.
type YAMLSlice struct {
	Z    int      `yaml:"z"`
	Rows []string `yaml:"rows"`
}

// ParseYAML parses a YAML level file. Every slice must have the same
// number of rows so that the row-to-Y mapping is shared.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if yl.ID == "" {
		return Level{}, fmt.Errorf("level has no id")
	}
	if len(yl.Slices) == 0 {
		return Level{}, fmt.Errorf("level %s has no slices", yl.ID)
	}

	height := len(yl.Slices[0].Rows)
	cells := make(map[core.Vec3]rune)
	seenZ := make(map[int]bool)
	for _, slice := range yl.Slices {
		if seenZ[slice.Z] {
			return Level{}, fmt.Errorf("level %s: duplicate slice z=%d", yl.ID, slice.Z)
		}
		seenZ[slice.Z] = true
		if len(slice.Rows) != height {
			return Level{}, fmt.Errorf("level %s: slice z=%d has %d rows, want %d",
				yl.ID, slice.Z, len(slice.Rows), height)
		}
		if err := parseRows(slice.Rows, slice.Z, cells); err != nil {
			return Level{}, fmt.Errorf("level %s: %w", yl.ID, err)
		}
	}

	spawns, snakes, err := buildEntities(cells)
	if err != nil {
		return Level{}, fmt.Errorf("level %s: %w", yl.ID, err)
	}

	name := yl.Name
	if name == "" {
		name = yl.ID
	}

	return Level{
		ID:     yl.ID,
		Name:   name,
		Author: yl.Author,
		Par:    yl.Par,
		Spawns: spawns,
		Snakes: snakes,
	}, nil
}
