// Package levels provides level loading for Coilfall.
// This package depends on core but core does not depend on levels.
package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-coilfall/internal/games/coilfall/core"
	"github.com/vovakirdan/tui-coilfall/internal/games/coilfall/levels/formats"
)

// Level represents a complete level definition.
type Level struct {
	ID       string
	Name     string
	Author   string
	Par      int
	Spawns   []core.EntitySpawn
	Snakes   [][]core.SnakeElement
	FilePath string
}

// ToTemplate assembles the simulation template for this level.
func (l *Level) ToTemplate() *core.LevelTemplate {
	return &core.LevelTemplate{
		Snakes:   l.Snakes,
		Entities: l.Spawns,
	}
}

// Validate checks the level can actually be instantiated.
func (l *Level) Validate() error {
	return l.ToTemplate().Validate()
}

// NewSim creates a fresh simulation of this level.
func (l *Level) NewSim(cfg core.Config) (*core.Sim, error) {
	return core.NewSim(l.ToTemplate(), cfg)
}

// Bounds returns the inclusive X and Y extents over every spawn and
// snake segment, across all depth slices.
func (l *Level) Bounds() (minX, maxX, minY, maxY int) {
	first := true
	grow := func(p core.Vec3) {
		if first {
			minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
			first = false
			return
		}
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	for _, spawn := range l.Spawns {
		grow(spawn.Position)
	}
	for _, body := range l.Snakes {
		for _, el := range body {
			grow(el.Position)
		}
	}
	return minX, maxX, minY, maxY
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files. An empty Root
// serves the embedded campaign instead.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	if l.Root == "" {
		return Campaign()
	}

	var lvls []Level

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		level, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}

		lvls = append(lvls, level)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(lvls, func(i, j int) bool {
		return lvls[i].ID < lvls[j].ID
	})

	return lvls, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	level := toLevel(parsed, path)
	if err := level.Validate(); err != nil {
		return Level{}, fmt.Errorf("validating file %s: %w", path, err)
	}
	return level, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	lvls, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range lvls {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("level not found: %s", id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	lvls, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(lvls))
	for i, lvl := range lvls {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// toLevel fills loader-level fields the parser leaves blank. Plain
// text boards carry no metadata, so the ID falls back to the file
// name without its extension.
func toLevel(parsed formats.Level, path string) Level {
	level := Level{
		ID:       parsed.ID,
		Name:     parsed.Name,
		Author:   parsed.Author,
		Par:      parsed.Par,
		Spawns:   parsed.Spawns,
		Snakes:   parsed.Snakes,
		FilePath: path,
	}
	if level.ID == "" {
		base := filepath.Base(path)
		level.ID = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if level.Name == "" {
		level.Name = level.ID
	}
	return level
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	case ".txt":
		return formats.ParseASCII(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
