// Package config provides YAML-based game configuration loading and
// difficulty presets for the coilfall puzzle.
package config

import (
	"github.com/vovakirdan/tui-coilfall/internal/games/coilfall/core"
)

// CoilfallConfig contains all configuration for the coilfall game.
type CoilfallConfig struct {
	Physics   CoilfallPhysics   `yaml:"physics"`
	Rules     CoilfallRules     `yaml:"rules"`
	Interface CoilfallInterface `yaml:"interface"`
}

// CoilfallPhysics defines animation pacing parameters.
type CoilfallPhysics struct {
	Gravity      float64 `yaml:"gravity"`       // Fall acceleration, cells per second squared
	MoveVelocity float64 `yaml:"move_velocity"` // Move animation speed, cells per second
	JumpVelocity float64 `yaml:"jump_velocity"` // Initial climb velocity, cells per second
}

// CoilfallRules defines gameplay rule parameters.
type CoilfallRules struct {
	FallDepth int `yaml:"fall_depth"` // Y below which a falling snake is lost
	UndoLimit int `yaml:"undo_limit"` // Undos allowed per level, 0 = unlimited
}

// CoilfallInterface defines presentation parameters.
type CoilfallInterface struct {
	Theme string `yaml:"theme"` // "default", "neon", "pastel" or "mono"
	Sound bool   `yaml:"sound"`
}

// SimConfig converts the physics and rules sections into simulation tuning.
func (c CoilfallConfig) SimConfig() core.Config {
	return core.Config{
		Gravity:      c.Physics.Gravity,
		MoveVelocity: c.Physics.MoveVelocity,
		JumpVelocity: c.Physics.JumpVelocity,
		FallDepth:    c.Rules.FallDepth,
		UndoLimit:    c.Rules.UndoLimit,
	}
}

// DifficultyPreset represents a named rule preset.
type DifficultyPreset string

const (
	DifficultyRelaxed DifficultyPreset = "relaxed"
	DifficultyClassic DifficultyPreset = "classic"
	DifficultyIronman DifficultyPreset = "ironman"
)

// UndoLimitForPreset returns the per-level undo budget for a preset.
func UndoLimitForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyIronman:
		return 3
	default:
		return 0
	}
}

// IsKnownPreset returns true if the preset name is recognized.
func IsKnownPreset(preset DifficultyPreset) bool {
	switch preset {
	case DifficultyRelaxed, DifficultyClassic, DifficultyIronman:
		return true
	}
	return false
}
