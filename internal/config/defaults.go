package config

import (
	_ "embed"
)

//go:embed defaults/coilfall.yaml
var defaultCoilfallYAML []byte

// DefaultCoilfallConfig returns the default coilfall configuration.
// The values match the simulation defaults.
func DefaultCoilfallConfig() CoilfallConfig {
	return CoilfallConfig{
		Physics: CoilfallPhysics{
			Gravity:      30.0,
			MoveVelocity: 5.0,
			JumpVelocity: 10.0,
		},
		Rules: CoilfallRules{
			FallDepth: -2,
			UndoLimit: 0,
		},
		Interface: CoilfallInterface{
			Theme: "default",
			Sound: true,
		},
	}
}

// DefaultYAML returns the embedded default YAML, suitable for writing
// a starter user config file.
func DefaultYAML() []byte {
	return defaultCoilfallYAML
}
