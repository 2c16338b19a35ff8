package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadCoilfall loads the coilfall configuration. Values missing from a
// file keep their defaults, so partial configs are fine.
// Search order: customPath -> ~/.coilfall/config.yaml -> ./configs/coilfall.yaml -> embedded default
func LoadCoilfall(customPath string) (CoilfallConfig, error) {
	cfg := DefaultCoilfallConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config file
	if userCfgPath := UserConfigPath(); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultCoilfallConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/coilfall.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultCoilfallConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultCoilfallYAML, &cfg); err != nil {
		return DefaultCoilfallConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// UserConfigPath returns the path to the user config file, or empty if
// the home directory is unavailable.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".coilfall", "config.yaml")
}

// ApplyCoilfallPreset modifies the config based on a difficulty preset.
func ApplyCoilfallPreset(cfg *CoilfallConfig, preset DifficultyPreset) {
	cfg.Rules.UndoLimit = UndoLimitForPreset(preset)

	// Adjust pacing alongside the undo budget
	switch preset {
	case DifficultyRelaxed:
		cfg.Physics.Gravity = 22.0
		cfg.Physics.MoveVelocity = 4.0
	case DifficultyIronman:
		cfg.Physics.Gravity = 40.0
		cfg.Physics.MoveVelocity = 6.5
	}
}
