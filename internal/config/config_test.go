package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-coilfall/internal/games/coilfall/core"
)

func TestDefaultConfigMatchesSimDefaults(t *testing.T) {
	got := DefaultCoilfallConfig().SimConfig()
	want := core.DefaultConfig()

	if got != want {
		t.Errorf("SimConfig() = %+v, want %+v", got, want)
	}
}

func TestDefaultYAMLMatchesHardcoded(t *testing.T) {
	var cfg CoilfallConfig
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded default YAML failed to parse: %v", err)
	}

	if cfg != DefaultCoilfallConfig() {
		t.Errorf("embedded default = %+v, want %+v", cfg, DefaultCoilfallConfig())
	}
}

func TestLoadCoilfallCustomPath(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "custom.yaml")

	data := []byte("physics:\n  gravity: 45.0\n  move_velocity: 6.0\n  jump_velocity: 12.0\nrules:\n  fall_depth: -4\n  undo_limit: 8\ninterface:\n  theme: neon\n  sound: false\n")
	if err := os.WriteFile(cfgPath, data, 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := LoadCoilfall(cfgPath)
	if err != nil {
		t.Fatalf("LoadCoilfall() failed: %v", err)
	}

	if cfg.Physics.Gravity != 45.0 {
		t.Errorf("Gravity = %v, want 45.0", cfg.Physics.Gravity)
	}
	if cfg.Rules.UndoLimit != 8 {
		t.Errorf("UndoLimit = %d, want 8", cfg.Rules.UndoLimit)
	}
	if cfg.Interface.Theme != "neon" {
		t.Errorf("Theme = %q, want neon", cfg.Interface.Theme)
	}
	if cfg.Interface.Sound {
		t.Error("Sound should be disabled")
	}
}

func TestLoadCoilfallPartialCustomPath(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "partial.yaml")

	// Only override the undo budget, everything else keeps defaults
	data := []byte("rules:\n  undo_limit: 5\n")
	if err := os.WriteFile(cfgPath, data, 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := LoadCoilfall(cfgPath)
	if err != nil {
		t.Fatalf("LoadCoilfall() failed: %v", err)
	}

	if cfg.Rules.UndoLimit != 5 {
		t.Errorf("UndoLimit = %d, want 5", cfg.Rules.UndoLimit)
	}
	if cfg.Physics.Gravity != 30.0 {
		t.Errorf("Gravity = %v, want default 30.0", cfg.Physics.Gravity)
	}
	if !cfg.Interface.Sound {
		t.Error("Sound should keep its default")
	}
}

func TestLoadCoilfallMissingCustomPath(t *testing.T) {
	_, err := LoadCoilfall(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("Expected error for missing custom config")
	}
}

func TestLoadCoilfallMalformedCustomPath(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "bad.yaml")

	if err := os.WriteFile(cfgPath, []byte("physics: [not a map"), 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	_, err := LoadCoilfall(cfgPath)
	if err == nil {
		t.Error("Expected error for malformed custom config")
	}
}

func TestApplyCoilfallPreset(t *testing.T) {
	// Classic keeps the defaults
	cfg := DefaultCoilfallConfig()
	ApplyCoilfallPreset(&cfg, DifficultyClassic)
	if cfg.Rules.UndoLimit != 0 {
		t.Errorf("classic UndoLimit = %d, want 0", cfg.Rules.UndoLimit)
	}
	if cfg.Physics.Gravity != 30.0 {
		t.Errorf("classic Gravity = %v, want 30.0", cfg.Physics.Gravity)
	}

	// Relaxed slows the pacing but keeps undo unlimited
	cfg = DefaultCoilfallConfig()
	ApplyCoilfallPreset(&cfg, DifficultyRelaxed)
	if cfg.Rules.UndoLimit != 0 {
		t.Errorf("relaxed UndoLimit = %d, want 0", cfg.Rules.UndoLimit)
	}
	if cfg.Physics.Gravity >= 30.0 {
		t.Errorf("relaxed Gravity = %v, want below 30.0", cfg.Physics.Gravity)
	}

	// Ironman caps undos and speeds the pacing up
	cfg = DefaultCoilfallConfig()
	ApplyCoilfallPreset(&cfg, DifficultyIronman)
	if cfg.Rules.UndoLimit != 3 {
		t.Errorf("ironman UndoLimit = %d, want 3", cfg.Rules.UndoLimit)
	}
	if cfg.Physics.Gravity <= 30.0 {
		t.Errorf("ironman Gravity = %v, want above 30.0", cfg.Physics.Gravity)
	}
}

func TestIsKnownPreset(t *testing.T) {
	for _, preset := range []DifficultyPreset{DifficultyRelaxed, DifficultyClassic, DifficultyIronman} {
		if !IsKnownPreset(preset) {
			t.Errorf("IsKnownPreset(%q) = false, want true", preset)
		}
	}
	if IsKnownPreset("nightmare") {
		t.Error(`IsKnownPreset("nightmare") = true, want false`)
	}
}
