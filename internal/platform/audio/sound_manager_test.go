package audio

import (
	"testing"
)

// TestSoundManagerPlayWithoutInit verifies Play is safe before Initialize
func TestSoundManagerPlayWithoutInit(t *testing.T) {
	sm := NewSoundManager()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Play panicked without initialization: %v", r)
		}
	}()

	sm.Play(SoundMove)
	sm.Play(SoundComplete)
	sm.Cleanup()
}

// TestSoundManagerEnabledToggle verifies the enabled flag round-trips
func TestSoundManagerEnabledToggle(t *testing.T) {
	sm := NewSoundManager()

	if !sm.Enabled() {
		t.Error("Expected sound to start enabled")
	}

	sm.SetEnabled(false)
	if sm.Enabled() {
		t.Error("Expected sound to be disabled")
	}

	// Disabled playback must still be safe
	sm.Play(SoundEat)

	sm.SetEnabled(true)
	if !sm.Enabled() {
		t.Error("Expected sound to be enabled again")
	}
}

// TestSoundManagerCleanupWithoutInit verifies Cleanup is a no-op before Initialize
func TestSoundManagerCleanupWithoutInit(t *testing.T) {
	sm := NewSoundManager()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Cleanup panicked without initialization: %v", r)
		}
	}()

	sm.Cleanup()
	sm.Cleanup()
}
