package tui

import (
	coilfallgame "github.com/vovakirdan/tui-coilfall/internal/games/coilfall"
	"github.com/vovakirdan/tui-coilfall/internal/games/coilfall/core"
	"github.com/vovakirdan/tui-coilfall/internal/platform/audio"
	"github.com/vovakirdan/tui-coilfall/internal/registry"
)

// soundManager is shared by all local game models. SSH sessions leave
// it unset, effects only make sense on the player's own machine.
var soundManager *audio.SoundManager

// SetSoundManager installs the effect player used during play.
func SetSoundManager(sm *audio.SoundManager) {
	soundManager = sm
}

// GetSoundManager returns the installed effect player, or nil.
func GetSoundManager() *audio.SoundManager {
	return soundManager
}

// soundForEvent maps a simulation event to its effect.
func soundForEvent(kind core.EventKind) (audio.SoundType, bool) {
	switch kind {
	case core.EvSnakeMoved:
		return audio.SoundMove, true
	case core.EvFoodEaten:
		return audio.SoundEat, true
	case core.EvUndoApplied:
		return audio.SoundUndo, true
	case core.EvFallLanded:
		return audio.SoundLand, true
	case core.EvSnakeSelected:
		return audio.SoundSwitch, true
	case core.EvLandedOnSpikes, core.EvFellOffWorld:
		return audio.SoundDeath, true
	case core.EvLevelCompleted:
		return audio.SoundComplete, true
	}
	return 0, false
}

// playEventSounds feeds the latest tick's events to the sound manager.
func playEventSounds(game registry.Game) {
	sm := soundManager
	if sm == nil {
		return
	}

	cg, ok := game.(*coilfallgame.Game)
	if !ok {
		return
	}

	for _, ev := range cg.Events() {
		if st, ok := soundForEvent(ev.Kind); ok {
			sm.Play(st)
		}
	}
}
