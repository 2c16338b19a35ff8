package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// SoundType identifies a synthesized game effect.
type SoundType int

const (
	SoundMove     SoundType = iota // Snake advanced a cell
	SoundEat                       // Food swallowed
	SoundUndo                      // Board rewound one move
	SoundLand                      // Falling piece touched down
	SoundSwitch                    // Active snake changed
	SoundDeath                     // Snake lost to spikes or the void
	SoundComplete                  // Level cleared
)

// oscillator generates a raw wave at a fixed frequency.
type oscillator struct {
	freq      float64
	phase     float64
	remaining int
	wave      WaveType
	rate      beep.SampleRate
}

// NewOscillator creates a finite streamer producing the given wave shape.
// Frequency is ignored for noise.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:      freq,
		remaining: rate.N(duration),
		wave:      wave,
		rate:      rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	if o.remaining <= 0 {
		return 0, false
	}
	if len(samples) > o.remaining {
		samples = samples[:o.remaining]
	}

	for i := range samples {
		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
	}

	o.remaining -= len(samples)
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope shapes a stream with linear attack and release ramps.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope wraps a streamer with attack/release volume shaping over
// the given total duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.total {
		return 0, false
	}
	if remaining := e.total - e.position; len(samples) > remaining {
		samples = samples[:remaining]
	}

	n, ok = e.streamer.Stream(samples)

	releaseStart := e.total - e.release
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attack && e.attack > 0 {
			vol = float64(e.position) / float64(e.attack)
		} else if e.position >= releaseStart && e.release > 0 {
			vol = float64(e.total-e.position) / float64(e.release)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a streamer. math.Log2(0) is -Inf, so zero volume
// becomes a silent stream instead.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateMoveSound generates a soft tick for a completed move.
func CreateMoveSound(rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(330.0, 45*time.Millisecond, WaveSine, rate)
	shaped := NewEnvelope(osc, 45*time.Millisecond, 5*time.Millisecond, 30*time.Millisecond, rate)
	return newVolume(shaped, 0.25)
}

// CreateEatSound generates a short bell for swallowed food.
func CreateEatSound(rate beep.SampleRate) beep.Streamer {
	// Fundamental (A5) with an octave overtone
	fund := NewOscillator(880.0, 180*time.Millisecond, WaveSine, rate)
	fundShaped := NewEnvelope(fund, 180*time.Millisecond, 5*time.Millisecond, 150*time.Millisecond, rate)

	over := NewOscillator(1760.0, 180*time.Millisecond, WaveSine, rate)
	overShaped := NewEnvelope(over, 180*time.Millisecond, 5*time.Millisecond, 90*time.Millisecond, rate)

	mixed := beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	)
	return newVolume(mixed, 0.5)
}

// CreateUndoSound generates a falling two-note rewind cue.
func CreateUndoSound(rate beep.SampleRate) beep.Streamer {
	// E5 down to A4
	n1 := NewOscillator(659.25, 60*time.Millisecond, WaveSquare, rate)
	n1Shaped := NewEnvelope(n1, 60*time.Millisecond, 5*time.Millisecond, 30*time.Millisecond, rate)

	n2 := NewOscillator(440.0, 80*time.Millisecond, WaveSquare, rate)
	n2Shaped := NewEnvelope(n2, 80*time.Millisecond, 5*time.Millisecond, 50*time.Millisecond, rate)

	return newVolume(beep.Seq(n1Shaped, n2Shaped), 0.3)
}

// CreateLandSound generates a low thud for a landing piece.
func CreateLandSound(rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(110.0, 90*time.Millisecond, WaveSine, rate)
	shaped := NewEnvelope(osc, 90*time.Millisecond, 2*time.Millisecond, 70*time.Millisecond, rate)
	return newVolume(shaped, 0.45)
}

// CreateSwitchSound generates a quick blip for snake selection.
func CreateSwitchSound(rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(523.25, 50*time.Millisecond, WaveSquare, rate)
	shaped := NewEnvelope(osc, 50*time.Millisecond, 3*time.Millisecond, 30*time.Millisecond, rate)
	return newVolume(shaped, 0.25)
}

// CreateDeathSound generates a harsh buzz for a lost snake.
func CreateDeathSound(rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(100.0, 250*time.Millisecond, WaveSaw, rate)
	shaped := NewEnvelope(osc, 250*time.Millisecond, 5*time.Millisecond, 180*time.Millisecond, rate)
	return newVolume(shaped, 0.4)
}

// CreateCompleteSound generates a rising triad for a cleared level.
func CreateCompleteSound(rate beep.SampleRate) beep.Streamer {
	// C5, E5, G5
	notes := []float64{523.25, 659.25, 783.99}
	streamers := make([]beep.Streamer, 0, len(notes))
	for _, freq := range notes {
		osc := NewOscillator(freq, 90*time.Millisecond, WaveSquare, rate)
		streamers = append(streamers, NewEnvelope(osc, 90*time.Millisecond, 5*time.Millisecond, 40*time.Millisecond, rate))
	}
	return newVolume(beep.Seq(streamers...), 0.4)
}

// GetSoundEffect returns the streamer for the given sound type.
func GetSoundEffect(soundType SoundType, rate beep.SampleRate) beep.Streamer {
	switch soundType {
	case SoundMove:
		return CreateMoveSound(rate)
	case SoundEat:
		return CreateEatSound(rate)
	case SoundUndo:
		return CreateUndoSound(rate)
	case SoundLand:
		return CreateLandSound(rate)
	case SoundSwitch:
		return CreateSwitchSound(rate)
	case SoundDeath:
		return CreateDeathSound(rate)
	case SoundComplete:
		return CreateCompleteSound(rate)
	default:
		return nil
	}
}
