package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// TestOscillatorSine verifies sine wave generation stays in range
func TestOscillatorSine(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(440.0, 100*time.Millisecond, WaveSine, rate)

	samples := make([][2]float64, 100)
	n, ok := osc.Stream(samples)

	if !ok {
		t.Error("Expected stream to return ok=true")
	}
	if n != 100 {
		t.Errorf("Expected to stream 100 samples, got %d", n)
	}

	for i := 0; i < n; i++ {
		if samples[i][0] < -1.0 || samples[i][0] > 1.0 {
			t.Errorf("Sample %d out of range: %f", i, samples[i][0])
		}
		if samples[i][0] != samples[i][1] {
			t.Errorf("Sample %d channels differ: %f vs %f", i, samples[i][0], samples[i][1])
		}
	}

	if osc.Err() != nil {
		t.Errorf("Expected no error, got: %v", osc.Err())
	}
}

// TestOscillatorSquare verifies square waves only hit the two extremes
func TestOscillatorSquare(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(220.0, 50*time.Millisecond, WaveSquare, rate)

	samples := make([][2]float64, 50)
	n, _ := osc.Stream(samples)

	for i := 0; i < n; i++ {
		if samples[i][0] != 1.0 && samples[i][0] != -1.0 {
			t.Errorf("Square sample %d = %f, want -1 or 1", i, samples[i][0])
		}
	}
}

// TestOscillatorEndsAfterDuration verifies the streamer is finite
func TestOscillatorEndsAfterDuration(t *testing.T) {
	rate := beep.SampleRate(44100)
	duration := 10 * time.Millisecond
	osc := NewOscillator(440.0, duration, WaveSine, rate)

	total := 0
	buf := make([][2]float64, 128)
	for {
		n, ok := osc.Stream(buf)
		total += n
		if !ok {
			break
		}
	}

	if want := rate.N(duration); total != want {
		t.Errorf("Streamed %d samples, want %d", total, want)
	}
}

// TestEnvelopeAttackRamp verifies the attack phase fades in
func TestEnvelopeAttackRamp(t *testing.T) {
	rate := beep.SampleRate(44100)
	duration := 100 * time.Millisecond

	// A constant full-scale square makes the ramp easy to observe
	osc := NewOscillator(0.0, duration, WaveSquare, rate)
	env := NewEnvelope(osc, duration, 50*time.Millisecond, 0, rate)

	samples := make([][2]float64, rate.N(40*time.Millisecond))
	n, ok := env.Stream(samples)
	if !ok || n != len(samples) {
		t.Fatalf("Stream() = %d, %v, want full buffer", n, ok)
	}

	if first, last := samples[0][0], samples[n-1][0]; first >= last {
		t.Errorf("Attack did not ramp up: first %f, last %f", first, last)
	}
}

// TestSoundEffectsStream verifies every effect produces audible samples
func TestSoundEffectsStream(t *testing.T) {
	rate := beep.SampleRate(44100)
	types := []SoundType{SoundMove, SoundEat, SoundUndo, SoundLand, SoundSwitch, SoundDeath, SoundComplete}

	for _, st := range types {
		s := GetSoundEffect(st, rate)
		if s == nil {
			t.Errorf("GetSoundEffect(%d) returned nil", st)
			continue
		}

		nonZero := false
		buf := make([][2]float64, 512)
		for {
			n, ok := s.Stream(buf)
			for i := 0; i < n; i++ {
				if buf[i][0] < -1.0 || buf[i][0] > 1.0 {
					t.Errorf("Effect %d sample out of range: %f", st, buf[i][0])
				}
				if buf[i][0] != 0 {
					nonZero = true
				}
			}
			if !ok {
				break
			}
		}

		if !nonZero {
			t.Errorf("Effect %d produced only silence", st)
		}
	}
}

// TestGetSoundEffectUnknown verifies unknown types return nil
func TestGetSoundEffectUnknown(t *testing.T) {
	if s := GetSoundEffect(SoundType(99), beep.SampleRate(44100)); s != nil {
		t.Error("Expected nil streamer for unknown sound type")
	}
}
