package trace

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-coilfall/internal/games/coilfall/core"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.trace.zst")

	hdr := Header{Config: core.DefaultConfig(), TickRate: 60}
	w, err := Create(path, hdr)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if err := w.WriteLevel("01-first-steps"); err != nil {
		t.Fatalf("WriteLevel() failed: %v", err)
	}

	dir := core.Right
	events := []core.Event{
		{Kind: core.EvSnakeMoved, Entity: core.OccupantRef{ID: 1, Kind: core.KindSnake}, Position: core.Vec3{X: 3, Y: 1, Z: 2}},
	}
	if err := w.WriteTick(core.Input{Direction: &dir}, events); err != nil {
		t.Fatalf("WriteTick() failed: %v", err)
	}
	if err := w.WriteTick(core.Input{}, nil); err != nil {
		t.Fatalf("WriteTick() failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer r.Close()

	got := r.Header()
	if got.Version != Version {
		t.Errorf("Header version = %d, want %d", got.Version, Version)
	}
	if got.TickRate != 60 {
		t.Errorf("Header tick rate = %d, want 60", got.TickRate)
	}
	if got.Config != core.DefaultConfig() {
		t.Errorf("Header config = %+v, want defaults", got.Config)
	}
	if got.Recorded.IsZero() {
		t.Error("Header recorded time was not stamped")
	}

	// Level marker
	e, err := r.Next()
	if err != nil {
		t.Fatalf("Next() failed: %v", err)
	}
	if e.Level != "01-first-steps" {
		t.Errorf("Level = %q, want 01-first-steps", e.Level)
	}

	// Tick with input and one event
	e, err = r.Next()
	if err != nil {
		t.Fatalf("Next() failed: %v", err)
	}
	if e.Tick != 0 {
		t.Errorf("Tick = %d, want 0", e.Tick)
	}
	if e.Input == nil || e.Input.Direction == nil || *e.Input.Direction != core.Right {
		t.Errorf("Input did not round-trip: %+v", e.Input)
	}
	if len(e.Events) != 1 || e.Events[0] != events[0] {
		t.Errorf("Events did not round-trip: %+v", e.Events)
	}

	// Idle tick, input omitted
	e, err = r.Next()
	if err != nil {
		t.Fatalf("Next() failed: %v", err)
	}
	if e.Tick != 1 {
		t.Errorf("Tick = %d, want 1", e.Tick)
	}
	if e.Input != nil {
		t.Errorf("Idle tick carried input: %+v", e.Input)
	}

	if _, err := r.Next(); err != io.EOF {
		t.Errorf("Expected io.EOF at end, got %v", err)
	}
}

func TestWriterTickNumbering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ticks.trace.zst")

	w, err := Create(path, Header{TickRate: 60})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	// Two levels, tick counter restarts at each marker
	w.WriteLevel("01-first-steps")
	w.WriteTick(core.Input{}, nil)
	w.WriteTick(core.Input{}, nil)
	w.WriteLevel("02-appetite")
	w.WriteTick(core.Input{}, nil)
	if err := w.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer r.Close()

	wantTicks := []uint64{0, 0, 1, 0, 0}
	wantLevels := []string{"01-first-steps", "", "", "02-appetite", ""}
	for i := range wantTicks {
		e, err := r.Next()
		if err != nil {
			t.Fatalf("Next() entry %d failed: %v", i, err)
		}
		if e.Tick != wantTicks[i] {
			t.Errorf("Entry %d tick = %d, want %d", i, e.Tick, wantTicks[i])
		}
		if e.Level != wantLevels[i] {
			t.Errorf("Entry %d level = %q, want %q", i, e.Level, wantLevels[i])
		}
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.trace.zst"))
	if err == nil {
		t.Error("Expected error for missing trace file")
	}
}

func TestCreateMakesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "run.trace.zst")

	w, err := Create(path, Header{TickRate: 30})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() after nested Create failed: %v", err)
	}
	defer r.Close()

	if r.Header().TickRate != 30 {
		t.Errorf("Header tick rate = %d, want 30", r.Header().TickRate)
	}
}
