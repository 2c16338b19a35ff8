// Package trace records and replays simulation sessions as
// zstd-compressed JSONL. The first line is a Header, every following
// line is an Entry; together with the level files they reproduce a
// session tick for tick.
package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/tui-coilfall/internal/games/coilfall/core"
)

// Version is the current trace format version.
const Version = 1

// Header is the first line of a trace file.
type Header struct {
	Version  int         `json:"version"`
	Config   core.Config `json:"config"`
	TickRate int         `json:"tick_rate"`
	Recorded time.Time   `json:"recorded"`
}

// Entry is one recorded line. Entries with Level set mark a level load
// and reset the tick counter; all others carry one simulation tick.
type Entry struct {
	Tick   uint64       `json:"tick"`
	Level  string       `json:"level,omitempty"`
	Input  *core.Input  `json:"input,omitempty"`
	Events []core.Event `json:"events,omitempty"`
}

// Writer appends trace lines to a zstd-compressed JSONL file.
type Writer struct {
	mu   sync.Mutex
	f    *os.File
	enc  *zstd.Encoder
	w    *bufio.Writer
	tick uint64
}

// Create opens a trace file for writing and records the header.
// Missing parent directories are created.
func Create(path string, hdr Header) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("trace: cannot create directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("trace: cannot create %s: %w", path, err)
	}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		f.Close()
		return nil, err
	}

	w := &Writer{
		f:   f,
		enc: enc,
		w:   bufio.NewWriterSize(enc, 64*1024),
	}

	if hdr.Version == 0 {
		hdr.Version = Version
	}
	if hdr.Recorded.IsZero() {
		hdr.Recorded = time.Now().UTC()
	}
	if err := w.writeLine(hdr); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

// WriteLevel marks a level load and resets the tick counter.
func (w *Writer) WriteLevel(levelID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.tick = 0
	return w.writeLine(Entry{Level: levelID})
}

// WriteTick records one simulation tick. Idle ticks are recorded too,
// they still advance falls and animations on replay.
func (w *Writer) WriteTick(in core.Input, events []core.Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	e := Entry{Tick: w.tick, Events: events}
	if in.Direction != nil || in.Undo || in.Switch {
		e.Input = &in
	}
	w.tick++
	return w.writeLine(e)
}

func (w *Writer) writeLine(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

// Close flushes and closes the trace file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var err error
	if w.w != nil {
		_ = w.w.Flush()
	}
	if w.enc != nil {
		err = w.enc.Close()
		w.enc = nil
	}
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}
	w.w = nil
	return err
}

// Reader streams entries from a trace file.
type Reader struct {
	f      *os.File
	dec    *zstd.Decoder
	sc     *bufio.Scanner
	header Header
}

// Open reads the header of a trace file and prepares entry streaming.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("trace: cannot open %s: %w", path, err)
	}

	dec, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	r := &Reader{f: f, dec: dec, sc: sc}
	if !sc.Scan() {
		err := sc.Err()
		r.Close()
		if err != nil {
			return nil, fmt.Errorf("trace: read header: %w", err)
		}
		return nil, fmt.Errorf("trace: %s is empty", path)
	}
	if err := json.Unmarshal(sc.Bytes(), &r.header); err != nil {
		r.Close()
		return nil, fmt.Errorf("trace: parse header: %w", err)
	}
	return r, nil
}

// Header returns the trace header.
func (r *Reader) Header() Header {
	return r.header
}

// Next returns the next entry, or io.EOF after the last one.
func (r *Reader) Next() (Entry, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return Entry{}, err
		}
		return Entry{}, io.EOF
	}

	var e Entry
	if err := json.Unmarshal(r.sc.Bytes(), &e); err != nil {
		return Entry{}, fmt.Errorf("trace: parse entry: %w", err)
	}
	return e, nil
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	if r.dec != nil {
		r.dec.Close()
		r.dec = nil
	}
	if r.f != nil {
		err := r.f.Close()
		r.f = nil
		return err
	}
	return nil
}
