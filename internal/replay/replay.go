// Package replay records Breakout sessions as msgpack files and verifies them
// by re-running the simulation headlessly.
package replay

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

// FormatVersion is bumped when the file layout changes.
const FormatVersion = 1

// ErrMismatch is returned when a replay does not reproduce its recorded hash.
var ErrMismatch = errors.New("replay: final state mismatch")

// Op identifies a recorded session call.
type Op uint8

const (
	OpStart Op = iota + 1
	OpFrame
	OpContinue
	OpQuit
)

// Input bits packed into Frame.Keys.
const (
	inputLeft uint8 = 1 << iota
	inputRight
	inputLaunch
)

// Frame is one recorded call.
type Frame struct {
	Op      Op    `msgpack:"o"`
	Level   int   `msgpack:"l,omitempty"`
	Keys    uint8 `msgpack:"i,omitempty"` // Packed Input bits
	Elapsed int64 `msgpack:"e,omitempty"` // Nanoseconds
}

// Recording is a complete, self-contained replay.
type Recording struct {
	Version   int                   `msgpack:"v"`
	ID        string                `msgpack:"id"`
	GameID    string                `msgpack:"g"`
	Seed      int64                 `msgpack:"s"`
	CreatedAt time.Time             `msgpack:"t"`
	Config    config.BreakoutConfig `msgpack:"c"`
	Levels    []breakout.Level      `msgpack:"lv"`
	Frames    []Frame               `msgpack:"f"`
	FinalHash uint64                `msgpack:"h"`
}

// Input unpacks the frame's input bits.
func (f Frame) Input() breakout.Input {
	return breakout.Input{
		Left:   f.Keys&inputLeft != 0,
		Right:  f.Keys&inputRight != 0,
		Launch: f.Keys&inputLaunch != 0,
	}
}

func packInput(in breakout.Input) uint8 {
	var b uint8
	if in.Left {
		b |= inputLeft
	}
	if in.Right {
		b |= inputRight
	}
	if in.Launch {
		b |= inputLaunch
	}
	return b
}

// Encode writes a recording as msgpack.
func Encode(w io.Writer, rec *Recording) error {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("yaml")
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("replay: encode: %w", err)
	}
	return nil
}

// Decode reads a msgpack recording and checks its header.
func Decode(r io.Reader) (*Recording, error) {
	dec := msgpack.NewDecoder(r)
	dec.SetCustomStructTag("yaml")

	var rec Recording
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("replay: decode: %w", err)
	}
	if rec.Version != FormatVersion {
		return nil, fmt.Errorf("replay: unsupported version %d", rec.Version)
	}
	if _, err := uuid.Parse(rec.ID); err != nil {
		return nil, fmt.Errorf("replay: bad id %q: %w", rec.ID, err)
	}
	return &rec, nil
}

// Save writes a recording to path.
func Save(path string, rec *Recording) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("replay: create %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	if err := Encode(w, rec); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("replay: write %s: %w", path, err)
	}
	return f.Close()
}

// Load reads a recording from path.
func Load(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: open %s: %w", path, err)
	}
	defer f.Close()

	return Decode(bufio.NewReader(f))
}
