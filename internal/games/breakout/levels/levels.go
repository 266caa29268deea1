// Package levels reads and writes Breakout level sets as YAML.
//
// A level file looks like:
//
//	levels:
//	  - name: Opening
//	    time: 90
//	    grid:
//	      - [1, 1, 2, 2]
//	      - [0, 9, 9, 0]
//
// time is the limit in seconds. Grid rows may differ in length.
package levels

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

// File is the on-disk shape of a level set.
type File struct {
	Levels []Entry `yaml:"levels"`
}

// Entry is one level in a level file.
type Entry struct {
	Name string  `yaml:"name,omitempty"`
	Time float64 `yaml:"time"` // Seconds
	Grid [][]int `yaml:"grid,flow"`
}

// maxTimeSeconds is the first time limit a time.Duration cannot hold.
const maxTimeSeconds = float64(math.MaxInt64) / float64(time.Second)

// Parse decodes and validates a YAML level set.
func Parse(data []byte) ([]breakout.Level, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("levels: parse: %w", err)
	}

	out := make([]breakout.Level, 0, len(f.Levels))
	for i, e := range f.Levels {
		if e.Time >= maxTimeSeconds {
			return nil, fmt.Errorf("levels: %w", &breakout.LevelError{
				Index:  i,
				Name:   e.Name,
				Reason: fmt.Sprintf("time limit %gs exceeds the maximum of %.0fs", e.Time, maxTimeSeconds),
			})
		}
		out = append(out, e.Level())
	}

	if err := breakout.ValidateLevels(out); err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}
	return out, nil
}

// LoadFile reads and validates a level set from disk.
func LoadFile(path string) ([]breakout.Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", path, err)
	}
	return Parse(data)
}

// Marshal encodes a level set as YAML.
func Marshal(levels []breakout.Level) ([]byte, error) {
	f := File{Levels: make([]Entry, 0, len(levels))}
	for _, l := range levels {
		f.Levels = append(f.Levels, FromLevel(l))
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("levels: marshal: %w", err)
	}
	return data, nil
}

// Level converts the entry to a level descriptor.
func (e Entry) Level() breakout.Level {
	limit := time.Duration(0)
	if e.Time > 0 && e.Time < maxTimeSeconds {
		limit = time.Duration(e.Time * float64(time.Second))
	}
	return breakout.Level{
		Name:      e.Name,
		Grid:      e.Grid,
		TimeLimit: limit,
	}
}

// FromLevel converts a level descriptor to a file entry.
func FromLevel(l breakout.Level) Entry {
	return Entry{
		Name: l.Name,
		Time: l.TimeLimit.Seconds(),
		Grid: l.Grid,
	}
}
