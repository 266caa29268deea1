package levels

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

func TestLoadFileValid(t *testing.T) {
	levels, err := LoadFile(filepath.Join("testdata", "valid.yaml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if len(levels) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(levels))
	}
	if levels[0].Name != "Warmup" || levels[0].TimeLimit != 45*time.Second {
		t.Errorf("level 0 = %+v", levels[0])
	}
	if levels[1].TimeLimit != 12500*time.Millisecond {
		t.Errorf("fractional seconds: got %v", levels[1].TimeLimit)
	}
	if len(levels[0].Grid[0]) != 0 || len(levels[1].Grid[0]) != 1 {
		t.Error("jagged rows should be kept as written")
	}

	blocks := breakout.CompileBlocks(levels[0].Grid, breakout.Layout{UnitWidth: 50, RowHeight: 20, HeightOffset: 40})
	if len(blocks) != 4 {
		t.Errorf("expected 4 blocks (1111 | 2 | 99 | 2), got %d", len(blocks))
	}
}

func TestLoadFileInvalid(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{"zero_time.yaml", "level 2 (No time)"},
		{"bad_cell.yaml", "unknown code 12"},
	}

	for _, tc := range tests {
		t.Run(tc.file, func(t *testing.T) {
			_, err := LoadFile(filepath.Join("testdata", tc.file))
			if !errors.Is(err, breakout.ErrInvalidLevelConfig) {
				t.Fatalf("expected ErrInvalidLevelConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q should mention %q", err, tc.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "levels: [unclosed"},
		{"wrong type", "levels:\n  - time: soon\n"},
		{"empty", ""},
		{"negative time", "levels:\n  - time: -5\n    grid: [[1]]\n"},
		{"time overflows duration", "levels:\n  - time: 1e11\n    grid: [[1]]\n"},
		{"infinite time", "levels:\n  - time: .inf\n    grid: [[1]]\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.data)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParseHugeTimeLimit(t *testing.T) {
	_, err := Parse([]byte("levels:\n  - name: forever\n    time: 1e11\n    grid: [[1]]\n"))
	if !errors.Is(err, breakout.ErrInvalidLevelConfig) {
		t.Fatalf("expected ErrInvalidLevelConfig, got %v", err)
	}
	if !strings.Contains(err.Error(), "level 1 (forever)") || !strings.Contains(err.Error(), "exceeds the maximum") {
		t.Errorf("unexpected message %q", err)
	}

	levels, err := Parse([]byte("levels:\n  - time: 9e9\n    grid: [[1]]\n"))
	if err != nil {
		t.Fatalf("largest representable limit should parse: %v", err)
	}
	if levels[0].TimeLimit != 9e9*time.Second {
		t.Errorf("TimeLimit = %v", levels[0].TimeLimit)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestMarshalRoundTripBuiltin(t *testing.T) {
	data, err := Marshal(breakout.BuiltinLevels())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	path := filepath.Join(t.TempDir(), "builtin.yaml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	want := breakout.BuiltinLevels()
	if len(got) != len(want) {
		t.Fatalf("got %d levels, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Name != want[i].Name || got[i].TimeLimit != want[i].TimeLimit {
			t.Errorf("level %d: got %s/%v, expected %s/%v", i, got[i].Name, got[i].TimeLimit, want[i].Name, want[i].TimeLimit)
		}
	}
}
