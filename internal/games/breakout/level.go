// Package breakout implements the Breakout simulation: level compilation,
// ball/paddle/block physics, power-ups and the level state machine.
package breakout

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Grid cell codes.
const (
	CellEmpty   = 0 // No block
	CellPowerup = 9 // Power-up producing block
)

// BlockColors maps grid values 1..8 to block colors (value v uses BlockColors[v-1]).
var BlockColors = []core.Color{
	core.ColorRed,
	core.ColorOrange,
	core.ColorYellow,
	core.ColorGreen,
	core.ColorCyan,
	core.ColorBlue,
	core.ColorMagenta,
	core.ColorGray,
}

// PowerupBlockColor is the color of power-up producing blocks.
const PowerupBlockColor = core.ColorBrightWhite

// ErrInvalidLevelConfig is returned when a level descriptor cannot be played.
var ErrInvalidLevelConfig = errors.New("invalid level config")

// LevelError describes which level failed validation and why.
type LevelError struct {
	Index  int
	Name   string
	Reason string
}

func (e *LevelError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("level %d (%s): %s", e.Index+1, e.Name, e.Reason)
	}
	return fmt.Sprintf("level %d: %s", e.Index+1, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidLevelConfig.
func (e *LevelError) Unwrap() error {
	return ErrInvalidLevelConfig
}

// Level is a level descriptor: a row-major grid of cell codes and a time limit.
// Rows may have different lengths; missing cells are empty.
type Level struct {
	Name      string
	Grid      [][]int
	TimeLimit time.Duration
}

// Validate checks the descriptor. It rejects non-positive time limits and
// cell codes outside 0..CellPowerup.
func (l Level) Validate() error {
	if l.TimeLimit <= 0 {
		return &LevelError{Name: l.Name, Reason: fmt.Sprintf("time limit must be positive, got %s", l.TimeLimit)}
	}
	for r, row := range l.Grid {
		for c, v := range row {
			if v < CellEmpty || v > CellPowerup {
				return &LevelError{Name: l.Name, Reason: fmt.Sprintf("cell (%d,%d) has unknown code %d", r, c, v)}
			}
		}
	}
	return nil
}

// ValidateLevels validates an ordered level list, tagging errors with the level index.
func ValidateLevels(levels []Level) error {
	if len(levels) == 0 {
		return fmt.Errorf("no levels: %w", ErrInvalidLevelConfig)
	}
	for i, l := range levels {
		if err := l.Validate(); err != nil {
			var le *LevelError
			if errors.As(err, &le) {
				le.Index = i
			}
			return err
		}
	}
	return nil
}

// Layout holds the constants that place grid cells on the field.
type Layout struct {
	UnitWidth    float64 // Width of one grid cell
	RowHeight    float64 // Height of one grid row
	HeightOffset float64 // Distance from the top of the field to row 0
}

// LayoutFromConfig extracts the block layout from a config.
func LayoutFromConfig(cfg config.BreakoutConfig) Layout {
	return Layout{
		UnitWidth:    cfg.Layout.UnitWidth,
		RowHeight:    cfg.Layout.RowHeight,
		HeightOffset: cfg.Layout.HeightOffset,
	}
}

// Block is a destructible rectangle.
type Block struct {
	Rect
	Value   int        // Grid code the block was compiled from
	Color   core.Color // Display color
	Powerup bool       // Spawns a power-up when destroyed
	Alive   bool
}

// CompileBlocks expands a level grid into blocks. Each row is scanned left to
// right and a run of equal non-zero codes becomes one block spanning the run.
func CompileBlocks(grid [][]int, layout Layout) []Block {
	blocks := make([]Block, 0)

	for rowNo, row := range grid {
		last := CellEmpty
		for colNo, v := range row {
			if v > CellEmpty {
				if v == last {
					// Extend the previous block
					blocks[len(blocks)-1].W += layout.UnitWidth
				} else {
					blocks = append(blocks, newBlock(v, rowNo, colNo, layout))
				}
			}
			last = v
		}
	}

	return blocks
}

// newBlock creates a one-cell block for the given code.
func newBlock(v, rowNo, colNo int, layout Layout) Block {
	b := Block{
		Rect: Rect{
			X: layout.UnitWidth * float64(colNo),
			Y: layout.RowHeight*float64(rowNo) + layout.HeightOffset,
			W: layout.UnitWidth,
			H: layout.RowHeight,
		},
		Value: v,
		Alive: true,
	}

	if v == CellPowerup {
		b.Powerup = true
		b.Color = PowerupBlockColor
	} else {
		b.Color = BlockColors[(v-1)%len(BlockColors)]
	}
	return b
}

// BuiltinLevels returns the bundled level set.
func BuiltinLevels() []Level {
	return []Level{
		{
			Name:      "Opening",
			TimeLimit: 90 * time.Second,
			Grid: [][]int{
				{},
				{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
				{2, 2, 2, 2, 2, 2, 2, 2, 2, 9, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2},
				{3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3},
			},
		},
		{
			Name:      "Stripes",
			TimeLimit: 120 * time.Second,
			Grid: [][]int{
				{4, 4, 4, 4, 0, 5, 5, 5, 5, 0, 0, 5, 5, 5, 5, 0, 4, 4, 4, 4},
				{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
				{6, 6, 9, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 9, 6, 6},
				{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
				{1, 2, 3, 4, 5, 6, 7, 8, 1, 2, 3, 4, 5, 6, 7, 8, 1, 2, 3, 4},
			},
		},
		{
			Name:      "Pyramid",
			TimeLimit: 150 * time.Second,
			Grid: [][]int{
				{0, 0, 0, 0, 0, 0, 0, 0, 0, 7, 7},
				{0, 0, 0, 0, 0, 0, 0, 0, 6, 6, 6, 6},
				{0, 0, 0, 0, 0, 0, 0, 5, 5, 9, 9, 5, 5},
				{0, 0, 0, 0, 0, 0, 4, 4, 4, 4, 4, 4, 4, 4},
				{0, 0, 0, 0, 0, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3},
				{0, 0, 0, 0, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2},
				{0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
			},
		},
		{
			Name:      "Checkers",
			TimeLimit: 180 * time.Second,
			Grid: [][]int{
				{1, 0, 2, 0, 3, 0, 4, 0, 5, 0, 6, 0, 7, 0, 8, 0, 1, 0, 2, 0},
				{0, 2, 0, 3, 0, 9, 0, 5, 0, 6, 0, 7, 0, 9, 0, 1, 0, 2, 0, 3},
				{3, 0, 4, 0, 5, 0, 6, 0, 7, 0, 8, 0, 1, 0, 2, 0, 3, 0, 4, 0},
				{0, 4, 0, 5, 0, 6, 0, 7, 0, 8, 0, 1, 0, 2, 0, 3, 0, 4, 0, 5},
				{5, 0, 6, 0, 7, 0, 8, 0, 9, 0, 2, 0, 3, 0, 4, 0, 5, 0, 6, 0},
			},
		},
		{
			Name:      "Fortress",
			TimeLimit: 240 * time.Second,
			Grid: [][]int{
				{8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8},
				{8, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 8},
				{8, 0, 1, 1, 2, 2, 3, 3, 9, 4, 4, 9, 5, 5, 6, 6, 7, 7, 0, 8},
				{8, 0, 1, 1, 2, 2, 3, 3, 4, 4, 4, 4, 5, 5, 6, 6, 7, 7, 0, 8},
				{8, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 8},
				{8, 8, 8, 8, 8, 8, 8, 8, 8, 0, 0, 8, 8, 8, 8, 8, 8, 8, 8, 8},
			},
		},
	}
}
