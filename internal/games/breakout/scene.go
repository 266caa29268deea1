package breakout

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// urgentThreshold is the remaining time below which the clock is drawn in red.
const urgentThreshold = 31 * time.Second

// Circle is a ball as seen by a renderer.
type Circle struct {
	X, Y   float64
	Radius float64
}

// BlockView is a live block as seen by a renderer.
type BlockView struct {
	Rect
	Color   core.Color
	Powerup bool
}

// PowerupView is a falling power-up as seen by a renderer.
type PowerupView struct {
	Rect
	Kind  PowerupKind
	Label string
}

// Clock is the formatted level timer.
type Clock struct {
	Text      string // m:ss.cc
	Urgent    bool   // Remaining time under 31 seconds
	Remaining time.Duration
}

// Scene is everything a renderer needs to draw one frame.
type Scene struct {
	State      State
	Level      int
	LevelName  string
	LevelCount int

	FieldW, FieldH float64

	Paddle     Rect
	Ball       Circle
	BallActive bool
	Blocks     []BlockView
	Powerups   []PowerupView
	Clock      Clock
	Stats      Stats
}

// Scene builds a render view of the current state.
func (s *Session) Scene() Scene {
	sc := Scene{
		State:      s.state,
		Level:      s.level,
		LevelCount: len(s.levels),
		FieldW:     s.cfg.Field.Width,
		FieldH:     s.cfg.Field.Height,
		Paddle:     s.paddle.Rect,
		Ball:       Circle{X: s.ball.X, Y: s.ball.Y, Radius: s.ball.Radius},
		BallActive: s.ball.Active,
		Clock:      newClock(s.remaining),
		Stats:      s.stats,
	}
	if s.level < len(s.levels) {
		sc.LevelName = s.levels[s.level].Name
	}

	sc.Blocks = make([]BlockView, 0, len(s.blocks))
	for _, b := range s.blocks {
		if b.Alive {
			sc.Blocks = append(sc.Blocks, BlockView{Rect: b.Rect, Color: b.Color, Powerup: b.Powerup})
		}
	}

	sc.Powerups = make([]PowerupView, 0, len(s.powerups))
	for _, pu := range s.powerups {
		if pu.Alive {
			sc.Powerups = append(sc.Powerups, PowerupView{Rect: pu.Rect, Kind: pu.Kind, Label: pu.Kind.Label()})
		}
	}

	return sc
}

func newClock(remaining time.Duration) Clock {
	return Clock{
		Text:      FormatClock(remaining),
		Urgent:    remaining < urgentThreshold,
		Remaining: remaining,
	}
}

// FormatClock formats a duration as minutes:seconds.centiseconds.
// Negative durations render as zero.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	mins := d / time.Minute
	secs := (d % time.Minute) / time.Second
	cs := (d % time.Second) / (10 * time.Millisecond)
	return fmt.Sprintf("%d:%02d.%02d", mins, secs, cs)
}
