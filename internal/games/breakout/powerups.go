package breakout

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-breakout/internal/config"
)

// PowerupKind is one entry of the effect catalog.
type PowerupKind int

const (
	PowerupMoreTime     PowerupKind = iota // Extend the level timer
	PowerupLessTime                        // Shorten the level timer
	PowerupWiderPaddle                     // Widen paddle
	PowerupNarrowPaddle                    // Narrow paddle
	PowerupFastPaddle                      // Speed up paddle
	PowerupSlowPaddle                      // Slow down paddle
	PowerupFastBall                        // Speed up ball
	PowerupSlowBall                        // Slow down ball
	PowerupKindCount                       // Sentinel for counting kinds
)

// Label returns the text drawn on a falling power-up.
func (k PowerupKind) Label() string {
	switch k {
	case PowerupMoreTime:
		return "+time"
	case PowerupLessTime:
		return "-time"
	case PowerupWiderPaddle:
		return "+paddle"
	case PowerupNarrowPaddle:
		return "-paddle"
	case PowerupFastPaddle:
		return "+speed"
	case PowerupSlowPaddle:
		return "-speed"
	case PowerupFastBall:
		return "+ball"
	case PowerupSlowBall:
		return "-ball"
	default:
		return "?"
	}
}

// String returns the label.
func (k PowerupKind) String() string {
	return k.Label()
}

// Powerup is a falling pickup.
type Powerup struct {
	Rect
	Kind  PowerupKind
	Speed float64 // Fall speed per frame
	Alive bool
}

// spawnPowerup creates a pickup one unit wide, centered over the destroyed block.
func spawnPowerup(blk Block, layout Layout, fallSpeed float64, rng Rand) Powerup {
	return Powerup{
		Rect: Rect{
			X: blk.X + (blk.W-layout.UnitWidth)/2,
			Y: blk.Y,
			W: layout.UnitWidth,
			H: layout.RowHeight,
		},
		Kind:  PowerupKind(rng.IntN(int(PowerupKindCount))),
		Speed: fallSpeed,
		Alive: true,
	}
}

// caughtBy reports whether the pickup touches the paddle.
func (pu Powerup) caughtBy(p Paddle) bool {
	return pu.Right() >= p.X && pu.X <= p.Right() && pu.Bottom() >= p.Y
}

// effectTarget is the state a power-up effect may change.
type effectTarget struct {
	paddle    *Paddle
	ball      *Ball
	remaining *time.Duration
	fieldW    float64
}

// applyEffect applies one catalog effect with the configured deltas and floors.
func applyEffect(k PowerupKind, t effectTarget, cfg config.BreakoutPowerups) {
	timeDelta := time.Duration(cfg.TimeDelta) * time.Second
	minTime := time.Duration(cfg.MinTime) * time.Second

	switch k {
	case PowerupMoreTime:
		*t.remaining += timeDelta
	case PowerupLessTime:
		*t.remaining = max(*t.remaining-timeDelta, minTime)
	case PowerupWiderPaddle:
		resizePaddle(t.paddle, math.Min(t.paddle.W+cfg.WidthDelta, t.fieldW))
	case PowerupNarrowPaddle:
		resizePaddle(t.paddle, math.Max(t.paddle.W-cfg.WidthDelta, cfg.MinPaddleWidth))
	case PowerupFastPaddle:
		t.paddle.Speed += cfg.SpeedDelta
	case PowerupSlowPaddle:
		t.paddle.Speed = math.Max(t.paddle.Speed-cfg.SpeedDelta, cfg.MinSpeed)
	case PowerupFastBall:
		t.ball.Speed += cfg.SpeedDelta
	case PowerupSlowBall:
		t.ball.Speed = math.Max(t.ball.Speed-cfg.SpeedDelta, cfg.MinSpeed)
	}
}

// resizePaddle changes the paddle width keeping its center in place.
func resizePaddle(p *Paddle, w float64) {
	center := p.CenterX()
	p.W = w
	p.X = center - w/2
}

// advancePowerups moves every pickup down one frame, then resolves pickups
// and floor losses. It returns the kinds caught this frame.
func (s *Session) advancePowerups() []PowerupKind {
	var caught []PowerupKind

	for i := range s.powerups {
		pu := &s.powerups[i]
		if !pu.Alive {
			continue
		}
		pu.Y += pu.Speed

		switch {
		case pu.caughtBy(s.paddle):
			pu.Alive = false
			caught = append(caught, pu.Kind)
			applyEffect(pu.Kind, effectTarget{
				paddle:    &s.paddle,
				ball:      &s.ball,
				remaining: &s.remaining,
				fieldW:    s.cfg.Field.Width,
			}, s.cfg.Powerups)
		case pu.Bottom() >= s.cfg.Field.Height:
			pu.Alive = false
		}
	}

	s.powerups = compactPowerups(s.powerups)
	// Width effects may push the paddle past a wall.
	s.paddle.Clamp(s.cfg.Field.Width)
	return caught
}

func compactPowerups(pus []Powerup) []Powerup {
	live := pus[:0]
	for _, pu := range pus {
		if pu.Alive {
			live = append(live, pu)
		}
	}
	return live
}
