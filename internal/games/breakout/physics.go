package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/config"
)

// Rect is an axis-aligned rectangle in field coordinates (y grows downward).
type Rect struct {
	X, Y float64
	W, H float64
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Paddle is the player-controlled bar at the bottom of the field.
type Paddle struct {
	Rect
	Speed       float64 // Horizontal displacement per frame
	PrevX       float64 // X at the start of the current frame
	Sensitivity float64 // Spin gain, fixed when the level starts
	MovingEast  bool
	MovingWest  bool
}

// newPaddle centers a paddle on the floor of the field.
func newPaddle(cfg config.BreakoutConfig) Paddle {
	w := cfg.Paddle.Width
	return Paddle{
		Rect: Rect{
			X: (cfg.Field.Width - w) / 2,
			Y: cfg.Field.Height - cfg.Paddle.Height,
			W: w,
			H: cfg.Paddle.Height,
		},
		Speed:       cfg.Paddle.Speed,
		PrevX:       (cfg.Field.Width - w) / 2,
		Sensitivity: cfg.Physics.SpinFactor / w,
	}
}

// CenterX returns the x-coordinate of the paddle center.
func (p Paddle) CenterX() float64 {
	return p.X + p.W/2
}

// Steer records the movement intent for this frame. Both keys held cancel out.
func (p *Paddle) Steer(in Input) {
	p.MovingWest = in.Left && !in.Right
	p.MovingEast = in.Right && !in.Left
}

// Move applies one frame of movement and clamps the paddle to the field.
func (p *Paddle) Move(fieldW float64) {
	p.PrevX = p.X
	switch {
	case p.MovingWest:
		p.X -= p.Speed
	case p.MovingEast:
		p.X += p.Speed
	}
	p.Clamp(fieldW)
}

// Clamp keeps the paddle inside [0, fieldW].
func (p *Paddle) Clamp(fieldW float64) {
	if p.W > fieldW {
		p.W = fieldW
	}
	if p.X < 0 {
		p.X = 0
	}
	if p.X+p.W > fieldW {
		p.X = fieldW - p.W
	}
}

// Velocity returns the signed displacement applied this frame.
func (p Paddle) Velocity() float64 {
	return p.X - p.PrevX
}

// Ball is the projectile. Angle is measured counter-clockwise from +x with
// y pointing up, so positive angles travel toward the top of the field.
type Ball struct {
	X, Y   float64
	Radius float64
	Angle  float64
	Speed  float64

	Active        bool    // Launched and moving
	Spin          float64 // Horizontal velocity added per frame while in paddle contact
	PaddleHit     bool    // In contact with the paddle this frame
	LastPaddleHit bool    // Was in contact on the previous frame

	deferred bool // Paddle bounce postponed by a degenerate contact
}

// newBall places an inactive ball on top of the paddle center.
func newBall(cfg config.BreakoutConfig, p Paddle) Ball {
	b := Ball{
		Radius: cfg.Physics.BallRadius,
		Angle:  math.Pi / 2,
		Speed:  cfg.Physics.BallSpeed,
	}
	b.glue(p)
	return b
}

// glue keeps an unlaunched ball centered on the paddle.
func (b *Ball) glue(p Paddle) {
	b.X = p.CenterX()
	b.Y = p.Y - b.Radius
}

// Velocity returns the per-frame displacement in field coordinates.
func (b Ball) Velocity() (dx, dy float64) {
	return math.Cos(b.Angle) * b.Speed, -math.Sin(b.Angle) * b.Speed
}

// Advance moves the ball one frame along its heading. When spin is enabled
// and the ball touches the paddle, the spin term bends the velocity first.
func (b *Ball) Advance(spin bool) {
	if spin && b.PaddleHit && b.Spin != 0 {
		vx := math.Cos(b.Angle)*b.Speed + b.Spin
		vy := math.Sin(b.Angle) * b.Speed
		if s := math.Hypot(vx, vy); s > 0 {
			b.Angle = NormalizeAngle(math.Atan2(vy, vx))
			b.Speed = s
		}
	}

	b.X += math.Cos(b.Angle) * b.Speed
	b.Y -= math.Sin(b.Angle) * b.Speed
}

// Top returns the y-coordinate of the top of the ball.
func (b Ball) Top() float64 {
	return b.Y - b.Radius
}

// Bottom returns the y-coordinate of the bottom of the ball.
func (b Ball) Bottom() float64 {
	return b.Y + b.Radius
}

// Left returns the x-coordinate of the left of the ball.
func (b Ball) Left() float64 {
	return b.X - b.Radius
}

// RightEdge returns the x-coordinate of the right of the ball.
func (b Ball) RightEdge() float64 {
	return b.X + b.Radius
}
