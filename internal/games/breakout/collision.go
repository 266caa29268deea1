package breakout

import "math"

// minContactDistance is the smallest reference-to-contact distance that
// yields a usable paddle bounce angle.
const minContactDistance = 1e-9

// hitGuard records which block faces already reflected the ball during one frame.
type hitGuard uint8

const (
	hitAbove hitGuard = 1 << iota
	hitBelow
	hitLeft
	hitRight
)

func (g hitGuard) has(f hitGuard) bool {
	return g&f != 0
}

// collisionResult summarizes one resolution pass.
type collisionResult struct {
	fell      bool    // Ball reached the floor
	destroyed []Block // Blocks destroyed this frame, in scan order
}

// resolveCollisions runs the contact checks in their fixed order:
// paddle clamp, paddle, top wall, floor, side walls, blocks.
// A floor contact ends the pass immediately.
func (s *Session) resolveCollisions() collisionResult {
	fieldW, fieldH := s.cfg.Field.Width, s.cfg.Field.Height

	s.paddle.Clamp(fieldW)
	resolvePaddle(&s.ball, s.paddle, fieldH, s.cfg.Physics.ReferenceOffset)
	resolveTopWall(&s.ball)

	if s.ball.Bottom() >= fieldH {
		return collisionResult{fell: true}
	}

	resolveSideWalls(&s.ball, fieldW)
	return collisionResult{destroyed: resolveBlocks(&s.ball, s.blocks)}
}

// resolvePaddle bounces a descending ball off the paddle and tracks contact
// for spin. The new heading is the angle of the line from a reference point
// below the paddle center to the bottom of the ball.
func resolvePaddle(b *Ball, p Paddle, fieldH, refOffset float64) {
	b.LastPaddleHit = b.PaddleHit
	b.PaddleHit = b.Bottom() >= p.Y && p.X <= b.RightEdge() && b.Left() <= p.Right()

	if !b.PaddleHit {
		b.Spin = 0
		b.deferred = false
		return
	}

	if !b.LastPaddleHit {
		// New contact: paddle motion imparts English.
		b.Spin = p.Velocity() * math.Abs(b.X-p.CenterX()) * p.Sensitivity
	}

	if b.Angle >= 0 {
		return
	}

	dx := b.X - p.CenterX()
	dy := b.Bottom() - (fieldH + refOffset)
	dist := math.Hypot(dx, dy)
	if dist < minContactDistance {
		if !b.deferred {
			b.deferred = true
			return
		}
		b.deferred = false
		b.Angle = NormalizeAngle(-b.Angle)
		return
	}

	b.deferred = false
	b.Angle = NormalizeAngle(math.Acos(clampUnit(dx / dist)))
}

// clampUnit clamps a cosine into [-1, 1] against rounding.
func clampUnit(c float64) float64 {
	return math.Max(-1, math.Min(1, c))
}

// resolveTopWall reflects an ascending ball off the ceiling.
func resolveTopWall(b *Ball) {
	if b.Top() <= 0 && b.Angle > 0 {
		b.Angle = NormalizeAngle(-b.Angle)
	}
}

// resolveSideWalls reflects the ball off the left and right walls when it is
// moving toward them.
func resolveSideWalls(b *Ball, fieldW float64) {
	if b.Left() <= 0 && math.Abs(b.Angle) > math.Pi/2 {
		b.Angle = NormalizeAngle(math.Pi - b.Angle)
	}
	if b.RightEdge() >= fieldW && math.Abs(b.Angle) <= math.Pi/2 {
		b.Angle = NormalizeAngle(math.Pi - b.Angle)
	}
}

// resolveBlocks destroys every live block touched by the ball's bounding
// square and reflects the ball at most once per face direction.
func resolveBlocks(b *Ball, blocks []Block) []Block {
	var (
		guard     hitGuard
		destroyed []Block
	)

	for i := range blocks {
		blk := &blocks[i]
		if !blk.Alive || !touches(*b, blk.Rect) {
			continue
		}

		blk.Alive = false
		destroyed = append(destroyed, *blk)

		above := b.Y < blk.Y
		below := b.Y > blk.Bottom()
		left := b.X < blk.X
		right := b.X > blk.Right()

		switch {
		case (above && !guard.has(hitAbove)) || (below && !guard.has(hitBelow)):
			b.Angle = NormalizeAngle(-b.Angle)
			if above {
				guard |= hitAbove
			}
			if below {
				guard |= hitBelow
			}
		case (left && !guard.has(hitLeft)) || (right && !guard.has(hitRight)):
			b.Angle = NormalizeAngle(math.Pi - b.Angle)
			if left {
				guard |= hitLeft
			}
			if right {
				guard |= hitRight
			}
		}
	}

	return destroyed
}

// touches reports whether the ball's bounding square overlaps r, edges inclusive.
func touches(b Ball, r Rect) bool {
	return b.RightEdge() >= r.X &&
		b.Left() <= r.Right() &&
		b.Bottom() >= r.Y &&
		b.Top() <= r.Bottom()
}
