package breakout

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/config"
)

const angleEps = 1e-9

func sameAngle(a, b float64) bool {
	return math.Abs(math.Remainder(a-b, 2*math.Pi)) < angleEps
}

// testPaddle returns the default paddle centered at x=500 on a 1000x500 field.
func testPaddle() Paddle {
	p := newPaddle(config.DefaultBreakoutConfig())
	p.PrevX = p.X
	return p
}

func TestPaddleBounceStraightDownAtCenter(t *testing.T) {
	p := testPaddle()
	b := Ball{X: p.CenterX(), Y: p.Y - 6, Radius: 8, Angle: -math.Pi / 2, Speed: 4}

	resolvePaddle(&b, p, 500, 10)

	if !sameAngle(b.Angle, math.Pi/2) {
		t.Errorf("angle = %v, expected π/2", b.Angle)
	}
	if !b.PaddleHit {
		t.Error("contact should set PaddleHit")
	}
}

func TestPaddleBounceShaping(t *testing.T) {
	p := testPaddle()

	tests := []struct {
		name   string
		offset float64 // Ball x relative to paddle center
	}{
		{"right edge", 38},
		{"right of center", 15},
		{"left of center", -15},
		{"left edge", -38},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := Ball{X: p.CenterX() + tc.offset, Y: p.Y - 6, Radius: 8, Angle: -math.Pi / 3, Speed: 4}
			resolvePaddle(&b, p, 500, 10)

			dx := tc.offset
			dy := b.Bottom() - 510
			want := math.Acos(dx / math.Hypot(dx, dy))
			if !sameAngle(b.Angle, want) {
				t.Errorf("angle = %v, expected %v", b.Angle, want)
			}
			if b.Angle <= 0 || b.Angle >= math.Pi {
				t.Errorf("bounce should head upward, got %v", b.Angle)
			}
			if tc.offset > 0 && b.Angle >= math.Pi/2 {
				t.Errorf("hit right of center should go right, got %v", b.Angle)
			}
			if tc.offset < 0 && b.Angle <= math.Pi/2 {
				t.Errorf("hit left of center should go left, got %v", b.Angle)
			}
		})
	}

	// Sharper angles nearer the edges
	edge := Ball{X: p.CenterX() + 38, Y: p.Y - 6, Radius: 8, Angle: -math.Pi / 2}
	near := Ball{X: p.CenterX() + 5, Y: p.Y - 6, Radius: 8, Angle: -math.Pi / 2}
	resolvePaddle(&edge, p, 500, 10)
	resolvePaddle(&near, p, 500, 10)
	if edge.Angle >= near.Angle {
		t.Errorf("edge hit %v should be flatter than center hit %v", edge.Angle, near.Angle)
	}
}

func TestPaddleIgnoresRisingBall(t *testing.T) {
	p := testPaddle()
	b := Ball{X: p.CenterX(), Y: p.Y - 6, Radius: 8, Angle: math.Pi / 4, Speed: 4}

	resolvePaddle(&b, p, 500, 10)

	if b.Angle != math.Pi/4 {
		t.Errorf("rising ball should keep its angle, got %v", b.Angle)
	}
}

func TestPaddleMissNoContact(t *testing.T) {
	p := testPaddle()
	tests := []struct {
		name string
		ball Ball
	}{
		{"too high", Ball{X: p.CenterX(), Y: p.Y - 20, Radius: 8, Angle: -math.Pi / 2}},
		{"left of paddle", Ball{X: p.X - 9, Y: p.Y, Radius: 8, Angle: -math.Pi / 2}},
		{"right of paddle", Ball{X: p.Right() + 9, Y: p.Y, Radius: 8, Angle: -math.Pi / 2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.ball
			resolvePaddle(&b, p, 500, 10)
			if b.PaddleHit {
				t.Error("expected no contact")
			}
			if b.Angle != -math.Pi/2 {
				t.Errorf("angle changed to %v", b.Angle)
			}
		})
	}

	// Touching edges count as contact
	b := Ball{X: p.X - 8, Y: p.Y - 8, Radius: 8, Angle: -math.Pi / 2}
	resolvePaddle(&b, p, 500, 10)
	if !b.PaddleHit {
		t.Error("edge contact should count")
	}
}

func TestPaddleDegenerateContact(t *testing.T) {
	p := testPaddle()
	// Reference point placed exactly at the contact point.
	b := Ball{X: p.CenterX(), Y: p.Y, Radius: 8, Angle: -math.Pi / 2, Speed: 4}
	refOffset := b.Bottom() - 500

	resolvePaddle(&b, p, 500, refOffset)
	if b.Angle != -math.Pi/2 {
		t.Fatalf("first degenerate contact should skip the bounce, got %v", b.Angle)
	}

	b.LastPaddleHit, b.PaddleHit = false, true
	resolvePaddle(&b, p, 500, refOffset)
	if math.IsNaN(b.Angle) {
		t.Fatal("angle is NaN")
	}
	if !sameAngle(b.Angle, math.Pi/2) {
		t.Errorf("fallback should negate the angle, got %v", b.Angle)
	}
}

func TestPaddleSpinImpulse(t *testing.T) {
	p := testPaddle()
	p.PrevX = p.X - 5 // Moved right this frame
	b := Ball{X: p.CenterX() + 30, Y: p.Y - 6, Radius: 8, Angle: -math.Pi / 2, Speed: 4}

	resolvePaddle(&b, p, 500, 10)

	want := 5 * 30 * p.Sensitivity
	if math.Abs(b.Spin-want) > 1e-12 {
		t.Fatalf("spin = %v, expected %v", b.Spin, want)
	}

	// Contact persists: impulse is kept, not recomputed
	p.PrevX = p.X + 5
	resolvePaddle(&b, p, 500, 10)
	if math.Abs(b.Spin-want) > 1e-12 {
		t.Errorf("spin changed during contact: %v", b.Spin)
	}
	if !b.LastPaddleHit {
		t.Error("LastPaddleHit should track the previous frame")
	}

	// Leaving the paddle clears it
	b.Y = 100
	resolvePaddle(&b, p, 500, 10)
	if b.Spin != 0 || b.PaddleHit {
		t.Errorf("spin should reset after contact ends, got %v", b.Spin)
	}
}

func TestBallAdvanceSpin(t *testing.T) {
	b := Ball{X: 100, Y: 100, Angle: math.Pi / 2, Speed: 4, PaddleHit: true, Spin: 1}
	b.Advance(true)

	wantAngle := math.Atan2(4, 1)
	if !sameAngle(b.Angle, wantAngle) {
		t.Errorf("angle = %v, expected %v", b.Angle, wantAngle)
	}
	if math.Abs(b.Speed-math.Sqrt(17)) > 1e-9 {
		t.Errorf("speed = %v, expected √17", b.Speed)
	}
	if math.Abs(b.X-101) > 1e-9 || math.Abs(b.Y-96) > 1e-9 {
		t.Errorf("position = (%v, %v), expected (101, 96)", b.X, b.Y)
	}

	plain := Ball{X: 100, Y: 100, Angle: math.Pi / 2, Speed: 4, PaddleHit: true, Spin: 1}
	plain.Advance(false)
	if plain.Angle != math.Pi/2 || plain.Speed != 4 {
		t.Errorf("spin disabled should leave heading alone, got %v/%v", plain.Angle, plain.Speed)
	}
}

func TestWallReflections(t *testing.T) {
	tests := []struct {
		name  string
		ball  Ball
		angle float64
	}{
		{"top wall rising", Ball{X: 500, Y: 8, Radius: 8, Angle: math.Pi / 4}, -math.Pi / 4},
		{"top wall falling untouched", Ball{X: 500, Y: 8, Radius: 8, Angle: -math.Pi / 4}, -math.Pi / 4},
		{"left wall heading left", Ball{X: 8, Y: 200, Radius: 8, Angle: 3 * math.Pi / 4}, math.Pi / 4},
		{"left wall heading right untouched", Ball{X: 8, Y: 200, Radius: 8, Angle: math.Pi / 4}, math.Pi / 4},
		{"right wall heading right", Ball{X: 992, Y: 200, Radius: 8, Angle: -math.Pi / 4}, -3 * math.Pi / 4},
		{"right wall heading left untouched", Ball{X: 992, Y: 200, Radius: 8, Angle: 3 * math.Pi / 4}, 3 * math.Pi / 4},
		{"open field untouched", Ball{X: 500, Y: 200, Radius: 8, Angle: 1}, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.ball
			resolveTopWall(&b)
			resolveSideWalls(&b, 1000)
			if !sameAngle(b.Angle, tc.angle) {
				t.Errorf("angle = %v, expected %v", b.Angle, tc.angle)
			}
			if b.Angle <= -math.Pi || b.Angle > math.Pi {
				t.Errorf("angle %v not normalized", b.Angle)
			}
		})
	}
}

func TestBlockReflections(t *testing.T) {
	tests := []struct {
		name  string
		ball  Ball
		angle float64
	}{
		{"from the left", Ball{X: 93, Y: 110, Radius: 8, Angle: math.Pi / 6}, 5 * math.Pi / 6},
		{"from the right", Ball{X: 157, Y: 110, Radius: 8, Angle: 5 * math.Pi / 6}, math.Pi / 6},
		{"from above", Ball{X: 125, Y: 93, Radius: 8, Angle: -math.Pi / 3}, math.Pi / 3},
		{"from below", Ball{X: 125, Y: 127, Radius: 8, Angle: math.Pi / 3}, -math.Pi / 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			blocks := []Block{{Rect: Rect{X: 100, Y: 100, W: 50, H: 20}, Alive: true}}
			b := tc.ball

			destroyed := resolveBlocks(&b, blocks)

			if len(destroyed) != 1 || blocks[0].Alive {
				t.Fatalf("block should be destroyed")
			}
			if !sameAngle(b.Angle, tc.angle) {
				t.Errorf("angle = %v, expected %v", b.Angle, tc.angle)
			}
		})
	}
}

func TestBlockCornerAndSideSameFrame(t *testing.T) {
	a := -math.Pi / 4
	b := Ball{X: 100, Y: 100, Radius: 8, Angle: a}
	blocks := []Block{
		{Rect: Rect{X: 95, Y: 105, W: 50, H: 20}, Alive: true}, // Ball is above
		{Rect: Rect{X: 105, Y: 80, W: 50, H: 20}, Alive: true}, // Ball is to the left
	}

	destroyed := resolveBlocks(&b, blocks)

	if len(destroyed) != 2 {
		t.Fatalf("expected both blocks destroyed, got %d", len(destroyed))
	}
	want := NormalizeAngle(math.Pi + a)
	if !sameAngle(b.Angle, want) {
		t.Errorf("angle = %v, expected %v", b.Angle, want)
	}
}

func TestBlockGuardPreventsDoubleBounce(t *testing.T) {
	b := Ball{X: 100, Y: 90, Radius: 8, Angle: -math.Pi / 3}
	blocks := []Block{
		{Rect: Rect{X: 80, Y: 95, W: 20, H: 20}, Alive: true},
		{Rect: Rect{X: 100, Y: 95, W: 20, H: 20}, Alive: true},
	}

	destroyed := resolveBlocks(&b, blocks)

	if len(destroyed) != 2 {
		t.Fatalf("expected both blocks destroyed, got %d", len(destroyed))
	}
	if !sameAngle(b.Angle, math.Pi/3) {
		t.Errorf("two hits from above should reflect once, got %v", b.Angle)
	}
}

func TestBlockSkipsDeadAndDistant(t *testing.T) {
	b := Ball{X: 100, Y: 90, Radius: 8, Angle: -math.Pi / 3}
	blocks := []Block{
		{Rect: Rect{X: 80, Y: 95, W: 40, H: 20}, Alive: false},
		{Rect: Rect{X: 300, Y: 300, W: 40, H: 20}, Alive: true},
	}

	if destroyed := resolveBlocks(&b, blocks); len(destroyed) != 0 {
		t.Errorf("expected no hits, got %d", len(destroyed))
	}
	if b.Angle != -math.Pi/3 {
		t.Errorf("angle changed to %v", b.Angle)
	}
	if !blocks[1].Alive {
		t.Error("distant block should survive")
	}
}

func TestBlockInsideDestroysWithoutReflection(t *testing.T) {
	b := Ball{X: 110, Y: 105, Radius: 8, Angle: 1}
	blocks := []Block{{Rect: Rect{X: 100, Y: 100, W: 50, H: 20}, Alive: true}}

	resolveBlocks(&b, blocks)

	if blocks[0].Alive {
		t.Error("overlapped block should be destroyed")
	}
	if b.Angle != 1 {
		t.Errorf("center inside block should not reflect, got %v", b.Angle)
	}
}
