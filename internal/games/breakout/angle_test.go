package breakout

import (
	"math"
	"testing"
)

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		name     string
		in       float64
		expected float64
	}{
		{"zero", 0, 0},
		{"pi stays", math.Pi, math.Pi},
		{"minus pi folds to pi", -math.Pi, math.Pi},
		{"half pi", math.Pi / 2, math.Pi / 2},
		{"three half pi", 3 * math.Pi / 2, -math.Pi / 2},
		{"minus three half pi", -3 * math.Pi / 2, math.Pi / 2},
		{"two pi", 2 * math.Pi, 0},
		{"three pi", 3 * math.Pi, math.Pi},
		{"minus three pi", -3 * math.Pi, math.Pi},
		{"just above pi", math.Pi + 0.1, -math.Pi + 0.1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeAngle(tc.in)
			if got <= -math.Pi || got > math.Pi {
				t.Fatalf("NormalizeAngle(%v) = %v, outside (-π, π]", tc.in, got)
			}
			// Results near ±π may land on either side of the seam by an ulp
			if math.Abs(math.Remainder(got-tc.expected, 2*math.Pi)) > 1e-9 {
				t.Errorf("NormalizeAngle(%v) = %v, expected %v", tc.in, got, tc.expected)
			}
		})
	}
}

func TestNormalizeAngleProperties(t *testing.T) {
	inputs := []float64{
		-1e9, -12345.678, -100, -7, -math.Pi - 1e-12, -1, -0.5,
		0.5, 1, 2, math.Pi - 1e-12, 4, 7, 100, 98765.4321, 1e9,
	}

	for _, in := range inputs {
		got := NormalizeAngle(in)

		if got <= -math.Pi || got > math.Pi {
			t.Errorf("NormalizeAngle(%v) = %v, outside (-π, π]", in, got)
		}

		// Congruent modulo 2π: compare direction vectors
		if math.Abs(math.Cos(got)-math.Cos(in)) > 1e-6 || math.Abs(math.Sin(got)-math.Sin(in)) > 1e-6 {
			t.Errorf("NormalizeAngle(%v) = %v, not congruent mod 2π", in, got)
		}

		// Idempotent
		if again := NormalizeAngle(got); again != got {
			t.Errorf("NormalizeAngle not idempotent for %v: %v then %v", in, got, again)
		}
	}
}

func TestNormalizeAngleNonFinite(t *testing.T) {
	if !math.IsNaN(NormalizeAngle(math.NaN())) {
		t.Error("NaN should pass through")
	}
	if !math.IsInf(NormalizeAngle(math.Inf(1)), 1) {
		t.Error("+Inf should pass through")
	}
}
