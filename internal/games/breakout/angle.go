package breakout

import "math"

// NormalizeAngle reduces an angle in radians to the range (-π, π].
// The result is congruent to a modulo 2π. Non-finite input is returned as is.
func NormalizeAngle(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return a
	}
	if a > -math.Pi && a <= math.Pi {
		return a
	}

	// math.Remainder maps into [-π, π]; fold the closed lower end up.
	r := math.Remainder(a, 2*math.Pi)
	if r <= -math.Pi {
		r += 2 * math.Pi
	}
	return r
}
