// Package config provides YAML-based configuration loading for Breakout
// and the difficulty presets exposed on the command line.
package config

// BreakoutConfig contains all tunables of the Breakout simulation.
type BreakoutConfig struct {
	Field    BreakoutField    `yaml:"field"`
	Physics  BreakoutPhysics  `yaml:"physics"`
	Paddle   BreakoutPaddle   `yaml:"paddle"`
	Layout   BreakoutLayout   `yaml:"layout"`
	Powerups BreakoutPowerups `yaml:"powerups"`
}

// BreakoutField is the size of the playing surface in world units (pixels).
type BreakoutField struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BreakoutPhysics defines ball motion and the spin model.
type BreakoutPhysics struct {
	BallSpeed       float64 `yaml:"ball_speed"`       // Units per frame
	BallRadius      float64 `yaml:"ball_radius"`      // Units
	Spin            bool    `yaml:"spin"`             // Paddle motion imparts English
	SpinFactor      float64 `yaml:"spin_factor"`      // Sensitivity = SpinFactor / paddle width
	ReferenceOffset float64 `yaml:"reference_offset"` // Bounce reference point below the floor
}

// BreakoutPaddle defines the starting paddle.
type BreakoutPaddle struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"` // Units per frame
}

// BreakoutLayout defines how level grids map onto block rectangles.
type BreakoutLayout struct {
	UnitWidth    float64 `yaml:"unit_width"`
	RowHeight    float64 `yaml:"row_height"`
	HeightOffset float64 `yaml:"height_offset"`
}

// BreakoutPowerups defines falling pickups and the effect table.
type BreakoutPowerups struct {
	Enabled        bool    `yaml:"enabled"`
	FallSpeed      float64 `yaml:"fall_speed"`
	TimeDelta      int     `yaml:"time_delta"`       // Seconds added/removed
	MinTime        int     `yaml:"min_time"`         // Seconds floor for -time
	WidthDelta     float64 `yaml:"width_delta"`      // Paddle width step
	MinPaddleWidth float64 `yaml:"min_paddle_width"` // Floor for -paddle
	SpeedDelta     float64 `yaml:"speed_delta"`      // Paddle and ball speed step
	MinSpeed       float64 `yaml:"min_speed"`        // Floor for -speed and -ball
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// Classic returns a copy of cfg with the later additions switched off:
// no spin and no power-ups, matching the early fixed-speed drafts.
func (c BreakoutConfig) Classic() BreakoutConfig {
	c.Physics.Spin = false
	c.Powerups.Enabled = false
	return c
}
