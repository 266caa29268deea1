package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the default Breakout configuration.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Field: BreakoutField{
			Width:  1000,
			Height: 500,
		},
		Physics: BreakoutPhysics{
			BallSpeed:       4,
			BallRadius:      8,
			Spin:            true,
			SpinFactor:      0.05,
			ReferenceOffset: 10,
		},
		Paddle: BreakoutPaddle{
			Width:  80,
			Height: 14,
			Speed:  5,
		},
		Layout: BreakoutLayout{
			UnitWidth:    50,
			RowHeight:    20,
			HeightOffset: 40,
		},
		Powerups: BreakoutPowerups{
			Enabled:        true,
			FallSpeed:      2,
			TimeDelta:      60,
			MinTime:        1,
			WidthDelta:     20,
			MinPaddleWidth: 20,
			SpeedDelta:     1,
			MinSpeed:       1,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultBreakoutYAML
}
