package breakout

import "math"

// Snapshot contains the complete session state for replay verification.
// Floats are stored as IEEE-754 bits so equal states hash equally.
type Snapshot struct {
	Frames     uint64
	State      int
	LevelIndex int
	Remaining  int64 // Nanoseconds

	PaddleX     uint64
	PaddleWidth uint64
	PaddleSpeed uint64

	// Ball: X, Y, Angle, Speed, Spin
	BallData   []uint64
	BallActive bool

	// Blocks: alive blocks only, each is X, Y, W, Value
	BlockData []uint64

	// Power-ups: each is Kind, X, Y
	PowerupData []uint64

	BlocksDestroyed int
	LevelsCleared   int
}

// Snapshot returns the current session state as a Snapshot.
func (s *Session) Snapshot() Snapshot {
	blockData := make([]uint64, 0, len(s.blocks)*4)
	for _, b := range s.blocks {
		if !b.Alive {
			continue
		}
		blockData = append(blockData,
			math.Float64bits(b.X),
			math.Float64bits(b.Y),
			math.Float64bits(b.W),
			uint64(b.Value), //#nosec G115 -- block values are 1..9
		)
	}

	powerupData := make([]uint64, 0, len(s.powerups)*3)
	for _, pu := range s.powerups {
		powerupData = append(powerupData,
			uint64(pu.Kind), //#nosec G115 -- kind is a small enum
			math.Float64bits(pu.X),
			math.Float64bits(pu.Y),
		)
	}

	return Snapshot{
		Frames:     s.stats.Frames,
		State:      int(s.state),
		LevelIndex: s.level,
		Remaining:  int64(s.remaining),

		PaddleX:     math.Float64bits(s.paddle.X),
		PaddleWidth: math.Float64bits(s.paddle.W),
		PaddleSpeed: math.Float64bits(s.paddle.Speed),

		BallData: []uint64{
			math.Float64bits(s.ball.X),
			math.Float64bits(s.ball.Y),
			math.Float64bits(s.ball.Angle),
			math.Float64bits(s.ball.Speed),
			math.Float64bits(s.ball.Spin),
		},
		BallActive: s.ball.Active,

		BlockData:   blockData,
		PowerupData: powerupData,

		BlocksDestroyed: s.stats.BlocksDestroyed,
		LevelsCleared:   s.stats.LevelsCleared,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap Snapshot) Hash() uint64 {
	h := snap.Frames
	h = h*31 + uint64(snap.State)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.LevelIndex) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Remaining)  //#nosec G115 -- hash computation
	h = h*31 + snap.PaddleX
	h = h*31 + snap.PaddleWidth
	h = h*31 + snap.PaddleSpeed
	h = h*31 + uint64(snap.BlocksDestroyed) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.LevelsCleared)   //#nosec G115 -- hash computation
	if snap.BallActive {
		h = h*31 + 1
	}

	for _, v := range snap.BallData {
		h = h*31 + v
	}

	h = h*31 + uint64(len(snap.BlockData))
	for _, v := range snap.BlockData {
		h = h*31 + v
	}

	h = h*31 + uint64(len(snap.PowerupData))
	for _, v := range snap.PowerupData {
		h = h*31 + v
	}

	return h
}
