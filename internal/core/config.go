package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Blocks destroyed in the current run
	Level    int  // 1-based level number
	GameOver bool // Whether the run has ended
	Paused   bool // Whether the game is paused
	Idle     bool // No run in progress; Back leaves the game
}

// Run outcomes recorded in RunSummary.
const (
	OutcomeWon           = "won"
	OutcomeFellOffBottom = "fell_off_bottom"
	OutcomeTimeExpired   = "time_expired"
	OutcomeQuit          = "quit"
)

// RunSummary describes a finished run. The platform persists it.
type RunSummary struct {
	Outcome         string
	Level           int // 1-based level the run ended on
	LevelsCleared   int
	BlocksDestroyed int
	Duration        time.Duration // Time spent with the ball in play
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State    GameState
	Finished *RunSummary // Set on the tick a run ends
}
