package breakout

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-breakout/internal/config"
)

// State is a position in the level lifecycle.
type State int

const (
	StateIdle              State = iota // Not started
	StateAwaitingLaunch                 // Ball glued to the paddle
	StatePlaying                        // Ball in play, timer running
	StateLevelWon                       // Every block cleared; waiting for Continue
	StateAllLevelsComplete              // Last level cleared
	StateGameOver                       // Ball lost or time expired
)

// String returns a short name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingLaunch:
		return "awaiting_launch"
	case StatePlaying:
		return "playing"
	case StateLevelWon:
		return "level_won"
	case StateAllLevelsComplete:
		return "all_levels_complete"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Terminal reports whether the run has ended.
func (s State) Terminal() bool {
	return s == StateAllLevelsComplete || s == StateGameOver
}

// EventKind tags an Event.
type EventKind int

const (
	EventLevelComplete EventKind = iota
	EventGameOver
	EventAllLevelsComplete
)

// GameOverReason explains a lost level.
type GameOverReason int

const (
	ReasonFellOffBottom GameOverReason = iota
	ReasonTimeExpired
)

// String returns a short name for the reason.
func (r GameOverReason) String() string {
	switch r {
	case ReasonFellOffBottom:
		return "fell_off_bottom"
	case ReasonTimeExpired:
		return "time_expired"
	default:
		return "unknown"
	}
}

// Event is emitted when a level ends. The caller presents it and then calls
// Continue or Quit.
type Event struct {
	Kind    EventKind
	Next    int            // Index of the next level (EventLevelComplete)
	HasNext bool           // Whether Next is a valid level (EventLevelComplete)
	Reason  GameOverReason // Why the level was lost (EventGameOver)
}

// Message returns the text shown to the player for the event.
func (e Event) Message() string {
	switch e.Kind {
	case EventLevelComplete:
		return "Congratulations - level complete!"
	case EventGameOver:
		if e.Reason == ReasonTimeExpired {
			return "Game over - time ran out!"
		}
		return "Game over - the ball fell off the bottom!"
	case EventAllLevelsComplete:
		return "Well done, you've completed all available levels!"
	default:
		return ""
	}
}

// Stats accumulates run statistics across levels.
type Stats struct {
	Frames          uint64
	BlocksDestroyed int
	LevelsCleared   int
	PowerupsCaught  int
	Elapsed         time.Duration // Time spent in StatePlaying
}

// Session owns all mutable state of one Breakout run.
type Session struct {
	cfg    config.BreakoutConfig
	levels []Level
	layout Layout

	state     State
	level     int
	paddle    Paddle
	ball      Ball
	blocks    []Block
	powerups  []Powerup
	remaining time.Duration
	stats     Stats
}

// NewSession validates the level list and returns an idle session.
func NewSession(cfg config.BreakoutConfig, levels []Level) (*Session, error) {
	if err := ValidateLevels(levels); err != nil {
		return nil, err
	}
	if cfg.Field.Width <= 0 || cfg.Field.Height <= 0 {
		return nil, fmt.Errorf("breakout: field must be positive, got %gx%g", cfg.Field.Width, cfg.Field.Height)
	}
	if cfg.Physics.BallSpeed <= 0 {
		return nil, fmt.Errorf("breakout: ball speed must be positive, got %g", cfg.Physics.BallSpeed)
	}
	if cfg.Paddle.Width <= 0 || cfg.Layout.UnitWidth <= 0 {
		return nil, fmt.Errorf("breakout: paddle width and unit width must be positive")
	}

	return &Session{
		cfg:    cfg,
		levels: levels,
		layout: LayoutFromConfig(cfg),
		state:  StateIdle,
	}, nil
}

// Start begins a new run at the first level.
func (s *Session) Start() {
	_ = s.StartAt(0)
}

// StartAt begins a new run at the given level index.
func (s *Session) StartAt(index int) error {
	if index < 0 || index >= len(s.levels) {
		return fmt.Errorf("breakout: level %d out of range [1, %d]", index+1, len(s.levels))
	}
	s.stats = Stats{}
	s.initLevel(index)
	return nil
}

// Quit abandons the run from any state.
func (s *Session) Quit() {
	s.state = StateIdle
	s.powerups = nil
}

// Continue acknowledges the last event. After a won level it loads the next
// one, or ends the run with EventAllLevelsComplete when none is left. After a
// lost level it restarts that level as a new run.
func (s *Session) Continue() *Event {
	switch s.state {
	case StateLevelWon:
		if s.level+1 < len(s.levels) {
			s.initLevel(s.level + 1)
			return nil
		}
		s.state = StateAllLevelsComplete
		return &Event{Kind: EventAllLevelsComplete}
	case StateGameOver:
		s.stats = Stats{}
		s.initLevel(s.level)
	}
	return nil
}

// initLevel resets every per-level object for the given level.
func (s *Session) initLevel(index int) {
	lvl := s.levels[index]

	s.level = index
	s.paddle = newPaddle(s.cfg)
	s.ball = newBall(s.cfg, s.paddle)
	s.blocks = CompileBlocks(lvl.Grid, s.layout)
	s.powerups = nil
	s.remaining = lvl.TimeLimit + time.Second
	s.state = StateAwaitingLaunch
}

// AdvanceFrame runs one frame. elapsed is the wall-clock time since the
// previous call; it only drains the timer while the ball is in play.
// The returned event, if any, reflects the end-of-frame state.
func (s *Session) AdvanceFrame(in Input, elapsed time.Duration, rng Rand) (Scene, *Event) {
	var ev *Event

	switch s.state {
	case StateAwaitingLaunch:
		if in.Launch {
			s.state = StatePlaying
			s.ball.Active = true
			ev = s.stepPlaying(in, elapsed, rng)
			break
		}
		s.paddle.Steer(in)
		s.paddle.Move(s.cfg.Field.Width)
		s.ball.glue(s.paddle)
		if s.liveBlocks() == 0 {
			ev = s.win()
		}
	case StatePlaying:
		ev = s.stepPlaying(in, elapsed, rng)
	}

	if s.state == StateAwaitingLaunch || s.state == StatePlaying {
		s.stats.Frames++
	}
	return s.Scene(), ev
}

// stepPlaying is one frame of live play: timer, movement, contacts,
// power-ups and the win check.
func (s *Session) stepPlaying(in Input, elapsed time.Duration, rng Rand) *Event {
	if elapsed > 0 {
		s.remaining -= elapsed
		s.stats.Elapsed += elapsed
	}
	if s.remaining < time.Second {
		return s.lose(ReasonTimeExpired)
	}

	s.paddle.Steer(in)
	s.paddle.Move(s.cfg.Field.Width)
	s.ball.Advance(s.cfg.Physics.Spin)

	res := s.resolveCollisions()
	if res.fell {
		return s.lose(ReasonFellOffBottom)
	}

	for _, blk := range res.destroyed {
		s.stats.BlocksDestroyed++
		if blk.Powerup && s.cfg.Powerups.Enabled && rng != nil {
			s.powerups = append(s.powerups, spawnPowerup(blk, s.layout, s.cfg.Powerups.FallSpeed, rng))
		}
	}

	s.stats.PowerupsCaught += len(s.advancePowerups())

	s.blocks = compactBlocks(s.blocks)
	if len(s.blocks) == 0 {
		return s.win()
	}
	return nil
}

func (s *Session) win() *Event {
	s.state = StateLevelWon
	s.stats.LevelsCleared++
	s.ball.Active = false
	next := s.level + 1
	return &Event{Kind: EventLevelComplete, Next: next, HasNext: next < len(s.levels)}
}

func (s *Session) lose(reason GameOverReason) *Event {
	s.state = StateGameOver
	s.ball.Active = false
	return &Event{Kind: EventGameOver, Reason: reason}
}

func (s *Session) liveBlocks() int {
	n := 0
	for _, b := range s.blocks {
		if b.Alive {
			n++
		}
	}
	return n
}

func compactBlocks(blocks []Block) []Block {
	live := blocks[:0]
	for _, b := range blocks {
		if b.Alive {
			live = append(live, b)
		}
	}
	return live
}

// State returns the lifecycle state.
func (s *Session) State() State {
	return s.state
}

// LevelIndex returns the current level index.
func (s *Session) LevelIndex() int {
	return s.level
}

// Levels returns the number of levels in the run.
func (s *Session) Levels() int {
	return len(s.levels)
}

// Stats returns the run statistics.
func (s *Session) Stats() Stats {
	return s.stats
}

// Config returns the simulation config.
func (s *Session) Config() config.BreakoutConfig {
	return s.cfg
}

// Remaining returns the time left on the level clock.
func (s *Session) Remaining() time.Duration {
	return s.remaining
}
