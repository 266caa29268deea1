package replay

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

// Result summarizes a verified replay.
type Result struct {
	Frames   int
	Events   []breakout.Event
	State    breakout.State
	Stats    breakout.Stats
	Hash     uint64
	Duration time.Duration // Sum of recorded frame times
}

// Run re-simulates a recording and returns the final state.
func Run(rec *Recording) (*breakout.Session, Result, error) {
	s, err := breakout.NewSession(rec.Config, rec.Levels)
	if err != nil {
		return nil, Result{}, fmt.Errorf("replay: %w", err)
	}
	rng := breakout.NewSimpleRNG(rec.Seed)

	var res Result
	for i, f := range rec.Frames {
		switch f.Op {
		case OpStart:
			if err := s.StartAt(f.Level); err != nil {
				return nil, Result{}, fmt.Errorf("replay: frame %d: %w", i, err)
			}
		case OpFrame:
			elapsed := time.Duration(f.Elapsed)
			_, ev := s.AdvanceFrame(f.Input(), elapsed, rng)
			if ev != nil {
				res.Events = append(res.Events, *ev)
			}
			res.Frames++
			res.Duration += elapsed
		case OpContinue:
			if ev := s.Continue(); ev != nil {
				res.Events = append(res.Events, *ev)
			}
		case OpQuit:
			s.Quit()
		default:
			return nil, Result{}, fmt.Errorf("replay: frame %d: unknown op %d", i, f.Op)
		}
	}

	snap := s.Snapshot()
	res.Hash = snap.Hash()
	res.State = s.State()
	res.Stats = s.Stats()
	return s, res, nil
}

// Verify re-simulates a recording and checks it against the recorded hash.
func Verify(rec *Recording) (Result, error) {
	_, res, err := Run(rec)
	if err != nil {
		return res, err
	}
	if res.Hash != rec.FinalHash {
		return res, fmt.Errorf("%w: got %x, recorded %x", ErrMismatch, res.Hash, rec.FinalHash)
	}
	return res, nil
}
