package replay

import (
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

// Recorder captures a game's session calls. It implements breakout.Recorder.
type Recorder struct {
	gameID string
	rec    *Recording
}

// NewRecorder creates a recorder for the given game ID.
func NewRecorder(gameID string) *Recorder {
	return &Recorder{gameID: gameID}
}

// RecordReset starts a fresh recording.
func (r *Recorder) RecordReset(seed int64, cfg config.BreakoutConfig, levels []breakout.Level) {
	r.rec = &Recording{
		Version:   FormatVersion,
		ID:        uuid.NewString(),
		GameID:    r.gameID,
		Seed:      seed,
		CreatedAt: time.Now().UTC(),
		Config:    cfg,
		Levels:    levels,
	}
}

// RecordStart records the start of a run.
func (r *Recorder) RecordStart(level int) {
	r.add(Frame{Op: OpStart, Level: level})
}

// RecordFrame records one simulation frame.
func (r *Recorder) RecordFrame(in breakout.Input, elapsed time.Duration) {
	r.add(Frame{Op: OpFrame, Keys: packInput(in), Elapsed: int64(elapsed)})
}

// RecordContinue records an acknowledged event.
func (r *Recorder) RecordContinue() {
	r.add(Frame{Op: OpContinue})
}

// RecordQuit records a return to idle.
func (r *Recorder) RecordQuit() {
	r.add(Frame{Op: OpQuit})
}

func (r *Recorder) add(f Frame) {
	if r.rec == nil {
		return
	}
	r.rec.Frames = append(r.rec.Frames, f)
}

// Finish stamps the final state hash and returns the recording.
// It returns nil if nothing was recorded.
func (r *Recorder) Finish(s *breakout.Session) *Recording {
	if r.rec == nil {
		return nil
	}
	snap := s.Snapshot()
	r.rec.FinalHash = snap.Hash()
	return r.rec
}

var _ breakout.Recorder = (*Recorder)(nil)
