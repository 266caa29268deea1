package replay

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

// playRecorded drives a real game through a scripted input sequence.
func playRecorded(t *testing.T, seed int64) (*breakout.Game, *Recording) {
	t.Helper()

	rec := NewRecorder("breakout")
	g := breakout.New()
	g.SetRecorder(rec)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})

	for i := range 900 {
		in := core.NewInputFrame()
		switch {
		case i == 0:
			in.Set(core.ActionConfirm)
		case i == 5 || i%60 == 55:
			in.Set(core.ActionLaunch)
		case i%60 < 25:
			in.Set(core.ActionLeft)
		case i%60 < 50:
			in.Set(core.ActionRight)
		}
		res := g.Step(in, 16*time.Millisecond)
		if res.State.GameOver {
			in := core.NewInputFrame()
			in.Set(core.ActionConfirm)
			g.Step(in, 0)
		}
	}

	recording := rec.Finish(g.Session())
	if recording == nil {
		t.Fatal("nothing recorded")
	}
	return g, recording
}

func TestRecordVerify(t *testing.T) {
	g, rec := playRecorded(t, 42)

	res, err := Verify(rec)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if res.State != g.Session().State() {
		t.Errorf("state = %v, expected %v", res.State, g.Session().State())
	}
	if res.Stats != g.Session().Stats() {
		t.Errorf("stats = %+v, expected %+v", res.Stats, g.Session().Stats())
	}
	if res.Frames == 0 {
		t.Error("no frames replayed")
	}
}

func TestEncodeDecode(t *testing.T) {
	_, rec := playRecorded(t, 7)

	var buf bytes.Buffer
	if err := Encode(&buf, rec); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got.ID != rec.ID || got.Seed != 7 || got.GameID != "breakout" {
		t.Errorf("header = %s/%d/%s", got.ID, got.Seed, got.GameID)
	}
	if len(got.Frames) != len(rec.Frames) {
		t.Fatalf("frames = %d, expected %d", len(got.Frames), len(rec.Frames))
	}
	if got.Config != rec.Config {
		t.Errorf("config changed in transit: %+v", got.Config)
	}
	if _, err := Verify(got); err != nil {
		t.Errorf("decoded recording should verify: %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	_, rec := playRecorded(t, 99)
	path := filepath.Join(t.TempDir(), "run.bkr")

	if err := Save(path, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.FinalHash != rec.FinalHash {
		t.Errorf("hash = %x, expected %x", got.FinalHash, rec.FinalHash)
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	_, rec := playRecorded(t, 42)

	if rec.Frames[0].Op != OpStart {
		t.Fatalf("first op = %d, expected start", rec.Frames[0].Op)
	}
	rec.Frames[0].Level = 1

	if _, err := Verify(rec); !errors.Is(err, ErrMismatch) {
		t.Errorf("expected ErrMismatch, got %v", err)
	}
}

func TestDecodeRejectsBadInput(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte{0xc1})); err == nil {
		t.Error("garbage should fail to decode")
	}

	var buf bytes.Buffer
	if err := Encode(&buf, &Recording{Version: FormatVersion + 1, ID: uuid.NewString()}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := Decode(&buf); err == nil {
		t.Error("future version should be rejected")
	}

	buf.Reset()
	if err := Encode(&buf, &Recording{Version: FormatVersion, ID: "not-a-uuid"}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := Decode(&buf); err == nil {
		t.Error("bad id should be rejected")
	}
}

func TestVerifyRejectsUnknownOp(t *testing.T) {
	rec := &Recording{
		Version: FormatVersion,
		Config:  breakout.LoadConfig(false),
		Levels:  breakout.BuiltinLevels(),
		Frames:  []Frame{{Op: 42}},
	}
	if _, err := Verify(rec); err == nil {
		t.Error("unknown op should fail")
	}
}

func TestInputPacking(t *testing.T) {
	for _, in := range []breakout.Input{
		{},
		{Left: true},
		{Right: true, Launch: true},
		{Left: true, Right: true, Launch: true},
	} {
		f := Frame{Keys: packInput(in)}
		if f.Input() != in {
			t.Errorf("round trip of %+v gave %+v", in, f.Input())
		}
	}
}

func TestRecorderIgnoresCallsBeforeReset(t *testing.T) {
	r := NewRecorder("breakout")
	r.RecordStart(0)
	r.RecordQuit()
	if r.Finish(nil) != nil {
		t.Error("Finish without a reset should return nil")
	}
}
