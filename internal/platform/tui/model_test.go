package tui

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyBack  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
)

func newTestModel(t *testing.T) (Model, *breakout.Game, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	game := breakout.New()
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
	m := NewModel(game, store, log.New(io.Discard), cfg)
	m.Init()
	return m, game, store
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{keyLeft, core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}, core.ActionLeft, false},
		{keyRight, core.ActionRight, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}}, core.ActionRight, false},
		{keySpace, core.ActionLaunch, false},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionLaunch, false},
		{keyEnter, core.ActionConfirm, false},
		{keyBack, core.ActionBack, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}}, core.ActionPause, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}, core.ActionRestart, false},
		{keyQuit, core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestHeldKeys(t *testing.T) {
	h := newHeldKeys(100 * time.Millisecond)
	t0 := time.Unix(1000, 0)

	h.press(core.ActionLeft, t0)

	f := core.NewInputFrame()
	h.apply(&f, t0.Add(50*time.Millisecond))
	if !f.Has(core.ActionLeft) || f.Has(core.ActionRight) {
		t.Errorf("left should be held, got %v", f.List())
	}

	f.Clear()
	h.apply(&f, t0.Add(150*time.Millisecond))
	if f.Has(core.ActionLeft) {
		t.Error("left should be released after the hold window")
	}

	h.press(core.ActionLeft, t0)
	h.press(core.ActionRight, t0.Add(10*time.Millisecond))
	f.Clear()
	h.apply(&f, t0.Add(20*time.Millisecond))
	if f.Has(core.ActionLeft) || !f.Has(core.ActionRight) {
		t.Errorf("opposite key should take over, got %v", f.List())
	}

	h.release()
	f.Clear()
	h.apply(&f, t0.Add(20*time.Millisecond))
	if len(f.List()) != 0 {
		t.Errorf("release should clear steering, got %v", f.List())
	}
}

func TestFrameClock(t *testing.T) {
	var c frameClock
	t0 := time.Unix(1000, 0)

	if d := c.elapsed(t0); d != 0 {
		t.Errorf("first tick elapsed = %v, want 0", d)
	}
	if d := c.elapsed(t0.Add(16 * time.Millisecond)); d != 16*time.Millisecond {
		t.Errorf("elapsed = %v, want 16ms", d)
	}
	if d := c.elapsed(t0); d != 0 {
		t.Errorf("clock going backwards should yield 0, got %v", d)
	}
}

func TestModelDrivesGameWithWallClock(t *testing.T) {
	m, game, _ := newTestModel(t)
	t0 := time.Unix(1000, 0)

	m, _ = send(t, m, keyEnter)
	m, _ = send(t, m, TickMsg(t0))
	if game.Session().State() != breakout.StateAwaitingLaunch {
		t.Fatalf("state = %v, expected awaiting launch", game.Session().State())
	}

	m, _ = send(t, m, keySpace)
	m, _ = send(t, m, TickMsg(t0.Add(20*time.Millisecond)))
	if game.Session().State() != breakout.StatePlaying {
		t.Fatalf("state = %v, expected playing", game.Session().State())
	}
	if got := game.Session().Stats().Elapsed; got != 20*time.Millisecond {
		t.Errorf("elapsed = %v, want 20ms from tick timestamps", got)
	}

	m, _ = send(t, m, TickMsg(t0.Add(50*time.Millisecond)))
	if got := game.Session().Stats().Elapsed; got != 50*time.Millisecond {
		t.Errorf("elapsed = %v, want 50ms", got)
	}
	if m.View() == "" {
		t.Error("View should render the game")
	}
}

func TestModelQuitSavesAbandonedRun(t *testing.T) {
	m, _, store := newTestModel(t)
	t0 := time.Unix(1000, 0)

	m, _ = send(t, m, keyEnter)
	m, _ = send(t, m, TickMsg(t0))
	m, _ = send(t, m, keySpace)
	m, _ = send(t, m, TickMsg(t0.Add(30*time.Millisecond)))

	m, cmd := send(t, m, keyQuit)
	if !m.IsQuitting() || cmd == nil {
		t.Fatal("q should quit the program")
	}
	if m.LastRunID() == "" {
		t.Fatal("abandoned run should be saved")
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].GameID != "breakout" || runs[0].Outcome != core.OutcomeQuit {
		t.Errorf("unexpected run: %+v", runs[0])
	}
	if runs[0].Duration != 30*time.Millisecond {
		t.Errorf("Duration = %v, want 30ms", runs[0].Duration)
	}
}

func TestModelBackFromIdleLeavesGame(t *testing.T) {
	m, _, store := newTestModel(t)

	m, _ = send(t, m, keyBack)
	if !m.BackToMenu() {
		t.Error("Back on the idle screen should return to the menu")
	}
	if m.IsQuitting() {
		t.Error("an embedded model should not quit on Back")
	}

	runs, _ := store.RecentRuns(10)
	if len(runs) != 0 {
		t.Errorf("nothing was played, expected no runs, got %d", len(runs))
	}
}

func TestModelSteeringHeldBetweenRepeats(t *testing.T) {
	m, game, _ := newTestModel(t)
	t0 := time.Now()

	m, _ = send(t, m, keyEnter)
	m, _ = send(t, m, TickMsg(t0))
	startX := game.Session().Scene().Paddle.X

	m, _ = send(t, m, keyLeft)
	m, _ = send(t, m, TickMsg(t0.Add(16*time.Millisecond)))
	m, _ = send(t, m, TickMsg(t0.Add(32*time.Millisecond)))
	if x := game.Session().Scene().Paddle.X; x >= startX {
		t.Errorf("paddle should move left while the key is held: %v -> %v", startX, x)
	}
}
