package breakout

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/registry"
)

// Visual characters for rendering
const (
	PaddleChar   = '='
	BallChar     = '●'
	BlockChar    = '█'
	PowerupChar  = '▒'
	SeparatorRow = '─'
)

// HelpText lists the controls shown on the idle screen.
var HelpText = []string{
	"Left/Right or A/D move the paddle",
	"Space launches the ball",
	"P pauses, B returns here, Q quits",
	"Clear every block before the clock runs out",
}

// hudRows is the number of rows above the field (status line + separator).
const hudRows = 2

// Package-level options set from the CLI before games are created.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	customLevels     []Level
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetLevels replaces the built-in level set. A nil slice restores it.
func SetLevels(levels []Level) {
	customLevels = levels
}

// ActiveLevels returns the level set new games will use.
func ActiveLevels() []Level {
	if len(customLevels) > 0 {
		return customLevels
	}
	return BuiltinLevels()
}

// LoadConfig resolves the simulation config from the configured path and
// preset. classic switches off spin and power-ups.
func LoadConfig(classic bool) config.BreakoutConfig {
	cfg, err := config.LoadBreakout(configPath)
	if err != nil {
		cfg = config.DefaultBreakoutConfig()
	}
	if difficultyPreset != "" {
		config.ApplyBreakoutPreset(&cfg, difficultyPreset)
	}
	if classic {
		cfg = cfg.Classic()
	}
	return cfg
}

// Recorder observes every call the game makes into its session, in order.
// RecordReset opens a new recording with everything needed to rebuild the
// session.
type Recorder interface {
	RecordReset(seed int64, cfg config.BreakoutConfig, levels []Level)
	RecordStart(level int)
	RecordFrame(in Input, elapsed time.Duration)
	RecordContinue()
	RecordQuit()
}

// Game adapts a Session to the platform's registry.Game interface.
type Game struct {
	classic bool
	startAt int // 0-based level runs begin at

	session *Session
	rng     *SimpleRNG
	pending *Event // Event waiting to be acknowledged
	paused  bool
	loadErr error

	runtime  core.RuntimeConfig
	cfg      config.BreakoutConfig
	recorder Recorder

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a new Breakout game instance.
func New() *Game {
	return &Game{}
}

// NewClassic creates a game without spin or power-ups.
func NewClassic() *Game {
	return &Game{classic: true}
}

// StartFrom overrides the level new runs of this game begin at.
func (g *Game) StartFrom(index int) {
	g.startAt = index
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.classic {
		return "breakout_classic"
	}
	return "breakout"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.classic {
		return "Breakout (Classic)"
	}
	return "Breakout"
}

// SetRecorder attaches a recorder. Must be called before Reset.
func (g *Game) SetRecorder(r Recorder) {
	g.recorder = r
}

// Session exposes the underlying simulation.
func (g *Game) Session() *Session {
	return g.session
}

// Seed returns the power-up RNG seed of the current game.
func (g *Game) Seed() int64 {
	return g.runtime.Seed
}

// Reset loads config and levels and leaves the session idle.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = LoadConfig(g.classic)
	g.rng = NewSimpleRNG(runtime.Seed)
	g.pending = nil
	g.paused = false

	g.minScreenW = 40
	g.minScreenH = 16
	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH

	levels := ActiveLevels()
	g.session, g.loadErr = NewSession(g.cfg, levels)
	if g.loadErr == nil && g.recorder != nil {
		g.recorder.RecordReset(runtime.Seed, g.cfg, levels)
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame, elapsed time.Duration) core.StepResult {
	if g.session == nil || g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	s := g.session

	if in.Has(core.ActionBack) && s.State() != StateIdle {
		finished := g.quitSummary()
		g.quit()
		return core.StepResult{State: g.State(), Finished: finished}
	}

	if in.Has(core.ActionRestart) && (g.pending != nil || s.State().Terminal()) {
		g.start()
		return core.StepResult{State: g.State()}
	}

	if g.pending != nil {
		var finished *core.RunSummary
		if in.Has(core.ActionConfirm) || in.Has(core.ActionLaunch) {
			finished = g.acknowledge()
		}
		return core.StepResult{State: g.State(), Finished: finished}
	}

	switch s.State() {
	case StateIdle, StateAllLevelsComplete, StateGameOver, StateLevelWon:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionLaunch) {
			g.start()
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && s.State() == StatePlaying {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	input := Input{
		Left:   in.Has(core.ActionLeft),
		Right:  in.Has(core.ActionRight),
		Launch: in.Has(core.ActionLaunch),
	}
	if g.recorder != nil {
		g.recorder.RecordFrame(input, elapsed)
	}

	_, ev := s.AdvanceFrame(input, elapsed, g.rng)
	if ev == nil {
		return core.StepResult{State: g.State()}
	}

	g.pending = ev
	result := core.StepResult{State: g.State()}
	if ev.Kind == EventGameOver {
		result.Finished = g.summary(outcomeFor(ev))
	}
	return result
}

// start begins a run at the configured level.
func (g *Game) start() {
	level := g.startAt
	if level < 0 || level >= g.session.Levels() {
		level = 0
	}
	if g.recorder != nil {
		g.recorder.RecordStart(level)
	}
	_ = g.session.StartAt(level)
	g.pending = nil
	g.paused = false
}

// acknowledge dismisses the pending event and continues the run. It returns
// a summary when the acknowledgement completes the last level.
func (g *Game) acknowledge() *core.RunSummary {
	if g.pending.Kind == EventAllLevelsComplete {
		g.quit()
		return nil
	}
	if g.recorder != nil {
		g.recorder.RecordContinue()
	}
	g.pending = g.session.Continue()
	if g.pending != nil && g.pending.Kind == EventAllLevelsComplete {
		return g.summary(core.OutcomeWon)
	}
	return nil
}

func (g *Game) quit() {
	if g.recorder != nil {
		g.recorder.RecordQuit()
	}
	g.session.Quit()
	g.pending = nil
	g.paused = false
}

// quitSummary reports an abandoned run, or nil if nothing was played.
func (g *Game) quitSummary() *core.RunSummary {
	s := g.session
	if s.State().Terminal() {
		return nil
	}
	if st := s.Stats(); st.Elapsed == 0 && st.BlocksDestroyed == 0 {
		return nil
	}
	return g.summary(core.OutcomeQuit)
}

func (g *Game) summary(outcome string) *core.RunSummary {
	st := g.session.Stats()
	return &core.RunSummary{
		Outcome:         outcome,
		Level:           g.session.LevelIndex() + 1,
		LevelsCleared:   st.LevelsCleared,
		BlocksDestroyed: st.BlocksDestroyed,
		Duration:        st.Elapsed,
	}
}

func outcomeFor(ev *Event) string {
	if ev.Reason == ReasonTimeExpired {
		return core.OutcomeTimeExpired
	}
	return core.OutcomeFellOffBottom
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{Idle: true}
	}
	return core.GameState{
		Score:    g.session.Stats().BlocksDestroyed,
		Level:    g.session.LevelIndex() + 1,
		GameOver: g.session.State().Terminal(),
		Paused:   g.paused,
		Idle:     g.session.State() == StateIdle,
	}
}

// Resize adapts the game to a new screen size without touching the session.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.screenTooSmall = w < g.minScreenW || h < g.minScreenH
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}
	if g.loadErr != nil {
		drawCenteredBox(dst, "LEVELS FAILED TO LOAD", g.loadErr.Error())
		return
	}

	sc := g.session.Scene()
	v := newViewport(sc, dst.Width(), dst.Height())

	g.renderHUD(dst, sc)
	if sc.State != StateIdle {
		renderBlocks(dst, v, sc.Blocks)
		renderPowerups(dst, v, sc.Powerups)
		renderPaddle(dst, v, sc.Paddle)
		renderBall(dst, v, sc.Ball)
	}
	g.renderOverlay(dst, sc)
}

// viewport maps field coordinates onto screen cells below the HUD.
type viewport struct {
	sx, sy float64
	rows   int
}

func newViewport(sc Scene, w, h int) viewport {
	rows := h - hudRows - 1 // Bottom row holds hints
	return viewport{
		sx:   float64(w) / sc.FieldW,
		sy:   float64(rows) / sc.FieldH,
		rows: rows,
	}
}

func (v viewport) col(x float64) int {
	return int(x * v.sx)
}

func (v viewport) row(y float64) int {
	r := int(y * v.sy)
	if r >= v.rows {
		r = v.rows - 1
	}
	return hudRows + r
}

// renderHUD draws the level, block count and clock.
func (g *Game) renderHUD(dst *core.Screen, sc Scene) {
	levelText := fmt.Sprintf("Level %d/%d", sc.Level+1, sc.LevelCount)
	if sc.LevelName != "" {
		levelText += " " + sc.LevelName
	}
	dst.DrawText(1, 0, levelText)

	dst.DrawTextCentered(0, fmt.Sprintf("Blocks: %d", sc.Stats.BlocksDestroyed))

	clockColor := core.ColorDefault
	if sc.Clock.Urgent {
		clockColor = core.ColorRed
	}
	dst.DrawTextColor(dst.Width()-len(sc.Clock.Text)-1, 0, sc.Clock.Text, clockColor)

	dst.DrawHLine(0, 1, dst.Width(), SeparatorRow)
}

func renderBlocks(dst *core.Screen, v viewport, blocks []BlockView) {
	for _, b := range blocks {
		glyph := BlockChar
		if b.Powerup {
			glyph = PowerupChar
		}
		x0, x1 := v.col(b.X), v.col(b.Right())
		if x1 <= x0 {
			x1 = x0 + 1
		}
		y := v.row(b.Y)
		// Leave a one-cell gap so merged neighbours stay distinguishable.
		for x := x0; x < x1-1 || x == x0; x++ {
			dst.SetColor(x, y, glyph, b.Color)
		}
	}
}

func renderPowerups(dst *core.Screen, v viewport, pus []PowerupView) {
	for _, pu := range pus {
		cx := v.col(pu.X + pu.W/2)
		x := cx - len(pu.Label)/2
		dst.DrawTextColor(x, v.row(pu.Y), pu.Label, core.ColorBrightYellow)
	}
}

func renderPaddle(dst *core.Screen, v viewport, p Rect) {
	x0, x1 := v.col(p.X), v.col(p.Right())
	if x1 <= x0 {
		x1 = x0 + 1
	}
	y := v.row(p.Y)
	for x := x0; x < x1; x++ {
		dst.SetColor(x, y, PaddleChar, core.ColorBrightCyan)
	}
}

func renderBall(dst *core.Screen, v viewport, b Circle) {
	dst.SetColor(v.col(b.X), v.row(b.Y), BallChar, core.ColorBrightWhite)
}

// renderOverlay draws state messages.
func (g *Game) renderOverlay(dst *core.Screen, sc Scene) {
	if g.pending != nil {
		drawCenteredBox(dst, g.pending.Message(), pendingHint(g.pending))
		return
	}

	switch sc.State {
	case StateIdle:
		title := g.Title()
		dst.DrawTextCentered(dst.Height()/2-len(HelpText)/2-2, title)
		for i, line := range HelpText {
			dst.DrawTextCentered(dst.Height()/2-len(HelpText)/2+i, line)
		}
		dst.DrawTextCentered(dst.Height()-1, "Press ENTER to start")

	case StateAwaitingLaunch:
		dst.DrawTextCentered(dst.Height()-1, "Press SPACE to launch")

	case StatePlaying:
		if g.paused {
			drawCenteredBox(dst, "PAUSED", "Press P to resume")
		}
	}
}

func pendingHint(ev *Event) string {
	switch ev.Kind {
	case EventLevelComplete:
		if ev.HasNext {
			return "ENTER: next level  |  B: menu"
		}
		return "ENTER: continue  |  B: menu"
	case EventGameOver:
		return "ENTER: retry level  |  R: restart  |  B: menu"
	default:
		return "R: play again  |  B: menu"
	}
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	box := core.CenteredRect(core.Max(len(title), len(subtitle))+4, 5, dst.Width(), dst.Height())

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	dst.DrawText(box.X+(box.W-len(title))/2, box.Y+1, title)
	dst.DrawText(box.X+(box.W-len(subtitle))/2, box.Y+3, subtitle)
}

// Register the games with the registry
func init() {
	registry.Register("breakout", func() registry.Game {
		return New()
	})
	registry.Register("breakout_classic", func() registry.Game {
		return NewClassic()
	})
}
