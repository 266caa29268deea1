package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/replay"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagLevel      int
	flagClassic    bool
	flagLevelsPath string
	flagRecord     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Breakout",
	Long: `Start playing Breakout directly.

Controls:
  Left/Right, A/D - Move the paddle
  Space/Up        - Launch the ball
  Enter           - Start / dismiss a message
  P               - Pause
  R               - Restart the run (after a message)
  B/Esc           - Abandon the run, or leave from the title screen
  Q/Ctrl+C        - Quit

Difficulty options:
  easy   - Wider, quicker paddle and a slower ball
  normal - Config values as-is
  hard   - Narrower paddle, faster ball, smaller time power-ups
  fixed  - No spin and no power-ups

Examples:
  breakout play
  breakout play --level 3
  breakout play --classic
  breakout play --difficulty hard
  breakout play --levels ./my-levels.yaml
  breakout play --record run.bin --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Level to start from (1-based)")
	playCmd.Flags().BoolVar(&flagClassic, "classic", false, "Classic rules: no spin, no power-ups")
	playCmd.Flags().StringVar(&flagLevelsPath, "levels", "", "Path to a YAML level set")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Write a replay of the session to this file")
}

func runPlay(_ *cobra.Command, _ []string) error {
	if err := applyGameOptions(flagLevelsPath); err != nil {
		return err
	}
	count := len(breakout.ActiveLevels())
	if flagLevel < 1 || flagLevel > count {
		return fmt.Errorf("level %d out of range 1..%d", flagLevel, count)
	}

	game := breakout.New()
	if flagClassic {
		game = breakout.NewClassic()
	}
	game.StartFrom(flagLevel - 1)

	cfg := runtimeConfig()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	var rec *replay.Recorder
	if flagRecord != "" {
		rec = replay.NewRecorder(game.ID())
		game.SetRecorder(rec)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	runID, err := tui.Run(game, store, logger, cfg)
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	reportRun(store, runID, game.Seed())

	if rec == nil {
		return nil
	}
	recording := rec.Finish(game.Session())
	if recording == nil {
		logger.Info("nothing to record")
		return nil
	}
	if err := replay.Save(flagRecord, recording); err != nil {
		return err
	}
	logger.Info("replay saved", "path", flagRecord, "frames", len(recording.Frames), "id", recording.ID)
	return nil
}

// reportRun logs the last saved run with the seed that reproduces it.
func reportRun(store *storage.Store, runID string, seed int64) {
	if store == nil || runID == "" {
		return
	}
	run, err := store.RunByID(runID)
	if err != nil {
		logger.Warn("cannot load saved run", "id", runID, "error", err)
		return
	}
	if run == nil {
		return
	}
	logger.Info("run saved",
		"id", run.RunID,
		"won", run.Won(),
		"level", run.Level,
		"blocks", run.BlocksDestroyed,
		"time", breakout.FormatClock(run.Duration),
		"seed", seed,
	)
}
