package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Re-simulate a recorded run and verify it",
	Long: `Load a replay written by 'breakout play --record', run it through the
simulation without a terminal and check that the final state matches the
recorded hash.

Examples:
  breakout replay run.bin`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func runReplay(_ *cobra.Command, args []string) error {
	rec, err := replay.Load(args[0])
	if err != nil {
		return err
	}

	res, err := replay.Verify(rec)
	if err != nil {
		return err
	}

	fmt.Printf("Replay %s (%s)\n", rec.ID, rec.GameID)
	fmt.Printf("  Recorded: %s  Seed: %d\n", rec.CreatedAt.Format("2006-01-02 15:04:05"), rec.Seed)
	fmt.Printf("  Frames:   %d  Play time: %s\n", res.Frames, breakout.FormatClock(res.Duration))
	fmt.Printf("  Levels cleared: %d  Blocks: %d  Power-ups: %d\n",
		res.Stats.LevelsCleared, res.Stats.BlocksDestroyed, res.Stats.PowerupsCaught)
	for _, ev := range res.Events {
		fmt.Printf("  - %s\n", ev.Message())
	}
	fmt.Printf("  Final state: %s  Hash: %016x  OK\n", res.State, res.Hash)
	return nil
}
