package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/registry"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagRecent bool
	flagClear  bool
	flagLimit  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show recorded runs",
	Long: `Display the best runs for a game, ranked by levels cleared, then
blocks destroyed, then time. The game defaults to "breakout"; use
"breakout_classic" for classic runs.

Examples:
  breakout scores
  breakout scores breakout_classic
  breakout scores --recent
  breakout scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the most recent runs of all games instead")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all runs of the game")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := "breakout"
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q", gameID)
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(gameID); err != nil {
			return err
		}
		logger.Info("runs cleared", "game", gameID)
		return nil
	}

	var runs []storage.RunEntry
	if flagRecent {
		fmt.Println("Recent runs")
		runs, err = store.RecentRuns(flagLimit)
	} else {
		fmt.Printf("Best runs - %s\n", game.Title())
		runs, err = store.TopRuns(gameID, flagLimit)
	}
	if err != nil {
		return err
	}
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'breakout play' to record the first one!")
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %-15s  %-5s  %-6s  %-9s  %s\n", "Rank", "Game", "Result", "Level", "Blocks", "Time", "Date")
	fmt.Printf("  %-4s  %-16s  %-15s  %-5s  %-6s  %-9s  %s\n", "----", "----", "------", "-----", "------", "----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-16s  %-15s  %-5d  %-6d  %-9s  %s\n",
			i+1, r.GameID, r.Outcome, r.Level, r.BlocksDestroyed,
			breakout.FormatClock(r.Duration), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if flagRecent {
		return nil
	}
	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Cleared: %d  Best: %d levels  Blocks: %d\n",
		stats.RunsCount, stats.Wins, stats.BestLevels, stats.BlocksDestroyed)
	return nil
}
