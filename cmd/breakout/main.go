// breakout is a terminal Breakout with timed levels, spin and power-ups.
//
// Usage:
//
//	breakout play            - Play (optionally from a level, classic mode, custom levels)
//	breakout menu            - Pick mode and level interactively, browse past runs
//	breakout levels          - List and validate the level set
//	breakout scores [game]   - Show best and recent runs
//	breakout serve           - Start SSH server for remote play
//	breakout replay <file>   - Re-simulate a recorded run and verify it
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible power-ups
//	--db <path>           - Set database path (default: ~/.arcade/breakout.db)
//	--config <path>       - Custom physics config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout/levels"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagVerbose    bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "breakout",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breakout",
	Short: "Breakout in your terminal",
	Long: `Breakout is a terminal brick breaker: clear every block of a level
before its clock runs out, steering the ball with the paddle's motion.

Available commands:
  play     - Play directly
  menu     - Interactive mode and level picker
  levels   - List and validate levels
  scores   - View recorded runs
  serve    - Start SSH server for remote play
  replay   - Verify a recorded run

Examples:
  breakout play
  breakout play --level 3 --classic
  breakout play --levels ./my-levels.yaml --record run.bin
  breakout serve --ssh :2222
  breakout replay run.bin`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/breakout.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom physics config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replayCmd)
}

// applyGameOptions pushes the global flags into the breakout package before
// any game is created. levelsPath may be empty for the built-in set.
func applyGameOptions(levelsPath string) error {
	breakout.SetConfigPath(flagConfig)
	breakout.SetDifficultyPreset(flagDifficulty)
	if levelsPath == "" {
		breakout.SetLevels(nil)
		return nil
	}
	lvls, err := levels.LoadFile(levelsPath)
	if err != nil {
		return err
	}
	breakout.SetLevels(lvls)
	logger.Debug("loaded levels", "path", levelsPath, "count", len(lvls))
	return nil
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the runs database. Play continues without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
