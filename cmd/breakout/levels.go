package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout/levels"
)

var flagExport string

var levelsCmd = &cobra.Command{
	Use:   "levels [file.yaml]",
	Short: "List and validate levels",
	Long: `Show the level set with block counts and time limits.

Without an argument the built-in levels are listed. With a YAML file the
file is parsed and validated first; any invalid level is reported.

Examples:
  breakout levels
  breakout levels ./my-levels.yaml
  breakout levels --export ./builtin.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagExport, "export", "", "Write the level set as YAML to this file")
}

func runLevels(_ *cobra.Command, args []string) error {
	lvls := breakout.BuiltinLevels()
	source := "built-in"
	if len(args) == 1 {
		loaded, err := levels.LoadFile(args[0])
		if err != nil {
			return err
		}
		lvls = loaded
		source = args[0]
	}

	layout := breakout.LayoutFromConfig(config.DefaultBreakoutConfig())

	fmt.Printf("Levels (%s)\n", source)
	fmt.Println()
	fmt.Printf("  %-3s  %-12s  %-6s  %-8s  %s\n", "#", "Name", "Blocks", "Powerups", "Time")
	fmt.Printf("  %-3s  %-12s  %-6s  %-8s  %s\n", "-", "----", "------", "--------", "----")
	for i, lvl := range lvls {
		blocks := breakout.CompileBlocks(lvl.Grid, layout)
		powerups := 0
		for _, b := range blocks {
			if b.Powerup {
				powerups++
			}
		}
		fmt.Printf("  %-3d  %-12s  %-6d  %-8d  %s\n",
			i+1, lvl.Name, len(blocks), powerups, breakout.FormatClock(lvl.TimeLimit))
	}

	if flagExport == "" {
		return nil
	}
	data, err := levels.Marshal(lvls)
	if err != nil {
		return err
	}
	if err := os.WriteFile(flagExport, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", flagExport, err)
	}
	logger.Info("levels exported", "path", flagExport, "count", len(lvls))
	return nil
}
