package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode and level picker",
	Long: `Start Breakout in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode and then a
starting level. Tab opens the run history. After a run you return to
the menu.

Examples:
  breakout menu
  breakout menu --fps 30
  breakout menu --levels ./my-levels.yaml`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagLevelsPath, "levels", "", "Path to a YAML level set")
}

func runMenu(_ *cobra.Command, _ []string) error {
	if err := applyGameOptions(flagLevelsPath); err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.RunSession(store, logger, runtimeConfig()); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	return nil
}
