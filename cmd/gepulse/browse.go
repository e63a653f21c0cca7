// Package main contains the gepulse CLI commands.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mont266/gepulse/internal/tui"
	"github.com/mont266/gepulse/internal/tui/themes"
)

func browseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse your flips in an interactive terminal UI",
		Long: `Open the interactive flip browser.

The browser lists every recorded flip with live filtering and a running
profit summary. Select a sold flip and press 's' to share it to the GE
Pulse feed.

Examples:
  gepulse browse                # Browse with the default theme
  gepulse browse --theme rune   # Use the rune theme
  gepulse browse --no-stats     # Hide the stats panel`,
		RunE: runBrowse,
	}

	// Flags
	cmd.Flags().String("theme", "", "Color theme (default, rune)")
	cmd.Flags().Bool("no-stats", false, "Hide the stats side panel")
	cmd.Flags().Bool("no-mouse", false, "Disable mouse support")

	// Bind to viper
	_ = viper.BindPFlag("theme", cmd.Flags().Lookup("theme"))
	_ = viper.BindPFlag("browse.no_stats", cmd.Flags().Lookup("no-stats"))
	_ = viper.BindPFlag("browse.no_mouse", cmd.Flags().Lookup("no-mouse"))

	return cmd
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer closeStorage(store)

	publisher, err := newFeedPublisher()
	if err != nil {
		return err
	}

	return tui.Run(ctx,
		tui.WithStorage(store),
		tui.WithPublisher(publisher),
		tui.WithTheme(themes.GetTheme(viper.GetString("theme"))),
		tui.WithStats(!viper.GetBool("browse.no_stats")),
		tui.WithMouse(!viper.GetBool("browse.no_mouse")),
	)
}
