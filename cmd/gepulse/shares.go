package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mont266/gepulse/internal/cli"
	"github.com/mont266/gepulse/internal/common"
)

func sharesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shares",
		Short: "List flips shared to the GE Pulse feed",
		Long: `List the share log: every flip published to the GE Pulse feed, with
its post URL, newest first.`,
		RunE: runShares,
	}

	// Flags
	cmd.Flags().IntP("limit", "n", 20, "Maximum shares to list")

	return cmd
}

func runShares(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	limit, _ := cmd.Flags().GetInt("limit")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer closeStorage(store)

	shares, err := store.GetShares(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to load share log: %w", err)
	}

	if len(shares) == 0 {
		fmt.Println(cli.FormatInfo("Nothing shared yet. Share a sold flip from 'gepulse browse'."))
		return nil
	}

	fmt.Println(cli.FormatTitle("Shared Flips"))

	for _, share := range shares {
		itemName := "(deleted flip)"
		inv, invErr := store.GetInvestmentByID(ctx, share.InvestmentID)
		if invErr != nil && !errors.Is(invErr, common.ErrNotFound) {
			return fmt.Errorf("failed to load flip %d: %w", share.InvestmentID, invErr)
		}
		if inv != nil {
			itemName = inv.ItemName
		}

		title := share.Title
		if title == "" {
			title = cli.SubtleStyle.Render("(no title)")
		}

		fmt.Printf("%s  %s %-26s %s\n", share.SharedAt.Local().Format("2006-01-02 15:04"),
			cli.ShareIcon, itemName, title)
		fmt.Printf("%19s%s\n", "", cli.SubtleStyle.Render(share.PostURL))
	}

	return nil
}
