package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mont266/gepulse/internal/cli"
	"github.com/mont266/gepulse/internal/format"
	"github.com/mont266/gepulse/internal/prices"
)

func itemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Manage the local item catalog",
		Long: `Manage the local Grand Exchange item catalog.

The catalog backs item lookups in 'gepulse buy' and the share dialog.
It is populated from the OSRS wiki prices API and cached in the local
database.`,
	}

	cmd.AddCommand(itemsSyncCmd())
	cmd.AddCommand(itemsSearchCmd())

	return cmd
}

func itemsSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Download the item catalog from the wiki prices API",
		RunE:  runItemsSync,
	}

	// Flags
	cmd.Flags().String("url", "", "Override the prices API base URL")
	_ = viper.BindPFlag("prices.url", cmd.Flags().Lookup("url"))

	return cmd
}

func runItemsSync(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer closeStorage(store)

	baseURL := viper.GetString("prices.url")
	if baseURL == "" {
		baseURL = prices.DefaultBaseURL
	}
	client := prices.NewClient(baseURL)

	slog.Info("Fetching item mapping", "url", baseURL)
	items, err := client.FetchMapping(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch item mapping: %w", err)
	}

	bar := progressbar.NewOptions(len(items),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Saving items...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)

	// Batched writes keep one giant transaction from stalling the bar.
	const batchSize = 500
	for start := 0; start < len(items); start += batchSize {
		end := min(start+batchSize, len(items))
		if err := store.SaveItems(ctx, items[start:end]); err != nil {
			return fmt.Errorf("failed to save items: %w", err)
		}
		if barErr := bar.Add(end - start); barErr != nil {
			slog.Warn("Failed to update progress bar", "error", barErr)
		}
	}

	count, err := store.CountItems(ctx)
	if err != nil {
		return fmt.Errorf("failed to count items: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Item catalog synced: %s items", format.FormatCommas(count))))

	return nil
}

func itemsSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the item catalog by name",
		Args:  cobra.ExactArgs(1),
		RunE:  runItemsSearch,
	}

	// Flags
	cmd.Flags().IntP("limit", "n", 20, "Maximum results")

	return cmd
}

func runItemsSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	limit, _ := cmd.Flags().GetInt("limit")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer closeStorage(store)

	items, err := store.SearchItems(ctx, args[0], limit)
	if err != nil {
		return fmt.Errorf("failed to search items: %w", err)
	}

	if len(items) == 0 {
		fmt.Println(cli.FormatInfo(fmt.Sprintf("No items matching %q. Run 'gepulse items sync' to refresh the catalog.", args[0])))
		return nil
	}

	for _, item := range items {
		buyLimit := "-"
		if item.BuyLimit > 0 {
			buyLimit = format.FormatCommas(item.BuyLimit)
		}
		line := fmt.Sprintf("%-7d %-32s limit %s", item.ID, item.Name, buyLimit)
		if item.Members {
			line += cli.SubtleStyle.Render("  (members)")
		}
		fmt.Println(line)
	}

	return nil
}
