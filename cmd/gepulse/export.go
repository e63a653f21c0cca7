package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mont266/gepulse/internal/cli"
	"github.com/mont266/gepulse/internal/config"
	"github.com/mont266/gepulse/internal/model"
	"github.com/mont266/gepulse/internal/service"
	"github.com/mont266/gepulse/internal/sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the flip log to Google Sheets",
		Long: `Export the flip log to a Google Sheets spreadsheet, with per-flip
profit and a summary block.

Credentials come from the config file or environment; a service
account and an OAuth client both work. See the README for setup.

Examples:
  gepulse export                 # Export everything
  gepulse export --status sold   # Completed flips only`,
		RunE: runExport,
	}

	// Flags
	cmd.Flags().StringP("status", "s", "", "Filter by status (open, sold)")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	statusFlag, _ := cmd.Flags().GetString("status")
	status, err := parseStatus(statusFlag)
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer closeStorage(store)

	flips, err := store.GetInvestments(ctx, service.InvestmentFilter{Status: status})
	if err != nil {
		return fmt.Errorf("failed to load flips: %w", err)
	}

	if len(flips) == 0 {
		return fmt.Errorf("nothing to export; record a flip with 'gepulse buy' first")
	}

	sheetsConfig, err := config.LoadSheetsConfig()
	if err != nil {
		return fmt.Errorf("failed to load sheets config: %w", err)
	}

	writer, err := sheets.NewWriter(ctx, *sheetsConfig, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to create sheets writer: %w", err)
	}

	slog.Info("Exporting flips", "count", len(flips), "spreadsheet", sheetsConfig.SpreadsheetName)

	summary := model.SummarizeFlips(flips)
	if err := writer.Write(ctx, flips, &summary); err != nil {
		return fmt.Errorf("failed to export flips: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d flips to %q", len(flips), sheetsConfig.SpreadsheetName)))

	return nil
}
