package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mont266/gepulse/internal/cli"
	"github.com/mont266/gepulse/internal/format"
	"github.com/mont266/gepulse/internal/model"
	"github.com/mont266/gepulse/internal/service"
)

func flipsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flips",
		Short: "List recorded flips",
		Long: `List recorded flips, most recent purchase first.

Examples:
  gepulse flips                # Everything
  gepulse flips --status open  # Positions still waiting on a sale
  gepulse flips --status sold  # Completed flips only`,
		RunE: runFlips,
	}

	// Flags
	cmd.Flags().StringP("status", "s", "", "Filter by status (open, sold)")
	cmd.Flags().IntP("limit", "n", 50, "Maximum flips to list (0 = no limit)")

	return cmd
}

func runFlips(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	statusFlag, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")

	status, err := parseStatus(statusFlag)
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer closeStorage(store)

	flips, err := store.GetInvestments(ctx, service.InvestmentFilter{Status: status, Limit: limit})
	if err != nil {
		return fmt.Errorf("failed to load flips: %w", err)
	}

	if len(flips) == 0 {
		fmt.Println(cli.FormatInfo("No flips recorded yet. Record one with 'gepulse buy'."))
		return nil
	}

	fmt.Println(cli.FormatTitle("Flip Log"))
	fmt.Println(cli.BoldStyle.Render(fmt.Sprintf("%-5s %-26s %9s %10s %10s %13s %9s  %s",
		"ID", "ITEM", "QTY", "BUY", "SELL", "PROFIT", "ROI", "STATUS")))

	for _, flip := range flips {
		fmt.Println(renderFlipRow(flip))
	}

	summary := model.SummarizeFlips(flips)
	if summary.TotalFlips > 0 {
		fmt.Println()
		fmt.Printf("%d sold: %s after %s gp tax, %.0f%% in profit\n",
			summary.TotalFlips, cli.FormatProfit(summary.TotalProfit),
			format.FormatCommas(summary.TotalTax), summary.WinRate)
	}

	return nil
}

// renderFlipRow renders one table line. Cells are padded before they
// are styled so the ANSI codes do not skew the column widths.
func renderFlipRow(flip model.Investment) string {
	sellCell := fmt.Sprintf("%10s", "-")
	profitCell := cli.SubtleStyle.Render(fmt.Sprintf("%13s", "-"))
	roiCell := fmt.Sprintf("%9s", "-")
	statusCell := cli.WarningStyle.Render("open")

	if flip.IsSold() {
		sellCell = fmt.Sprintf("%10s", format.FormatCommas(*flip.SellPrice))
		padded := fmt.Sprintf("%13s", format.FormatGPSigned(flip.Profit())+" gp")
		if flip.Profit() < 0 {
			profitCell = cli.ErrorStyle.Render(padded)
		} else {
			profitCell = cli.SuccessStyle.Render(padded)
		}
		roiCell = fmt.Sprintf("%9s", format.FormatROI(flip.ROI()))
		statusCell = cli.SubtleStyle.Render("sold")
	}

	return fmt.Sprintf("%-5d %-26s %9s %10s %s %s %s  %s",
		flip.ID, flip.ItemName, format.FormatCommas(flip.Quantity),
		format.FormatCommas(flip.PurchasePrice), sellCell, profitCell, roiCell, statusCell)
}
