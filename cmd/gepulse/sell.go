package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/mont266/gepulse/internal/cli"
	"github.com/mont266/gepulse/internal/common"
	"github.com/mont266/gepulse/internal/format"
)

// Grand Exchange tax: 2% of the sale, rounded down, capped per slot.
const (
	geTaxRate = 2
	geTaxCap  = 5_000_000
)

func sellCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sell <flip-id> <price>",
		Short: "Record the sale that completes a flip",
		Long: `Close an open flip by recording its sale. The price is per unit, in
gp. Flip IDs come from 'gepulse flips'.

Tax defaults to zero; pass the exact amount with --tax, or let
--ge-tax compute the standard 2% exchange tax for you.

Examples:
  gepulse sell 14 225
  gepulse sell 14 225 --tax 45000
  gepulse sell 14 225 --ge-tax`,
		Args: cobra.ExactArgs(2),
		RunE: runSell,
	}

	// Flags
	cmd.Flags().Int64("tax", 0, "Total GE tax paid on the sale, in gp")
	cmd.Flags().Bool("ge-tax", false, "Compute the standard 2% GE tax automatically")

	return cmd
}

func runSell(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid flip ID %q", args[0])
	}

	price, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || price < 0 {
		return fmt.Errorf("invalid price %q: expected a non-negative integer", args[1])
	}

	tax, _ := cmd.Flags().GetInt64("tax")
	autoTax, _ := cmd.Flags().GetBool("ge-tax")
	if tax < 0 {
		return fmt.Errorf("tax cannot be negative")
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer closeStorage(store)

	inv, err := store.GetInvestmentByID(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("no flip with ID %d", id)
	}
	if err != nil {
		return fmt.Errorf("failed to load flip %d: %w", id, err)
	}
	if inv.IsSold() {
		return fmt.Errorf("flip #%d (%s) is already sold", id, inv.ItemName)
	}

	if autoTax {
		tax = geTax(price * inv.Quantity)
	}

	if err := store.RecordSale(ctx, id, price, tax, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to record sale: %w", err)
	}

	sold, err := store.GetInvestmentByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to reload flip %d: %w", id, err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Flip #%d closed: %s x%s sold at %s gp each",
		sold.ID, sold.ItemName, format.FormatCommas(sold.Quantity), format.FormatCommas(price))))
	fmt.Printf("  Profit: %s (%s)\n", cli.FormatProfit(sold.Profit()), format.FormatROI(sold.ROI()))
	if tax > 0 {
		fmt.Printf("  Tax:    %s gp\n", format.FormatCommas(tax))
	}

	return nil
}

func geTax(total int64) int64 {
	tax := total * geTaxRate / 100
	if tax > geTaxCap {
		return geTaxCap
	}
	return tax
}
