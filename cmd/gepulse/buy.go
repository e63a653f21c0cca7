package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mont266/gepulse/internal/cli"
	"github.com/mont266/gepulse/internal/common"
	"github.com/mont266/gepulse/internal/format"
	"github.com/mont266/gepulse/internal/model"
	"github.com/mont266/gepulse/internal/service"
)

func buyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buy <item> <quantity> <price>",
		Short: "Record a Grand Exchange purchase",
		Long: `Record a new open flip: an item bought on the Grand Exchange that you
intend to sell. Prices are per unit, in gp.

The item is matched against the local catalog, by name or by numeric
ID. Run 'gepulse items sync' first if the catalog is empty.

Examples:
  gepulse buy "Death rune" 10000 210
  gepulse buy 560 10000 210      # Same item, by ID`,
		Args: cobra.ExactArgs(3),
		RunE: runBuy,
	}
}

func runBuy(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	quantity, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || quantity <= 0 {
		return fmt.Errorf("invalid quantity %q: expected a positive integer", args[1])
	}

	price, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil || price < 0 {
		return fmt.Errorf("invalid price %q: expected a non-negative integer", args[2])
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer closeStorage(store)

	item, err := resolveItem(ctx, store, args[0])
	if err != nil {
		return err
	}

	if item.BuyLimit > 0 && quantity > item.BuyLimit {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("%s of %s is over the GE buy limit of %s per 4 hours",
			format.FormatCommas(quantity), item.Name, format.FormatCommas(item.BuyLimit))))
	}

	inv, err := store.CreateInvestment(ctx, &model.Investment{
		ItemID:        item.ID,
		ItemName:      item.Name,
		Quantity:      quantity,
		PurchasePrice: price,
		Status:        model.StatusOpen,
		PurchasedAt:   time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to record purchase: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Flip #%d opened: %s x%s at %s gp each (%s gp total)",
		inv.ID, item.Name, format.FormatCommas(quantity), format.FormatCommas(price),
		format.FormatGP(price*quantity))))

	return nil
}

// resolveItem looks up a catalog item by numeric ID or by name. Name
// lookups must be unambiguous; an exact match wins over a longer list
// of partial matches.
func resolveItem(ctx context.Context, store service.Storage, arg string) (*model.Item, error) {
	if id, parseErr := strconv.ParseInt(arg, 10, 64); parseErr == nil {
		item, err := store.GetItemByID(ctx, id)
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("no item with ID %d; run 'gepulse items sync' to refresh the catalog", id)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to look up item %d: %w", id, err)
		}
		return item, nil
	}

	matches, err := store.SearchItems(ctx, arg, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no item matching %q; run 'gepulse items sync' to refresh the catalog", arg)
	case 1:
		return &matches[0], nil
	}

	for i := range matches {
		if strings.EqualFold(matches[i].Name, arg) {
			return &matches[i], nil
		}
	}

	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = fmt.Sprintf("%s (%d)", m.Name, m.ID)
	}
	return nil, fmt.Errorf("%q matches %d items: %s", arg, len(matches), strings.Join(names, ", "))
}
