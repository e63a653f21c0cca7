package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mont266/gepulse/internal/cli"
	"github.com/mont266/gepulse/internal/common"
)

func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <flip-id>",
		Short: "Delete a recorded flip",
		Long: `Delete a flip from the log, for example after a mistyped buy.

Any share log entries for the flip are removed with it. Posts already
published to the feed are not affected.`,
		Args: cobra.ExactArgs(1),
		RunE: runRm,
	}
}

func runRm(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid flip ID %q", args[0])
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStorage(store)

	inv, err := store.GetInvestmentByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("no flip with ID %d", id)
		}
		return fmt.Errorf("failed to look up flip %d: %w", id, err)
	}

	if err := store.DeleteInvestment(ctx, id); err != nil {
		return fmt.Errorf("failed to delete flip %d: %w", id, err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Flip #%d (%s) deleted", id, inv.ItemName)))
	return nil
}
