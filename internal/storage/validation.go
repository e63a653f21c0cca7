// Package storage provides the data persistence layer for the gepulse application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mont266/gepulse/internal/model"
)

// Validation errors.
var (
	ErrNilContext        = errors.New("context cannot be nil")
	ErrEmptyString       = errors.New("string parameter cannot be empty")
	ErrNilParameter      = errors.New("parameter cannot be nil")
	ErrEmptySlice        = errors.New("slice cannot be empty")
	ErrInvalidID         = errors.New("id must be positive")
	ErrInvalidItem       = errors.New("invalid item")
	ErrInvalidInvestment = errors.New("invalid investment")
	ErrInvalidShare      = errors.New("invalid share record")
	ErrInvalidSale       = errors.New("invalid sale")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateID ensures a database identifier is positive.
func validateID(id int64, paramName string) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidID, paramName)
	}
	return nil
}

// validateItems validates a slice of catalog items.
func validateItems(items []model.Item) error {
	if items == nil {
		return fmt.Errorf("%w: items", ErrNilParameter)
	}
	if len(items) == 0 {
		return fmt.Errorf("%w: items", ErrEmptySlice)
	}

	for i, item := range items {
		if err := validateItem(&item); err != nil {
			return fmt.Errorf("item at index %d: %w", i, err)
		}
	}
	return nil
}

// validateItem validates a single catalog item.
func validateItem(item *model.Item) error {
	if item == nil {
		return fmt.Errorf("%w: item", ErrNilParameter)
	}
	if item.ID <= 0 {
		return fmt.Errorf("%w: missing ID", ErrInvalidItem)
	}
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidItem)
	}
	return nil
}

// validateInvestment validates an investment before it is persisted.
func validateInvestment(inv *model.Investment) error {
	if inv == nil {
		return fmt.Errorf("%w: investment", ErrNilParameter)
	}
	if inv.ItemID <= 0 {
		return fmt.Errorf("%w: missing item ID", ErrInvalidInvestment)
	}
	if strings.TrimSpace(inv.ItemName) == "" {
		return fmt.Errorf("%w: missing item name", ErrInvalidInvestment)
	}
	if inv.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidInvestment)
	}
	if inv.PurchasePrice < 0 {
		return fmt.Errorf("%w: purchase price cannot be negative", ErrInvalidInvestment)
	}
	if inv.TaxPaid < 0 {
		return fmt.Errorf("%w: tax cannot be negative", ErrInvalidInvestment)
	}
	if inv.PurchasedAt.IsZero() {
		return fmt.Errorf("%w: missing purchase date", ErrInvalidInvestment)
	}

	switch inv.Status {
	case model.StatusOpen, model.StatusSold:
		// Valid status
	case "":
		// Defaulted to open on insert
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInvestment, inv.Status)
	}

	if inv.Status == model.StatusSold && inv.SellPrice == nil {
		return fmt.Errorf("%w: sold investment missing sell price", ErrInvalidInvestment)
	}
	return nil
}

// validateSale validates the inputs for recording a sale.
func validateSale(sellPrice, taxPaid int64, soldAt time.Time) error {
	if sellPrice < 0 {
		return fmt.Errorf("%w: sell price cannot be negative", ErrInvalidSale)
	}
	if taxPaid < 0 {
		return fmt.Errorf("%w: tax cannot be negative", ErrInvalidSale)
	}
	if soldAt.IsZero() {
		return fmt.Errorf("%w: missing sale date", ErrInvalidSale)
	}
	return nil
}

// validateShare validates a share log entry.
func validateShare(share *model.ShareRecord) error {
	if share == nil {
		return fmt.Errorf("%w: share", ErrNilParameter)
	}
	if share.InvestmentID <= 0 {
		return fmt.Errorf("%w: missing investment ID", ErrInvalidShare)
	}
	if strings.TrimSpace(share.PostID) == "" {
		return fmt.Errorf("%w: missing post ID", ErrInvalidShare)
	}
	return nil
}
