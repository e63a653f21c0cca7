package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mont266/gepulse/internal/common"
	"github.com/mont266/gepulse/internal/model"
	"github.com/mont266/gepulse/internal/service"
)

// CreateInvestment records a new purchase and returns it with its
// assigned ID. Status defaults to open when unset.
func (s *SQLiteStorage) CreateInvestment(ctx context.Context, inv *model.Investment) (*model.Investment, error) {
	// Validate inputs
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateInvestment(inv); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	created, err := s.createInvestmentTx(ctx, tx, inv)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return created, nil
}

func (s *SQLiteStorage) createInvestmentTx(ctx context.Context, tx *sql.Tx, inv *model.Investment) (*model.Investment, error) {
	status := inv.Status
	if status == "" {
		status = model.StatusOpen
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO investments (
			item_id, item_name, quantity, purchase_price,
			sell_price, tax_paid, status, purchased_at, sold_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		inv.ItemID,
		inv.ItemName,
		inv.Quantity,
		inv.PurchasePrice,
		inv.SellPrice,
		inv.TaxPaid,
		string(status),
		inv.PurchasedAt,
		inv.SoldAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create investment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get investment id: %w", err)
	}

	created := *inv
	created.ID = id
	created.Status = status
	return &created, nil
}

// GetInvestmentByID looks up a single investment.
func (s *SQLiteStorage) GetInvestmentByID(ctx context.Context, id int64) (*model.Investment, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}
	return s.getInvestmentByIDTx(ctx, s.db, id)
}

func (s *SQLiteStorage) getInvestmentByIDTx(ctx context.Context, q queryable, id int64) (*model.Investment, error) {
	row := q.QueryRowContext(ctx, `
		SELECT id, item_id, item_name, quantity, purchase_price,
		       sell_price, tax_paid, status, purchased_at, sold_at
		FROM investments
		WHERE id = ?
	`, id)

	inv, err := scanInvestment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("investment %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get investment: %w", err)
	}
	return inv, nil
}

// GetInvestments returns investments matching the filter, most recent
// purchase first.
func (s *SQLiteStorage) GetInvestments(ctx context.Context, filter service.InvestmentFilter) ([]model.Investment, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.getInvestmentsTx(ctx, s.db, filter)
}

func (s *SQLiteStorage) getInvestmentsTx(ctx context.Context, q queryable, filter service.InvestmentFilter) ([]model.Investment, error) {
	query := strings.Builder{}
	query.WriteString(`
		SELECT id, item_id, item_name, quantity, purchase_price,
		       sell_price, tax_paid, status, purchased_at, sold_at
		FROM investments
	`)

	var conditions []string
	var args []any
	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, string(*filter.Status))
	}
	if filter.ItemID != nil {
		conditions = append(conditions, "item_id = ?")
		args = append(args, *filter.ItemID)
	}
	if len(conditions) > 0 {
		query.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}

	query.WriteString(" ORDER BY purchased_at DESC, id DESC")
	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query.WriteString(" OFFSET ?")
			args = append(args, filter.Offset)
		}
	}

	rows, err := q.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query investments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var investments []model.Investment
	for rows.Next() {
		inv, scanErr := scanInvestment(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan investment: %w", scanErr)
		}
		investments = append(investments, *inv)
	}

	return investments, rows.Err()
}

// RecordSale marks an open investment as sold. Selling an already sold
// investment is rejected so flips cannot be double-counted.
func (s *SQLiteStorage) RecordSale(ctx context.Context, id int64, sellPrice, taxPaid int64, soldAt time.Time) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}
	if err := validateSale(sellPrice, taxPaid, soldAt); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.recordSaleTx(ctx, tx, id, sellPrice, taxPaid, soldAt); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStorage) recordSaleTx(ctx context.Context, tx *sql.Tx, id int64, sellPrice, taxPaid int64, soldAt time.Time) error {
	inv, err := s.getInvestmentByIDTx(ctx, tx, id)
	if err != nil {
		return err
	}
	if inv.Status == model.StatusSold {
		return fmt.Errorf("investment %d: %w", id, common.ErrAlreadySold)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE investments
		SET sell_price = ?, tax_paid = ?, status = ?, sold_at = ?
		WHERE id = ?
	`, sellPrice, taxPaid, string(model.StatusSold), soldAt, id)
	if err != nil {
		return fmt.Errorf("failed to record sale: %w", err)
	}

	return nil
}

// DeleteInvestment removes an investment and its share log entries.
func (s *SQLiteStorage) DeleteInvestment(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.deleteInvestmentTx(ctx, tx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStorage) deleteInvestmentTx(ctx context.Context, tx *sql.Tx, id int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM shares WHERE investment_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete share records: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM investments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete investment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("investment %d: %w", id, common.ErrNotFound)
	}

	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvestment(row rowScanner) (*model.Investment, error) {
	var inv model.Investment
	var sellPrice sql.NullInt64
	var status string
	var soldAt sql.NullTime

	err := row.Scan(
		&inv.ID,
		&inv.ItemID,
		&inv.ItemName,
		&inv.Quantity,
		&inv.PurchasePrice,
		&sellPrice,
		&inv.TaxPaid,
		&status,
		&inv.PurchasedAt,
		&soldAt,
	)
	if err != nil {
		return nil, err
	}

	inv.Status = model.InvestmentStatus(status)
	if sellPrice.Valid {
		inv.SellPrice = &sellPrice.Int64
	}
	if soldAt.Valid {
		inv.SoldAt = &soldAt.Time
	}
	return &inv, nil
}

// queryable is an interface satisfied by both *sql.DB and *sql.Tx.
type queryable interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
