package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mont266/gepulse/internal/common"
	"github.com/mont266/gepulse/internal/model"
)

// SaveItems upserts catalog items fetched from the mapping API. Existing
// rows are refreshed in place so repeated syncs stay idempotent.
func (s *SQLiteStorage) SaveItems(ctx context.Context, items []model.Item) error {
	// Validate inputs
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateItems(items); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.saveItemsTx(ctx, tx, items); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStorage) saveItemsTx(ctx context.Context, tx *sql.Tx, items []model.Item) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO items (id, name, examine, icon, buy_limit, high_alch, members, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			examine = excluded.examine,
			icon = excluded.icon,
			buy_limit = excluded.buy_limit,
			high_alch = excluded.high_alch,
			members = excluded.members,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, item := range items {
		_, err = stmt.ExecContext(ctx,
			item.ID,
			item.Name,
			item.Examine,
			item.Icon,
			item.BuyLimit,
			item.HighAlch,
			item.Members,
		)
		if err != nil {
			return fmt.Errorf("failed to save item %d: %w", item.ID, err)
		}
	}

	return nil
}

// GetItemByID looks up a single catalog item.
func (s *SQLiteStorage) GetItemByID(ctx context.Context, id int64) (*model.Item, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}
	return s.getItemByIDTx(ctx, s.db, id)
}

func (s *SQLiteStorage) getItemByIDTx(ctx context.Context, q queryable, id int64) (*model.Item, error) {
	var item model.Item

	err := q.QueryRowContext(ctx, `
		SELECT id, name, examine, icon, buy_limit, high_alch, members
		FROM items
		WHERE id = ?
	`, id).Scan(
		&item.ID,
		&item.Name,
		&item.Examine,
		&item.Icon,
		&item.BuyLimit,
		&item.HighAlch,
		&item.Members,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return &item, nil
}

// SearchItems finds catalog items whose name contains the query,
// case-insensitively, ordered by name.
func (s *SQLiteStorage) SearchItems(ctx context.Context, query string, limit int) ([]model.Item, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(query, "query"); err != nil {
		return nil, err
	}
	return s.searchItemsTx(ctx, s.db, query, limit)
}

func (s *SQLiteStorage) searchItemsTx(ctx context.Context, q queryable, query string, limit int) ([]model.Item, error) {
	if limit <= 0 {
		limit = 25
	}

	rows, err := q.QueryContext(ctx, `
		SELECT id, name, examine, icon, buy_limit, high_alch, members
		FROM items
		WHERE name LIKE '%' || ? || '%' COLLATE NOCASE
		ORDER BY name
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Examine,
			&item.Icon,
			&item.BuyLimit,
			&item.HighAlch,
			&item.Members,
		); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// CountItems returns the number of catalog items currently stored.
func (s *SQLiteStorage) CountItems(ctx context.Context) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	return s.countItemsTx(ctx, s.db)
}

func (s *SQLiteStorage) countItemsTx(ctx context.Context, q queryable) (int64, error) {
	var count int64
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}
