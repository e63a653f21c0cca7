package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS items (
					id INTEGER PRIMARY KEY,
					name TEXT NOT NULL,
					examine TEXT,
					icon TEXT,
					buy_limit INTEGER DEFAULT 0,
					high_alch INTEGER DEFAULT 0,
					members INTEGER DEFAULT 0,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS investments (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					item_id INTEGER NOT NULL,
					item_name TEXT NOT NULL,
					quantity INTEGER NOT NULL,
					purchase_price INTEGER NOT NULL,
					sell_price INTEGER,
					tax_paid INTEGER NOT NULL DEFAULT 0,
					status TEXT NOT NULL DEFAULT 'open',
					purchased_at DATETIME NOT NULL,
					sold_at DATETIME,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_investments_status ON investments(status)`,
				`CREATE INDEX idx_investments_item ON investments(item_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add shares table for the feed publish log",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS shares (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					investment_id INTEGER NOT NULL,
					post_id TEXT NOT NULL,
					post_url TEXT,
					title TEXT,
					shared_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (investment_id) REFERENCES investments(id)
				)`,
				`CREATE INDEX idx_shares_investment ON shares(investment_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Add indexes for flip history and item search",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE INDEX idx_investments_sold_at ON investments(sold_at)`,
				`CREATE INDEX idx_items_name ON items(name COLLATE NOCASE)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	// Get current version
	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	// Apply migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		// Update version
		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	// Verify we're at the expected schema version
	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
