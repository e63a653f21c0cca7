package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mont266/gepulse/internal/model"
	"github.com/mont266/gepulse/internal/service"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	// Validate input
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite doesn't benefit from multiple connections
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// BeginTx starts a new database transaction.
func (s *SQLiteStorage) BeginTx(ctx context.Context) (service.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	return &sqliteTransaction{
		tx:      tx,
		storage: s,
	}, nil
}

// sqliteTransaction wraps sql.Tx to implement service.Transaction.
type sqliteTransaction struct {
	tx      *sql.Tx
	storage *SQLiteStorage
}

func (t *sqliteTransaction) Commit() error {
	return t.tx.Commit()
}

func (t *sqliteTransaction) Rollback() error {
	return t.tx.Rollback()
}

// Transaction methods delegate to the main storage with the transaction.
func (t *sqliteTransaction) SaveItems(ctx context.Context, items []model.Item) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateItems(items); err != nil {
		return err
	}
	return t.storage.saveItemsTx(ctx, t.tx, items)
}

func (t *sqliteTransaction) GetItemByID(ctx context.Context, id int64) (*model.Item, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}
	return t.storage.getItemByIDTx(ctx, t.tx, id)
}

func (t *sqliteTransaction) SearchItems(ctx context.Context, query string, limit int) ([]model.Item, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(query, "query"); err != nil {
		return nil, err
	}
	return t.storage.searchItemsTx(ctx, t.tx, query, limit)
}

func (t *sqliteTransaction) CountItems(ctx context.Context) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	return t.storage.countItemsTx(ctx, t.tx)
}

func (t *sqliteTransaction) CreateInvestment(ctx context.Context, inv *model.Investment) (*model.Investment, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateInvestment(inv); err != nil {
		return nil, err
	}
	return t.storage.createInvestmentTx(ctx, t.tx, inv)
}

func (t *sqliteTransaction) GetInvestmentByID(ctx context.Context, id int64) (*model.Investment, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}
	return t.storage.getInvestmentByIDTx(ctx, t.tx, id)
}

func (t *sqliteTransaction) GetInvestments(ctx context.Context, filter service.InvestmentFilter) ([]model.Investment, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return t.storage.getInvestmentsTx(ctx, t.tx, filter)
}

func (t *sqliteTransaction) RecordSale(ctx context.Context, id int64, sellPrice, taxPaid int64, soldAt time.Time) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}
	if err := validateSale(sellPrice, taxPaid, soldAt); err != nil {
		return err
	}
	return t.storage.recordSaleTx(ctx, t.tx, id, sellPrice, taxPaid, soldAt)
}

func (t *sqliteTransaction) DeleteInvestment(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}
	return t.storage.deleteInvestmentTx(ctx, t.tx, id)
}

func (t *sqliteTransaction) RecordShare(ctx context.Context, share *model.ShareRecord) (*model.ShareRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateShare(share); err != nil {
		return nil, err
	}
	return t.storage.recordShareTx(ctx, t.tx, share)
}

func (t *sqliteTransaction) GetShares(ctx context.Context, limit int) ([]model.ShareRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return t.storage.getSharesTx(ctx, t.tx, limit)
}

func (t *sqliteTransaction) Migrate(_ context.Context) error {
	// Migrations should not be run within a transaction
	return fmt.Errorf("migrations cannot be run within a transaction")
}

func (t *sqliteTransaction) BeginTx(_ context.Context) (service.Transaction, error) {
	// Nested transactions not supported
	return nil, fmt.Errorf("nested transactions not supported")
}

func (t *sqliteTransaction) Close() error {
	// Transactions should be committed or rolled back, not closed
	return fmt.Errorf("transactions must be committed or rolled back, not closed")
}
