// Package testutil provides shared test helpers for the gepulse project.
// It offers isolated in-memory databases pre-seeded with catalog fixtures.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/mont266/gepulse/internal/model"
	"github.com/mont266/gepulse/internal/service"
	"github.com/mont266/gepulse/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
	Items   []model.Item
}

// DefaultItems returns a small slice of well-known catalog items used
// as fixtures across tests.
func DefaultItems() []model.Item {
	return []model.Item{
		{ID: 560, Name: "Death rune", Examine: "Used for low level missile spells.", BuyLimit: 18000},
		{ID: 536, Name: "Dragon bones", Examine: "Ouch!", BuyLimit: 7500},
		{ID: 11840, Name: "Dragon boots", Examine: "A pair of dragon boots.", BuyLimit: 70, Members: true},
		{ID: 4151, Name: "Abyssal whip", Examine: "A weapon from the abyss.", BuyLimit: 70, Members: true},
	}
}

// SetupTestDB creates a new in-memory test database seeded with the
// default item fixtures. It automatically handles migrations and cleanup.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	return SetupTestDBWithItems(t, DefaultItems())
}

// SetupTestDBWithItems creates a new in-memory test database seeded
// with the given catalog items. Pass nil to skip seeding.
func SetupTestDBWithItems(t *testing.T, items []model.Item) *TestDB {
	t.Helper()

	// Create in-memory SQLite storage
	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	// Run migrations
	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Seed items if provided
	if len(items) > 0 {
		if err := store.SaveItems(ctx, items); err != nil {
			t.Fatalf("failed to seed items: %v", err)
		}
	}

	// Register cleanup
	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage: store,
		Items:   items,
		t:       t,
	}
}

// MustGetItem returns the seeded item with the given name or fails the test.
func (db *TestDB) MustGetItem(name string) model.Item {
	db.t.Helper()
	for _, item := range db.Items {
		if item.Name == name {
			return item
		}
	}
	db.t.Fatalf("item %q not seeded in test database", name)
	return model.Item{}
}

// MustCreateInvestment stores an investment or fails the test.
func (db *TestDB) MustCreateInvestment(inv model.Investment) model.Investment {
	db.t.Helper()
	created, err := db.Storage.CreateInvestment(context.Background(), &inv)
	if err != nil {
		db.t.Fatalf("failed to create investment: %v", err)
	}
	return *created
}

// WithTransaction executes the given function within a database transaction.
// The transaction is automatically rolled back after the function completes.
func (db *TestDB) WithTransaction(fn func(tx service.Transaction) error) error {
	ctx := context.Background()
	tx, err := db.Storage.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}

	return nil
}
