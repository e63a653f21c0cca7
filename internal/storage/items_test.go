package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/mont266/gepulse/internal/common"
	"github.com/mont266/gepulse/internal/model"
)

func TestSQLiteStorage_SaveItems(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	items := createTestItems()

	if err := store.SaveItems(ctx, items); err != nil {
		t.Fatalf("SaveItems() error = %v", err)
	}

	count, err := store.CountItems(ctx)
	if err != nil {
		t.Fatalf("CountItems() error = %v", err)
	}
	if count != int64(len(items)) {
		t.Errorf("CountItems() = %d, want %d", count, len(items))
	}

	t.Run("resync updates in place", func(t *testing.T) {
		items[0].BuyLimit = 25000
		items[0].Examine = "Updated examine text."
		if err := store.SaveItems(ctx, items); err != nil {
			t.Fatalf("SaveItems() resync error = %v", err)
		}

		count, err := store.CountItems(ctx)
		if err != nil {
			t.Fatalf("CountItems() error = %v", err)
		}
		if count != int64(len(items)) {
			t.Errorf("CountItems() after resync = %d, want %d", count, len(items))
		}

		got, err := store.GetItemByID(ctx, items[0].ID)
		if err != nil {
			t.Fatalf("GetItemByID() error = %v", err)
		}
		if got.BuyLimit != 25000 {
			t.Errorf("BuyLimit = %d, want 25000", got.BuyLimit)
		}
	})

	t.Run("empty slice is rejected", func(t *testing.T) {
		if err := store.SaveItems(ctx, []model.Item{}); !errors.Is(err, ErrEmptySlice) {
			t.Errorf("SaveItems() error = %v, want %v", err, ErrEmptySlice)
		}
	})

	t.Run("item without a name is rejected", func(t *testing.T) {
		bad := []model.Item{{ID: 1, Name: "  "}}
		if err := store.SaveItems(ctx, bad); !errors.Is(err, ErrInvalidItem) {
			t.Errorf("SaveItems() error = %v, want %v", err, ErrInvalidItem)
		}
	})
}

func TestSQLiteStorage_GetItemByID(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	if err := store.SaveItems(ctx, createTestItems()); err != nil {
		t.Fatalf("SaveItems() error = %v", err)
	}

	got, err := store.GetItemByID(ctx, 4151)
	if err != nil {
		t.Fatalf("GetItemByID() error = %v", err)
	}
	if got.Name != "Abyssal whip" || !got.Members {
		t.Errorf("GetItemByID() = %+v, want Abyssal whip (members)", got)
	}

	t.Run("unknown item", func(t *testing.T) {
		_, err := store.GetItemByID(ctx, 99999)
		if !errors.Is(err, common.ErrNotFound) {
			t.Errorf("GetItemByID() error = %v, want %v", err, common.ErrNotFound)
		}
	})
}

func TestSQLiteStorage_SearchItems(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	if err := store.SaveItems(ctx, createTestItems()); err != nil {
		t.Fatalf("SaveItems() error = %v", err)
	}

	tests := []struct {
		name      string
		query     string
		wantNames []string
		limit     int
	}{
		{
			name:      "case insensitive substring",
			query:     "dragon",
			wantNames: []string{"Dragon bones"},
		},
		{
			name:      "matches mid-word",
			query:     "rune",
			wantNames: []string{"Death rune"},
		},
		{
			name:      "limit caps results",
			query:     "a",
			limit:     1,
			wantNames: []string{"Abyssal whip"},
		},
		{
			name:      "no matches",
			query:     "partyhat",
			wantNames: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.SearchItems(ctx, tt.query, tt.limit)
			if err != nil {
				t.Fatalf("SearchItems() error = %v", err)
			}
			if len(got) != len(tt.wantNames) {
				t.Fatalf("SearchItems() returned %d items, want %d", len(got), len(tt.wantNames))
			}
			for i, want := range tt.wantNames {
				if got[i].Name != want {
					t.Errorf("SearchItems()[%d] = %s, want %s", i, got[i].Name, want)
				}
			}
		})
	}

	t.Run("blank query is rejected", func(t *testing.T) {
		_, err := store.SearchItems(ctx, "   ", 10)
		if !errors.Is(err, ErrEmptyString) {
			t.Errorf("SearchItems() error = %v, want %v", err, ErrEmptyString)
		}
	})
}
