package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func soldInvestment(quantity, purchasePrice, sellPrice, taxPaid int64) Investment {
	sell := sellPrice
	soldAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return Investment{
		ID:            1,
		ItemID:        560,
		ItemName:      "Death rune",
		Quantity:      quantity,
		PurchasePrice: purchasePrice,
		SellPrice:     &sell,
		TaxPaid:       taxPaid,
		Status:        StatusSold,
		PurchasedAt:   soldAt.Add(-24 * time.Hour),
		SoldAt:        &soldAt,
	}
}

func TestInvestment_Profit(t *testing.T) {
	tests := []struct {
		name string
		inv  Investment
		want int64
	}{
		{
			name: "profitable flip with tax",
			inv:  soldInvestment(10, 1000, 1500, 500),
			want: 4500,
		},
		{
			name: "no tax defaults to zero",
			inv:  soldInvestment(10, 1000, 1500, 0),
			want: 5000,
		},
		{
			name: "loss when sold below cost",
			inv:  soldInvestment(5, 2000, 1800, 0),
			want: -1000,
		},
		{
			name: "tax can push a flip negative",
			inv:  soldInvestment(1, 100, 101, 2),
			want: -1,
		},
		{
			name: "unsold investment counts full cost as loss",
			inv: Investment{
				Quantity:      10,
				PurchasePrice: 1000,
				Status:        StatusOpen,
			},
			want: -10000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.inv.Profit(); got != tt.want {
				t.Errorf("Profit() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestInvestment_ROI(t *testing.T) {
	tests := []struct {
		name string
		inv  Investment
		want float64
	}{
		{
			name: "profitable flip with tax",
			inv:  soldInvestment(10, 1000, 1500, 500),
			want: 45.0,
		},
		{
			name: "zero purchase price yields zero not infinity",
			inv:  soldInvestment(10, 0, 1500, 0),
			want: 0,
		},
		{
			name: "zero quantity yields zero",
			inv:  soldInvestment(0, 1000, 1500, 0),
			want: 0,
		},
		{
			name: "loss is a negative percentage",
			inv:  soldInvestment(10, 1000, 900, 0),
			want: -10.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.inv.ROI(); got != tt.want {
				t.Errorf("ROI() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewFlipData(t *testing.T) {
	inv := soldInvestment(10, 1000, 1500, 500)
	item := Item{ID: 560, Name: "Death rune", BuyLimit: 18000}

	got := NewFlipData(inv, item)

	want := FlipData{
		ItemID:        560,
		ItemName:      "Death rune",
		Quantity:      10,
		PurchasePrice: 1000,
		SellPrice:     1500,
		Profit:        4500,
		ROI:           45.0,
	}
	if got != want {
		t.Errorf("NewFlipData() = %+v, want %+v", got, want)
	}
}

func TestNewFlipData_ReflectsInvestmentChanges(t *testing.T) {
	inv := soldInvestment(10, 1000, 1500, 500)
	item := Item{ID: 560, Name: "Death rune"}

	before := NewFlipData(inv, item)
	*inv.SellPrice = 2000
	after := NewFlipData(inv, item)

	if before.Profit != 4500 {
		t.Errorf("initial Profit = %d, want 4500", before.Profit)
	}
	if after.Profit != 9500 {
		t.Errorf("recomputed Profit = %d, want 9500", after.Profit)
	}
}

func TestNewSharePayload_Trimming(t *testing.T) {
	data := FlipData{ItemID: 560, ItemName: "Death rune"}

	tests := []struct {
		wantTitle   *string
		wantContent *string
		name        string
		title       string
		content     string
	}{
		{
			name:        "whitespace only collapses to nil",
			title:       "  ",
			content:     "  ",
			wantTitle:   nil,
			wantContent: nil,
		},
		{
			name:        "surrounding whitespace is trimmed",
			title:       "  Big flip  ",
			content:     "\tJust flipped!\n",
			wantTitle:   strPtr("Big flip"),
			wantContent: strPtr("Just flipped!"),
		},
		{
			name:        "empty strings collapse to nil",
			title:       "",
			content:     "",
			wantTitle:   nil,
			wantContent: nil,
		},
		{
			name:        "one field set leaves the other nil",
			title:       "Big flip",
			content:     "   ",
			wantTitle:   strPtr("Big flip"),
			wantContent: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewSharePayload(tt.title, tt.content, data)
			if !strPtrEqual(got.Title, tt.wantTitle) {
				t.Errorf("Title = %v, want %v", strPtrString(got.Title), strPtrString(tt.wantTitle))
			}
			if !strPtrEqual(got.Content, tt.wantContent) {
				t.Errorf("Content = %v, want %v", strPtrString(got.Content), strPtrString(tt.wantContent))
			}
			if got.FlipData != data {
				t.Errorf("FlipData = %+v, want %+v", got.FlipData, data)
			}
		})
	}
}

func TestSharePayload_JSONNulls(t *testing.T) {
	payload := NewSharePayload("  ", "", FlipData{
		ItemID:        560,
		ItemName:      "Death rune",
		Quantity:      10,
		PurchasePrice: 1000,
		SellPrice:     1500,
		Profit:        4500,
		ROI:           45.0,
	})

	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	body := string(raw)
	for _, want := range []string{`"title":null`, `"content":null`, `"item_id":560`, `"purchase_price":1000`, `"roi":45`} {
		if !strings.Contains(body, want) {
			t.Errorf("Marshal() = %s, missing %s", body, want)
		}
	}
}

func TestSummarizeFlips(t *testing.T) {
	winner := soldInvestment(10, 1000, 1500, 500)
	loser := soldInvestment(5, 2000, 1800, 0)
	loser.ItemName = "Dragon bones"
	open := Investment{Quantity: 100, PurchasePrice: 50, Status: StatusOpen}

	summary := SummarizeFlips([]Investment{winner, loser, open})

	if summary.TotalFlips != 2 {
		t.Errorf("TotalFlips = %d, want 2", summary.TotalFlips)
	}
	if summary.TotalProfit != 3500 {
		t.Errorf("TotalProfit = %d, want 3500", summary.TotalProfit)
	}
	if summary.TotalTax != 500 {
		t.Errorf("TotalTax = %d, want 500", summary.TotalTax)
	}
	if summary.WinRate != 50.0 {
		t.Errorf("WinRate = %v, want 50.0", summary.WinRate)
	}
	if summary.BestItemName != "Death rune" || summary.BestProfit != 4500 {
		t.Errorf("Best = %s/%d, want Death rune/4500", summary.BestItemName, summary.BestProfit)
	}
}

func TestSummarizeFlips_Empty(t *testing.T) {
	summary := SummarizeFlips(nil)
	if summary.TotalFlips != 0 || summary.WinRate != 0 {
		t.Errorf("SummarizeFlips(nil) = %+v, want zero value", summary)
	}
}

func strPtr(s string) *string { return &s }

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func strPtrString(p *string) string {
	if p == nil {
		return "<nil>"
	}
	return *p
}
