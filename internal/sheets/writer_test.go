package sheets

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/mont266/gepulse/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		errMsg  string
		config  Config
		wantErr bool
	}{
		{
			name: "valid oauth config",
			config: Config{
				ClientID:      "test-client",
				ClientSecret:  "test-secret",
				RefreshToken:  "test-token",
				BatchSize:     100,
				RetryAttempts: 3,
				RetryDelay:    time.Second,
			},
			wantErr: false,
		},
		{
			name: "valid service account config",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          100,
				RetryAttempts:      3,
				RetryDelay:         time.Second,
			},
			wantErr: false,
		},
		{
			name: "missing auth",
			config: Config{
				BatchSize:     100,
				RetryAttempts: 3,
				RetryDelay:    time.Second,
			},
			wantErr: true,
			errMsg:  "no authentication method configured",
		},
		{
			name: "multiple auth methods",
			config: Config{
				ClientID:           "test-client",
				ClientSecret:       "test-secret",
				RefreshToken:       "test-token",
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          100,
				RetryAttempts:      3,
				RetryDelay:         time.Second,
			},
			wantErr: true,
			errMsg:  "multiple authentication methods configured",
		},
		{
			name: "invalid batch size",
			config: Config{
				ClientID:      "test-client",
				ClientSecret:  "test-secret",
				RefreshToken:  "test-token",
				BatchSize:     0,
				RetryAttempts: 3,
				RetryDelay:    time.Second,
			},
			wantErr: true,
			errMsg:  "batch size must be positive",
		},
		{
			name: "negative retry attempts",
			config: Config{
				ClientID:      "test-client",
				ClientSecret:  "test-secret",
				RefreshToken:  "test-token",
				BatchSize:     100,
				RetryAttempts: -1,
				RetryDelay:    time.Second,
			},
			wantErr: true,
			errMsg:  "retry attempts cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWriter_prepareFlipData(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	writer := &Writer{
		config: DefaultConfig(),
		logger: logger,
	}

	janSold := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	febSold := time.Date(2026, 2, 20, 9, 30, 0, 0, time.UTC)
	janPrice := int64(1500)
	febPrice := int64(220)

	flips := []model.Investment{
		{
			ID:            1,
			ItemID:        560,
			ItemName:      "Death rune",
			Quantity:      10,
			PurchasePrice: 1000,
			SellPrice:     &janPrice,
			TaxPaid:       500,
			Status:        model.StatusSold,
			SoldAt:        &janSold,
		},
		{
			ID:            2,
			ItemID:        536,
			ItemName:      "Dragon bones",
			Quantity:      100,
			PurchasePrice: 200,
			SellPrice:     &febPrice,
			TaxPaid:       0,
			Status:        model.StatusSold,
			SoldAt:        &febSold,
		},
	}

	summary := model.SummarizeFlips(flips)

	values := writer.prepareFlipData(flips, &summary)

	// Verify structure
	assert.Greater(t, len(values), 10, "should have header, summary, and flip rows")

	// Check header
	assert.Equal(t, "GE Pulse Flip Log", values[0][0])
	assert.Contains(t, values[0][1], "exported")

	// Check summary section
	summaryStart := -1
	for i, row := range values {
		if len(row) > 0 && row[0] == "Summary" {
			summaryStart = i
			break
		}
	}
	require.NotEqual(t, -1, summaryStart, "should have summary section")
	assert.Equal(t, []any{"Total Flips", 2}, values[summaryStart+1])
	assert.Equal(t, []any{"Total Profit", int64(6500)}, values[summaryStart+2])
	assert.Equal(t, []any{"Win Rate", "100.00%"}, values[summaryStart+4])

	// Check flip details
	detailsStart := -1
	for i, row := range values {
		if len(row) > 0 && row[0] == "Flip Details" {
			detailsStart = i
			break
		}
	}
	require.NotEqual(t, -1, detailsStart, "should have flip details")
	assert.Equal(t, "Date Sold", values[detailsStart+1][0])
	assert.Equal(t, "ROI", values[detailsStart+1][7])

	// Verify flip data (should be sorted by sale date, newest first)
	flipRow := values[detailsStart+2]             // First flip after header
	assert.Equal(t, "2026-02-20", flipRow[0])     // Date sold
	assert.Equal(t, "Dragon bones", flipRow[1])   // Item
	assert.Equal(t, int64(100), flipRow[2])       // Quantity
	assert.Equal(t, int64(200), flipRow[3])       // Buy price
	assert.Equal(t, int64(220), flipRow[4])       // Sell price
	assert.Equal(t, int64(2000), flipRow[6])      // Profit
	assert.Equal(t, "10.00%", flipRow[7])         // ROI
	assert.Equal(t, "2026-01-15", values[detailsStart+3][0])
}

func TestWriter_prepareFlipData_OpenFlip(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	writer := &Writer{
		config: DefaultConfig(),
		logger: logger,
	}

	flips := []model.Investment{
		{
			ID:            1,
			ItemID:        4151,
			ItemName:      "Abyssal whip",
			Quantity:      1,
			PurchasePrice: 1500000,
			Status:        model.StatusOpen,
			PurchasedAt:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	summary := model.SummarizeFlips(flips)

	values := writer.prepareFlipData(flips, &summary)

	// The open flip still gets a row, with no sale date or sell price.
	last := values[len(values)-1]
	assert.Equal(t, "", last[0])
	assert.Equal(t, "Abyssal whip", last[1])
	assert.Equal(t, int64(0), last[4])
	assert.Equal(t, int64(-1500000), last[6])
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.True(t, config.EnableFormatting)
	assert.Equal(t, "GE Pulse Flip Log", config.SpreadsheetName)
	assert.Equal(t, "UTC", config.TimeZone)
	assert.Equal(t, 1000, config.BatchSize)
	assert.Equal(t, 3, config.RetryAttempts)
	assert.Equal(t, time.Second, config.RetryDelay)
}
