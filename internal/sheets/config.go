// Package sheets provides Google Sheets API integration for the flip log export.
package sheets

import (
	"fmt"
	"time"
)

// DefaultSpreadsheetName is used when no spreadsheet name is configured.
const DefaultSpreadsheetName = "GE Pulse Flip Log"

// Config holds the configuration for the Google Sheets writer.
// Exactly one of the OAuth2 triple (ClientID, ClientSecret,
// RefreshToken) or ServiceAccountPath must be set.
type Config struct {
	// OAuth2 credentials, obtained via 'gepulse auth sheets'.
	ClientID     string
	ClientSecret string
	RefreshToken string

	// ServiceAccountPath points at a service account key file and is
	// the alternative to OAuth2.
	ServiceAccountPath string

	// SpreadsheetID selects an existing spreadsheet. When empty a new
	// one named SpreadsheetName is created on first export.
	SpreadsheetID   string
	SpreadsheetName string

	TimeZone         string
	BatchSize        int
	RetryAttempts    int
	RetryDelay       time.Duration
	EnableFormatting bool
}

// DefaultConfig returns a Config with sensible defaults. Game time is
// UTC, so the spreadsheet defaults to it too.
func DefaultConfig() Config {
	return Config{
		SpreadsheetName:  DefaultSpreadsheetName,
		EnableFormatting: true,
		TimeZone:         "UTC",
		BatchSize:        1000,
		RetryAttempts:    3,
		RetryDelay:       time.Second,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	hasOAuth := c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
	hasServiceAccount := c.ServiceAccountPath != ""

	switch {
	case !hasOAuth && !hasServiceAccount:
		return fmt.Errorf("no authentication method configured")
	case hasOAuth && hasServiceAccount:
		return fmt.Errorf("multiple authentication methods configured; use either OAuth2 or service account")
	case c.BatchSize <= 0:
		return fmt.Errorf("batch size must be positive")
	case c.RetryAttempts < 0:
		return fmt.Errorf("retry attempts cannot be negative")
	case c.RetryDelay < 0:
		return fmt.Errorf("retry delay cannot be negative")
	}

	return nil
}
