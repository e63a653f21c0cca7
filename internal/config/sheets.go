package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/mont266/gepulse/internal/sheets"
)

// LoadSheetsConfig loads Google Sheets configuration from Viper and
// environment variables. It follows this precedence:
// 1. Viper configuration (from config file or GEPULSE_ env vars)
// 2. Direct environment variables (GOOGLE_SHEETS_*)
// 3. Default values
func LoadSheetsConfig() (*sheets.Config, error) {
	config := sheets.DefaultConfig()

	if v := stringSetting("sheets.service_account_path", "GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH"); v != "" {
		config.ServiceAccountPath = ExpandPath(v)
	}
	if v := stringSetting("sheets.client_id", "GOOGLE_SHEETS_CLIENT_ID"); v != "" {
		config.ClientID = v
	}
	if v := stringSetting("sheets.client_secret", "GOOGLE_SHEETS_CLIENT_SECRET"); v != "" {
		config.ClientSecret = v
	}
	if v := stringSetting("sheets.refresh_token", "GOOGLE_SHEETS_REFRESH_TOKEN"); v != "" {
		config.RefreshToken = v
	}
	if v := stringSetting("sheets.spreadsheet_id", "GOOGLE_SHEETS_SPREADSHEET_ID"); v != "" {
		config.SpreadsheetID = v
	}
	if v := stringSetting("sheets.spreadsheet_name", "GOOGLE_SHEETS_SPREADSHEET_NAME"); v != "" {
		config.SpreadsheetName = v
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// stringSetting returns the Viper value for key, falling back to the
// given environment variable when the config file does not set it.
func stringSetting(key, envVar string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return os.Getenv(envVar)
}
