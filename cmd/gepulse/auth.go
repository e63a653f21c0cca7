package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mont266/gepulse/internal/sheets"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with external services",
		Long:  `Authenticate with the external services gepulse can talk to.`,
	}

	cmd.AddCommand(authSheetsCmd())

	return cmd
}

func authSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Authorize Google Sheets access for the exporter",
		Long: `Authorize gepulse to write your flip log to Google Sheets.

This command will:
1. Open your browser to authorize with Google
2. Save the refresh token for future use
3. Update your config file with the token

You'll need to run this once before 'gepulse export', unless you use a
service account instead.`,
		RunE: runAuthSheets,
	}

	// Flags
	cmd.Flags().String("client-id", "", "OAuth2 Client ID (overrides config)")
	cmd.Flags().String("client-secret", "", "OAuth2 Client Secret (overrides config)")

	return cmd
}

func runAuthSheets(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	clientID := viper.GetString("sheets.client_id")
	clientSecret := viper.GetString("sheets.client_secret")

	// Override with flags if provided
	if flagID, _ := cmd.Flags().GetString("client-id"); flagID != "" {
		clientID = flagID
	}
	if flagSecret, _ := cmd.Flags().GetString("client-secret"); flagSecret != "" {
		clientSecret = flagSecret
	}

	// Check for environment variables as fallback
	if clientID == "" {
		clientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	if clientSecret == "" {
		clientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}

	if clientID == "" || clientSecret == "" {
		return fmt.Errorf("OAuth2 credentials not found; set sheets.client_id and sheets.client_secret in config or use --client-id and --client-secret flags")
	}

	tokenFile, err := sheetsTokenFile()
	if err != nil {
		return err
	}

	slog.Info("Starting Google Sheets authorization", "token_file", tokenFile)

	token, err := sheets.Authorize(ctx, sheets.OAuthApp{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenFile:    tokenFile,
		OpenBrowser:  openBrowser,
	})
	if err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}

	// Update config file with refresh token
	viper.Set("sheets.refresh_token", token.RefreshToken)

	if err := saveConfig(); err != nil {
		slog.Warn("Failed to update config file with refresh token", "error", err)
		slog.Info("Please add this to your config.yaml manually:")
		slog.Info(fmt.Sprintf("sheets:\n  refresh_token: %q", token.RefreshToken))
	} else {
		slog.Info("Updated config file with refresh token")
	}

	slog.Info("📊 Google Sheets is now configured")
	slog.Info("Run 'gepulse export' to write your flip log")

	return nil
}

// sheetsTokenFile returns where the sheets OAuth token is cached,
// honoring XDG_CONFIG_HOME.
func sheetsTokenFile() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "gepulse", "sheets-token.json"), nil
}

func saveConfig() error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		configFile = filepath.Join(home, ".config", "gepulse", "config.yaml")
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(configFile), 0750); err != nil {
		return err
	}

	return viper.WriteConfigAs(configFile)
}

// openBrowser tries to open the URL in the default browser.
func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "linux":
		err = exec.Command("xdg-open", url).Start() //nolint:gosec
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start() //nolint:gosec
	case "darwin":
		err = exec.Command("open", url).Start() //nolint:gosec
	}
	if err != nil {
		slog.Debug("Failed to open browser", "error", err)
	}
}
