package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/mont266/gepulse/internal/feed"
)

// LoadFeedConfig loads feed API configuration from Viper and environment
// variables. It follows this precedence:
// 1. Viper configuration (from config file or GEPULSE_ env vars)
// 2. Direct environment variables (GEPULSE_FEED_*)
// 3. Default values
func LoadFeedConfig() (*feed.Config, error) {
	config := feed.DefaultConfig()

	// Load from Viper first
	if v := viper.GetString("feed.url"); v != "" {
		config.BaseURL = v
	}
	if v := viper.GetString("feed.token"); v != "" {
		config.APIToken = v
	}
	if v := viper.GetDuration("feed.timeout"); v > 0 {
		config.Timeout = v
	}
	if v := viper.GetInt("feed.retry_attempts"); v > 0 {
		config.RetryAttempts = v
	}
	if v := viper.GetDuration("feed.retry_delay"); v > 0 {
		config.RetryDelay = v
	}

	// Override with direct environment variables if not set
	if config.APIToken == "" {
		config.APIToken = os.Getenv("GEPULSE_FEED_TOKEN")
	}
	if v := os.Getenv("GEPULSE_FEED_URL"); v != "" && config.BaseURL == feed.DefaultBaseURL {
		config.BaseURL = v
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// FeedConfigured reports whether enough feed configuration is present
// to build a client. The TUI uses this to decide whether sharing is
// available at all.
func FeedConfigured() bool {
	if viper.GetString("feed.token") != "" {
		return true
	}
	return os.Getenv("GEPULSE_FEED_TOKEN") != ""
}
