// Package feed publishes completed flips to the GE Pulse social feed.
package feed

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

// DefaultBaseURL is the production feed API endpoint.
const DefaultBaseURL = "https://feed.gepulse.app"

// Config holds the configuration for the feed client.
type Config struct {
	BaseURL       string
	APIToken      string
	Timeout       time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:       DefaultBaseURL,
		Timeout:       30 * time.Second,
		RetryAttempts: 3,
		RetryDelay:    time.Second,
	}
}

// LoadFromEnv loads the configuration from environment variables.
func (c *Config) LoadFromEnv() error {
	if baseURL := os.Getenv("GEPULSE_FEED_URL"); baseURL != "" {
		c.BaseURL = baseURL
	}
	if token := os.Getenv("GEPULSE_FEED_TOKEN"); token != "" {
		c.APIToken = token
	}

	if c.APIToken == "" {
		return fmt.Errorf("missing feed authentication: set GEPULSE_FEED_TOKEN or feed.token in the config file")
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("feed base URL is required")
	}
	parsed, err := url.Parse(c.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("feed base URL %q is not a valid URL", c.BaseURL)
	}

	if c.APIToken == "" {
		return fmt.Errorf("feed API token is required")
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}

	if c.RetryAttempts < 0 {
		return fmt.Errorf("retry attempts cannot be negative")
	}

	if c.RetryDelay < 0 {
		return fmt.Errorf("retry delay cannot be negative")
	}

	return nil
}
