package tui

import (
	"github.com/mont266/gepulse/internal/service"
	"github.com/mont266/gepulse/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme        themes.Theme
	Storage      service.Storage
	Publisher    service.FeedPublisher
	Width        int
	Height       int
	ShowStats    bool
	MouseSupport bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:        themes.Default,
		Width:        80,
		Height:       24,
		ShowStats:    true,
		MouseSupport: true,
	}
}

// WithStorage sets the storage service.
func WithStorage(storage service.Storage) Option {
	return func(c *Config) {
		c.Storage = storage
	}
}

// WithPublisher sets the feed publisher used by the share dialog.
func WithPublisher(publisher service.FeedPublisher) Option {
	return func(c *Config) {
		c.Publisher = publisher
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithStats toggles the stats panel.
func WithStats(enabled bool) Option {
	return func(c *Config) {
		c.ShowStats = enabled
	}
}

// WithMouse toggles mouse support.
func WithMouse(enabled bool) Option {
	return func(c *Config) {
		c.MouseSupport = enabled
	}
}
