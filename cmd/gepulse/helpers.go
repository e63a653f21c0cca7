package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/mont266/gepulse/internal/config"
	"github.com/mont266/gepulse/internal/feed"
	"github.com/mont266/gepulse/internal/model"
	"github.com/mont266/gepulse/internal/service"
	"github.com/mont266/gepulse/internal/storage"
)

// initStorage opens the flip database and runs migrations.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := config.ExpandPath(viper.GetString("database.path"))
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// closeStorage closes the store, logging rather than failing.
func closeStorage(store service.Storage) {
	if err := store.Close(); err != nil {
		slog.Error("Failed to close database", "error", err)
	}
}

// newFeedPublisher builds the feed client from the config file and
// environment.
func newFeedPublisher() (service.FeedPublisher, error) {
	cfg, err := config.LoadFeedConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load feed config: %w", err)
	}

	client, err := feed.NewClient(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create feed client: %w", err)
	}

	return client, nil
}

// parseStatus maps a --status flag value onto an investment status
// filter. Empty input means no filter.
func parseStatus(s string) (*model.InvestmentStatus, error) {
	switch s {
	case "":
		return nil, nil
	case "open":
		status := model.StatusOpen
		return &status, nil
	case "sold":
		status := model.StatusSold
		return &status, nil
	default:
		return nil, fmt.Errorf("invalid status %q: expected open or sold", s)
	}
}
