// Package service defines the interfaces that connect the application's components.
package service

import (
	"context"
	"time"

	"github.com/mont266/gepulse/internal/model"
)

// InvestmentFilter narrows the set of investments returned by queries.
// Nil fields match everything.
type InvestmentFilter struct {
	Status *model.InvestmentStatus
	ItemID *int64
	Limit  int
	Offset int
}

// Storage defines the interface for data persistence.
type Storage interface {
	// Item catalog operations
	SaveItems(ctx context.Context, items []model.Item) error
	GetItemByID(ctx context.Context, id int64) (*model.Item, error)
	SearchItems(ctx context.Context, query string, limit int) ([]model.Item, error)
	CountItems(ctx context.Context) (int64, error)

	// Investment operations
	CreateInvestment(ctx context.Context, inv *model.Investment) (*model.Investment, error)
	GetInvestmentByID(ctx context.Context, id int64) (*model.Investment, error)
	GetInvestments(ctx context.Context, filter InvestmentFilter) ([]model.Investment, error)
	RecordSale(ctx context.Context, id int64, sellPrice, taxPaid int64, soldAt time.Time) error
	DeleteInvestment(ctx context.Context, id int64) error

	// Share log operations
	RecordShare(ctx context.Context, share *model.ShareRecord) (*model.ShareRecord, error)
	GetShares(ctx context.Context, limit int) ([]model.ShareRecord, error)

	// Database management
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
}

// Transaction represents a database transaction.
type Transaction interface {
	Storage
	Commit() error
	Rollback() error
}

// FeedPublisher publishes completed flips to the social feed.
type FeedPublisher interface {
	ShareFlip(ctx context.Context, payload model.SharePayload) (*model.FeedPost, error)
}

// ItemSource fetches the tradeable item catalog from an upstream API.
type ItemSource interface {
	FetchMapping(ctx context.Context) ([]model.Item, error)
}

// ReportWriter exports completed flips to an external report.
type ReportWriter interface {
	Write(ctx context.Context, flips []model.Investment, summary *model.FlipSummary) error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
