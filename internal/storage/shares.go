package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mont266/gepulse/internal/model"
)

// RecordShare logs a successful feed publish and returns the record
// with its assigned ID.
func (s *SQLiteStorage) RecordShare(ctx context.Context, share *model.ShareRecord) (*model.ShareRecord, error) {
	// Validate inputs
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateShare(share); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	created, err := s.recordShareTx(ctx, tx, share)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return created, nil
}

func (s *SQLiteStorage) recordShareTx(ctx context.Context, tx *sql.Tx, share *model.ShareRecord) (*model.ShareRecord, error) {
	sharedAt := share.SharedAt
	if sharedAt.IsZero() {
		sharedAt = time.Now().UTC()
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO shares (investment_id, post_id, post_url, title, shared_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		share.InvestmentID,
		share.PostID,
		share.PostURL,
		share.Title,
		sharedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record share: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get share id: %w", err)
	}

	created := *share
	created.ID = id
	created.SharedAt = sharedAt
	return &created, nil
}

// GetShares returns the most recent share log entries.
func (s *SQLiteStorage) GetShares(ctx context.Context, limit int) ([]model.ShareRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.getSharesTx(ctx, s.db, limit)
}

func (s *SQLiteStorage) getSharesTx(ctx context.Context, q queryable, limit int) ([]model.ShareRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := q.QueryContext(ctx, `
		SELECT id, investment_id, post_id, post_url, title, shared_at
		FROM shares
		ORDER BY shared_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query shares: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var shares []model.ShareRecord
	for rows.Next() {
		var share model.ShareRecord
		var postURL sql.NullString
		var title sql.NullString
		if err := rows.Scan(
			&share.ID,
			&share.InvestmentID,
			&share.PostID,
			&postURL,
			&title,
			&share.SharedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		share.PostURL = postURL.String
		share.Title = title.String
		shares = append(shares, share)
	}

	return shares, rows.Err()
}
