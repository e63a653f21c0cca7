package model

import "time"

// ShareRecord is the local log entry written after a flip is
// successfully published to the feed.
type ShareRecord struct {
	SharedAt     time.Time
	PostID       string
	PostURL      string
	Title        string
	ID           int64
	InvestmentID int64
}
