// Package model defines the core domain types shared across the application.
package model

// Item represents a tradeable Grand Exchange item from the mapping catalog.
type Item struct {
	Name     string
	Examine  string
	Icon     string
	ID       int64
	BuyLimit int64
	HighAlch int64
	Members  bool
}
