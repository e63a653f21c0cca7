package model

import "strings"

// FlipData is the wire representation of a completed flip as published
// to the feed. It is derived from an Investment and its Item at share
// time rather than stored, so edits to the underlying investment are
// always reflected.
type FlipData struct {
	ItemName      string  `json:"item_name"`
	ItemID        int64   `json:"item_id"`
	Quantity      int64   `json:"quantity"`
	PurchasePrice int64   `json:"purchase_price"`
	SellPrice     int64   `json:"sell_price"`
	Profit        int64   `json:"profit"`
	ROI           float64 `json:"roi"`
}

// NewFlipData derives the shareable summary for an investment. The
// item is the catalog entry for the investment's item; when the
// catalog has no entry the caller should fall back to the identifiers
// stored on the investment itself.
func NewFlipData(inv Investment, item Item) FlipData {
	var sell int64
	if inv.SellPrice != nil {
		sell = *inv.SellPrice
	}
	return FlipData{
		ItemID:        item.ID,
		ItemName:      item.Name,
		Quantity:      inv.Quantity,
		PurchasePrice: inv.PurchasePrice,
		SellPrice:     sell,
		Profit:        inv.Profit(),
		ROI:           inv.ROI(),
	}
}

// SharePayload is the request body for publishing a flip to the feed.
// Title and Content are nil when the user left them blank; the feed
// API distinguishes null from empty string.
type SharePayload struct {
	Title    *string  `json:"title"`
	Content  *string  `json:"content"`
	FlipData FlipData `json:"flip_data"`
}

// NewSharePayload builds a payload from raw user input. Whitespace-only
// title or content collapses to null rather than being sent as-is.
func NewSharePayload(title, content string, data FlipData) SharePayload {
	return SharePayload{
		Title:    trimToNil(title),
		Content:  trimToNil(content),
		FlipData: data,
	}
}

func trimToNil(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// FeedPost is the feed's record of a published flip.
type FeedPost struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// FlipSummary aggregates a set of completed flips for display and export.
type FlipSummary struct {
	BestItemName string
	TotalFlips   int
	TotalProfit  int64
	TotalTax     int64
	BestProfit   int64
	WinRate      float64
}

// SummarizeFlips computes aggregate stats over the sold investments in
// the given slice. Open investments are ignored.
func SummarizeFlips(investments []Investment) FlipSummary {
	var summary FlipSummary
	wins := 0
	first := true
	for _, inv := range investments {
		if !inv.IsSold() {
			continue
		}
		profit := inv.Profit()
		summary.TotalFlips++
		summary.TotalProfit += profit
		summary.TotalTax += inv.TaxPaid
		if profit > 0 {
			wins++
		}
		if first || profit > summary.BestProfit {
			summary.BestProfit = profit
			summary.BestItemName = inv.ItemName
			first = false
		}
	}
	if summary.TotalFlips > 0 {
		summary.WinRate = float64(wins) / float64(summary.TotalFlips) * 100
	}
	return summary
}
