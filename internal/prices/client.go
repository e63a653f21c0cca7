// Package prices fetches item data from the OSRS wiki prices API.
package prices

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mont266/gepulse/internal/model"
)

// DefaultBaseURL is the public OSRS wiki prices API.
const DefaultBaseURL = "https://prices.runescape.wiki/api/v1/osrs"

// The wiki API asks callers to identify themselves.
const userAgent = "gepulse flip tracker (github.com/mont266/gepulse)"

// Client implements the ItemSource interface against the wiki prices API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Wiki mapping response entry.
type mappingEntry struct {
	Name     string `json:"name"`
	Examine  string `json:"examine"`
	Icon     string `json:"icon"`
	ID       int64  `json:"id"`
	Value    int64  `json:"value"`
	BuyLimit int64  `json:"limit"`
	LowAlch  int64  `json:"lowalch"`
	HighAlch int64  `json:"highalch"`
	Members  bool   `json:"members"`
}

// NewClient creates a new prices API client. An empty baseURL uses the
// public wiki endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchMapping fetches the full item mapping from the wiki prices API.
func (c *Client) FetchMapping(ctx context.Context) ([]model.Item, error) {
	mappingURL := c.baseURL + "/mapping"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mappingURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	slog.Debug("Requesting item mapping", "url", mappingURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch item mapping: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("prices API error: %d - %s", resp.StatusCode, string(body))
	}

	var entries []mappingEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// Convert wiki entries to our model, dropping malformed rows
	items := make([]model.Item, 0, len(entries))
	for _, entry := range entries {
		if entry.ID <= 0 || entry.Name == "" {
			continue
		}

		items = append(items, model.Item{
			ID:       entry.ID,
			Name:     entry.Name,
			Examine:  entry.Examine,
			Icon:     entry.Icon,
			BuyLimit: entry.BuyLimit,
			HighAlch: entry.HighAlch,
			Members:  entry.Members,
		})
	}

	slog.Debug("Fetched item mapping", "items", len(items))

	return items, nil
}
