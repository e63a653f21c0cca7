package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mont266/gepulse/internal/common"
	"github.com/mont266/gepulse/internal/model"
	"github.com/mont266/gepulse/internal/service"
)

// Client talks to the GE Pulse feed API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	retryOpts  service.RetryOptions
}

// NewClient creates a feed client from the given configuration.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid feed configuration: %w", err)
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.APIToken,
		retryOpts: service.RetryOptions{
			MaxAttempts:  cfg.RetryAttempts,
			InitialDelay: cfg.RetryDelay,
		},
	}, nil
}

// ShareFlip publishes a completed flip to the feed and returns the
// created post. Transient failures are retried; rejections carry a
// message suitable for display.
func (c *Client) ShareFlip(ctx context.Context, payload model.SharePayload) (*model.FeedPost, error) {
	slog.Debug("Publishing flip to feed",
		"item", payload.FlipData.ItemName,
		"profit", payload.FlipData.Profit)

	var post *model.FeedPost
	err := common.WithRetry(ctx, func() error {
		created, shareErr := c.shareOnce(ctx, payload)
		if shareErr != nil {
			return shareErr
		}
		post = created
		return nil
	}, c.retryOpts)
	if err != nil {
		return nil, err
	}

	slog.Info("Flip published to feed", "post_id", post.ID)
	return post, nil
}

func (c *Client) shareOnce(ctx context.Context, payload model.SharePayload) (*model.FeedPost, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &common.RetryableError{
			Err:       fmt.Errorf("failed to encode share payload: %w", err),
			Retryable: false,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/flips", bytes.NewReader(body))
	if err != nil {
		return nil, &common.RetryableError{
			Err:       fmt.Errorf("failed to create request: %w", err),
			Retryable: false,
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &common.RetryableError{
			Err:       fmt.Errorf("failed to reach feed: %w", err),
			Retryable: true,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var post model.FeedPost
		if err := json.NewDecoder(resp.Body).Decode(&post); err != nil {
			return nil, &common.RetryableError{
				Err:       fmt.Errorf("failed to decode feed response: %w", err),
				Retryable: false,
			}
		}
		return &post, nil

	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &common.RetryableError{
			Err:       fmt.Errorf("%w: status %d", common.ErrFeedRateLimit, resp.StatusCode),
			Retryable: true,
		}

	case resp.StatusCode >= 500:
		return nil, &common.RetryableError{
			Err:       fmt.Errorf("%w: status %d", common.ErrFeedUnavailable, resp.StatusCode),
			Retryable: true,
		}

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &common.RetryableError{
			Err:       common.NewUserError("Not authorized to share flips. Check your feed token.", common.ErrUnauthorized),
			Retryable: false,
		}

	default:
		// The feed reports rejections as {"message": "..."}.
		msg := decodeErrorMessage(resp.Body)
		if msg == "" {
			msg = fmt.Sprintf("Feed rejected the flip (status %d).", resp.StatusCode)
		}
		return nil, &common.RetryableError{
			Err:       common.NewUserError(msg, nil),
			Retryable: false,
		}
	}
}

func decodeErrorMessage(r io.Reader) string {
	var apiErr struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r).Decode(&apiErr); err != nil {
		return ""
	}
	return strings.TrimSpace(apiErr.Message)
}
