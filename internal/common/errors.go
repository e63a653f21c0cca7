// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Database errors.
	ErrNotFound          = errors.New("not found")
	ErrDuplicateEntry    = errors.New("duplicate entry")
	ErrDatabaseCorrupted = errors.New("database corrupted")

	// Feed errors.
	ErrFeedUnavailable = errors.New("feed unavailable")
	ErrFeedRateLimit   = errors.New("feed rate limit exceeded")
	ErrUnauthorized    = errors.New("unauthorized")

	// Investment errors.
	ErrInvestmentOpen = errors.New("investment has not been sold")
	ErrAlreadySold    = errors.New("investment already sold")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// UserMessageFor extracts the message suitable for display from an
// error chain. A wrapped UserError supplies its message; anything else
// gets the fallback so internals never leak into the UI.
func UserMessageFor(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var userErr *UserError
	if errors.As(err, &userErr) && userErr.UserMessage != "" {
		return userErr.UserMessage
	}
	return fallback
}

// IsRetryable determines if an error should trigger a retry.
func IsRetryable(err error) bool {
	// Check for specific retryable errors
	if errors.Is(err, ErrRateLimit) ||
		errors.Is(err, ErrFeedRateLimit) ||
		errors.Is(err, ErrFeedUnavailable) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return true
	}

	// Check for retryable error type
	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
