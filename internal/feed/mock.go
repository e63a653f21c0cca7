package feed

import (
	"context"
	"sync"

	"github.com/mont266/gepulse/internal/model"
	"github.com/mont266/gepulse/internal/service"
)

// MockPublisher is a mock implementation of FeedPublisher for testing.
type MockPublisher struct {
	ShareFunc      func(ctx context.Context, payload model.SharePayload) (*model.FeedPost, error)
	LastPayload    *model.SharePayload
	ShareCalls     []model.SharePayload
	ShareCallCount int
	mu             sync.Mutex
}

var _ service.FeedPublisher = (*MockPublisher)(nil)

// NewMockPublisher creates a mock publisher that succeeds with a fixed
// post unless ShareFunc is set.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{
		ShareCalls: make([]model.SharePayload, 0),
	}
}

// ShareFlip implements the FeedPublisher interface.
func (m *MockPublisher) ShareFlip(ctx context.Context, payload model.SharePayload) (*model.FeedPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ShareCallCount++
	m.ShareCalls = append(m.ShareCalls, payload)
	m.LastPayload = &m.ShareCalls[len(m.ShareCalls)-1]

	if m.ShareFunc != nil {
		return m.ShareFunc(ctx, payload)
	}

	return &model.FeedPost{ID: "post-1", URL: "https://gepulse.app/flips/post-1"}, nil
}

// SetShareError configures the mock to fail every share.
func (m *MockPublisher) SetShareError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ShareFunc = func(_ context.Context, _ model.SharePayload) (*model.FeedPost, error) {
		return nil, err
	}
}

// Reset clears all recorded calls.
func (m *MockPublisher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ShareCallCount = 0
	m.ShareCalls = make([]model.SharePayload, 0)
	m.LastPayload = nil
	m.ShareFunc = nil
}
