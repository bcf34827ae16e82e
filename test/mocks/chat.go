package mocks

import (
	"context"
	"sync"
)

// MockReplier implements router.Replier and records every reply
type MockReplier struct {
	// ReplyFunc, when set, is called after the reply is recorded
	ReplyFunc func(ctx context.Context, content string) error

	mu      sync.Mutex
	replies []string
}

// NewMockReplier creates an empty MockReplier
func NewMockReplier() *MockReplier {
	return &MockReplier{}
}

// Reply records content
func (r *MockReplier) Reply(ctx context.Context, content string) error {
	r.mu.Lock()
	r.replies = append(r.replies, content)
	r.mu.Unlock()

	if r.ReplyFunc != nil {
		return r.ReplyFunc(ctx, content)
	}
	return nil
}

// Replies returns a copy of the recorded replies
func (r *MockReplier) Replies() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.replies...)
}
