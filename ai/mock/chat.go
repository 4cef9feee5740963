package mock

import (
	"context"

	"github.com/quillstone/embedpipe/ai"
)

// Chat is a test double for ai.ChatModel.
type Chat struct {
	// CompleteFunc is called by Complete if set.
	CompleteFunc func(ctx context.Context, messages []ai.Message) (string, error)

	// Response is returned when CompleteFunc is nil.
	Response string

	// Calls records every conversation passed to Complete.
	Calls [][]ai.Message
}

var _ ai.ChatModel = (*Chat)(nil)

// NewChat creates a mock chat model returning the given canned response.
func NewChat(response string) *Chat {
	return &Chat{Response: response}
}

// Complete records the call and returns the scripted response.
func (m *Chat) Complete(ctx context.Context, messages []ai.Message) (string, error) {
	m.Calls = append(m.Calls, messages)

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, messages)
	}
	return m.Response, nil
}
