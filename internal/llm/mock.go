package llm

import (
	"context"

	"github.com/lifo-app/lifo-server/internal/domain"
)

// CompleteCall records one invocation of MockClient.Complete for
// assertions.
type CompleteCall struct {
	Messages []domain.PromptMessage
	Opts     domain.CompletionOptions
}

// MockClient is a configurable completion client for testing.
// Responses are consumed in order; once exhausted, CompleteResponse is
// returned. Set CompleteError to make every call fail.
type MockClient struct {
	CompleteResponse string
	CompleteError    error
	Responses        []string

	// Call tracking for assertions
	CompleteCalls []CompleteCall
}

func NewMockClient() *MockClient {
	return &MockClient{
		CompleteResponse: "Mock completion",
	}
}

func (m *MockClient) Complete(ctx context.Context, messages []domain.PromptMessage, opts domain.CompletionOptions) (string, error) {
	m.CompleteCalls = append(m.CompleteCalls, CompleteCall{Messages: messages, Opts: opts})

	if m.CompleteError != nil {
		return "", m.CompleteError
	}
	if len(m.Responses) > 0 {
		resp := m.Responses[0]
		m.Responses = m.Responses[1:]
		return resp, nil
	}
	return m.CompleteResponse, nil
}
