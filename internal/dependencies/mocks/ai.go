package mocks

import (
	"context"
	"fmt"

	"github.com/promptduel/promptduel-go/internal/ai"
)

// MockProvider is a scripted implementation of the AI provider for testing.
// Each Complete call consumes the next queued result.
type MockProvider struct {
	results []completionResult
	index   int

	// Calls records the messages of every Complete invocation
	Calls [][]ai.Message
}

type completionResult struct {
	reply string
	err   error
}

// Ensure MockProvider implements Provider
var _ ai.Provider = (*MockProvider)(nil)

// NewMockProvider creates a new MockProvider
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// Complete returns the next queued result. If the queue is exhausted it
// returns a canned reply so tests that don't care about content still pass.
func (p *MockProvider) Complete(_ context.Context, messages []ai.Message, _ ai.CompletionOptions) (string, error) {
	p.Calls = append(p.Calls, messages)

	if p.index >= len(p.results) {
		return fmt.Sprintf("canned reply %d", len(p.Calls)), nil
	}
	result := p.results[p.index]
	p.index++
	return result.reply, result.err
}

// QueueReply adds successful completions to the result queue
func (p *MockProvider) QueueReply(replies ...string) {
	for _, r := range replies {
		p.results = append(p.results, completionResult{reply: r})
	}
}

// QueueError adds a failing completion to the result queue
func (p *MockProvider) QueueError(err error) {
	p.results = append(p.results, completionResult{err: err})
}

// Reset clears all queued results and recorded calls
func (p *MockProvider) Reset() {
	p.results = nil
	p.index = 0
	p.Calls = nil
}
