package ai

import "context"

// Message is a single chat message in provider requests
type Message struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`
}

// CompletionOptions tune a single provider call
type CompletionOptions struct {
	MaxTokens   int
	Temperature float64
}

// Provider produces a completion for a conversation. Implementations are
// treated as a black box: given messages, produce a reply.
type Provider interface {
	Complete(ctx context.Context, messages []Message, opts CompletionOptions) (string, error)
}
