package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/promptduel/promptduel-go/internal/ai"
)

const defaultBaseURL = "https://api.openai.com"

// Client calls the OpenAI chat completions API
type Client struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

// New creates a new OpenAI client. An empty baseURL uses the public API.
func New(apiKey, baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		http:    &http.Client{Timeout: 20 * time.Second},
	}
}

// Ensure Client implements Provider
var _ ai.Provider = (*Client)(nil)

// Complete sends the conversation to the chat completions endpoint
func (c *Client) Complete(ctx context.Context, messages []ai.Message, opts ai.CompletionOptions) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("missing OpenAI API key")
	}

	payload := map[string]any{
		"model":    c.model,
		"messages": messages,
	}
	if opts.MaxTokens > 0 {
		payload["max_completion_tokens"] = opts.MaxTokens
	}
	if opts.Temperature > 0 {
		payload["temperature"] = opts.Temperature
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("openai status %d", resp.StatusCode)
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", errors.New("no choices in response")
	}

	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
