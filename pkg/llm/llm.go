package llm

import (
	"context"
	"fmt"
)

// LLM is a single-turn chat completion client.
type LLM interface {
	Chat(ctx context.Context, req Request) (*Response, error)
	Model() string
}

// Request is one system + user exchange.
type Request struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Response carries the generated text and, when the provider reports it,
// token usage. Zero usage means "not reported".
type Response struct {
	Content      string
	Model        string
	InputTokens  int
	OutputTokens int
}

// RemoteServiceError is a non-2xx answer from a provider. It is returned as
// is and never retried.
type RemoteServiceError struct {
	Provider   Provider
	StatusCode int
	Body       string
}

func (e *RemoteServiceError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider.DisplayName(), e.StatusCode, e.Body)
}
