package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultClaudeModel   = "claude-sonnet-4-20250514"
	defaultClaudeBaseURL = "https://api.anthropic.com"
)

type Claude struct {
	apiKey  string
	client  *http.Client
	model   string
	baseURL string
}

func NewClaude(apiKey string) *Claude {
	return NewClaudeWithModel(apiKey, defaultClaudeModel)
}

func NewClaudeWithModel(apiKey, model string) *Claude {
	return &Claude{
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 120 * time.Second},
		model:   model,
		baseURL: defaultClaudeBaseURL,
	}
}

func (c *Claude) Model() string { return c.model }

func (c *Claude) Chat(ctx context.Context, r Request) (*Response, error) {
	body := map[string]interface{}{
		"model":       c.model,
		"max_tokens":  r.MaxTokens,
		"temperature": r.Temperature,
		"messages": []map[string]string{{
			"role":    "user",
			"content": r.Prompt,
		}},
	}
	if r.System != "" {
		body["system"] = r.System
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling Anthropic: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteServiceError{Provider: ProviderClaude, StatusCode: resp.StatusCode, Body: string(respBytes)}
	}

	var claudeResp struct {
		Model   string `json:"model"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		Usage struct {
			InputTokens  int `json:"input_tokens"`
			OutputTokens int `json:"output_tokens"`
		} `json:"usage"`
	}
	if err := json.Unmarshal(respBytes, &claudeResp); err != nil {
		return nil, fmt.Errorf("decoding Anthropic response: %w", err)
	}

	// Only text blocks count; tool-use and thinking blocks are skipped.
	var text strings.Builder
	for _, block := range claudeResp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	return &Response{
		Content:      text.String(),
		Model:        claudeResp.Model,
		InputTokens:  claudeResp.Usage.InputTokens,
		OutputTokens: claudeResp.Usage.OutputTokens,
	}, nil
}
