package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultOpenAIModel   = "gpt-4o"
	defaultOpenAIBaseURL = "https://api.openai.com"
)

type OpenAI struct {
	apiKey  string
	client  *http.Client
	model   string
	baseURL string
}

func NewOpenAI(apiKey string) *OpenAI {
	return NewOpenAIWithModel(apiKey, defaultOpenAIModel)
}

func NewOpenAIWithModel(apiKey, model string) *OpenAI {
	return &OpenAI{
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 120 * time.Second},
		model:   model,
		baseURL: defaultOpenAIBaseURL,
	}
}

func (o *OpenAI) Model() string { return o.model }

func (o *OpenAI) Chat(ctx context.Context, r Request) (*Response, error) {
	messages := []map[string]string{}
	if r.System != "" {
		messages = append(messages, map[string]string{"role": "system", "content": r.System})
	}
	messages = append(messages, map[string]string{"role": "user", "content": r.Prompt})

	body := map[string]interface{}{
		"model":       o.model,
		"messages":    messages,
		"max_tokens":  r.MaxTokens,
		"temperature": r.Temperature,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/v1/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", o.apiKey))

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling OpenAI: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteServiceError{Provider: ProviderOpenAI, StatusCode: resp.StatusCode, Body: string(respBytes)}
	}

	var openaiResp struct {
		Model   string `json:"model"`
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage struct {
			PromptTokens     int `json:"prompt_tokens"`
			CompletionTokens int `json:"completion_tokens"`
		} `json:"usage"`
	}
	if err := json.Unmarshal(respBytes, &openaiResp); err != nil {
		return nil, fmt.Errorf("decoding OpenAI response: %w", err)
	}

	out := &Response{
		Model:        openaiResp.Model,
		InputTokens:  openaiResp.Usage.PromptTokens,
		OutputTokens: openaiResp.Usage.CompletionTokens,
	}
	if len(openaiResp.Choices) > 0 {
		out.Content = openaiResp.Choices[0].Message.Content
	}
	return out, nil
}
