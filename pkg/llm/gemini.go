package llm

import (
	"context"
	"errors"
	"fmt"

	genai "google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// Gemini wraps the official genai client.
type Gemini struct {
	cli   *genai.Client
	model string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	return newGemini(ctx, apiKey, model, "")
}

func newGemini(ctx context.Context, apiKey, model, baseURL string) (*Gemini, error) {
	if model == "" {
		model = defaultGeminiModel
	}
	cfg := &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	cli, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	return &Gemini{cli: cli, model: model}, nil
}

func (g *Gemini) Model() string { return g.model }

func (g *Gemini) Chat(ctx context.Context, r Request) (*Response, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(r.Temperature)),
		MaxOutputTokens: int32(r.MaxTokens),
	}
	if r.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(r.System, genai.RoleUser)
	}

	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromText(r.Prompt, genai.RoleUser)},
		cfg,
	)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return nil, &RemoteServiceError{Provider: ProviderGemini, StatusCode: apiErr.Code, Body: apiErr.Message}
		}
		return nil, fmt.Errorf("calling Gemini: %w", err)
	}

	out := &Response{Content: resp.Text(), Model: resp.ModelVersion}
	if out.Model == "" {
		out.Model = g.model
	}
	if resp.UsageMetadata != nil {
		out.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
		out.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}
	return out, nil
}
