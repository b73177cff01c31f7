// Package draft forwards a generated prompt to an LLM provider and returns
// the drafted process document.
package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/2riing/vibe-promptgen/pkg/llm"
	"github.com/2riing/vibe-promptgen/pkg/parser"
	"github.com/2riing/vibe-promptgen/pkg/prompts"
)

const (
	DefaultTemperature = 0.2
	DefaultMaxTokens   = 4000
)

const msgAPIKeyRequired = "API key가 필요합니다."

// Request is the draft call as received from the CLI or the HTTP API.
// Temperature and MaxTokens fall back to the defaults when nil.
type Request struct {
	PromptText  string   `json:"prompt_text"`
	Provider    string   `json:"provider"`
	Model       string   `json:"model"`
	APIKey      string   `json:"api_key"`
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
	DryRun      bool     `json:"dry_run"`
}

// Response mirrors what the HTTP API returns. Status is the HTTP status the
// server should answer with.
type Response struct {
	Content      string `json:"content,omitempty"`
	Model        string `json:"model,omitempty"`
	InputTokens  int    `json:"input_tokens,omitempty"`
	OutputTokens int    `json:"output_tokens,omitempty"`
	Error        string `json:"error,omitempty"`

	Status int `json:"-"`
}

// OK reports whether the draft succeeded.
func (r Response) OK() bool { return r.Status >= 200 && r.Status < 300 }

// dryRunSummary is what a dry run returns instead of calling out.
type dryRunSummary struct {
	Provider           string  `json:"provider"`
	Model              string  `json:"model"`
	Temperature        float64 `json:"temperature"`
	MaxTokens          int     `json:"max_tokens"`
	SystemPromptLength int     `json:"system_prompt_length"`
	UserPromptLength   int     `json:"user_prompt_length"`
}

type clientFunc func(ctx context.Context, provider llm.Provider, config map[string]string) (llm.LLM, error)

// Service drafts documents. The api key of a request is passed to the
// provider client only; it is never logged or echoed back.
type Service struct {
	logger *logrus.Logger
	create clientFunc
}

func NewService(logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{logger: logger, create: llm.NewFactory().CreateLLM}
}

func (s *Service) Draft(ctx context.Context, req Request) Response {
	if strings.TrimSpace(req.APIKey) == "" {
		return Response{Error: msgAPIKeyRequired, Status: http.StatusBadRequest}
	}

	temperature := DefaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	maxTokens := DefaultMaxTokens
	if req.MaxTokens != nil {
		maxTokens = *req.MaxTokens
	}

	provider, perr := llm.ParseProvider(req.Provider)
	model := req.Model
	if model == "" && perr == nil {
		model = provider.DefaultModel()
	}

	log := s.logger.WithFields(logrus.Fields{
		"provider":    req.Provider,
		"model":       model,
		"temperature": temperature,
		"max_tokens":  maxTokens,
		"prompt_len":  utf8.RuneCountInString(req.PromptText),
	})

	if req.DryRun {
		log.Debug("Draft dry run")
		summary, err := json.MarshalIndent(dryRunSummary{
			Provider:           req.Provider,
			Model:              model,
			Temperature:        temperature,
			MaxTokens:          maxTokens,
			SystemPromptLength: utf8.RuneCountInString(prompts.DraftSystemPrompt),
			UserPromptLength:   utf8.RuneCountInString(req.PromptText),
		}, "", "  ")
		if err != nil {
			return Response{Error: "서버 오류: " + err.Error(), Status: http.StatusInternalServerError}
		}
		return Response{Content: string(summary), Model: model, Status: http.StatusOK}
	}

	if perr != nil {
		return Response{Error: "지원하지 않는 provider: " + req.Provider, Status: http.StatusBadRequest}
	}

	client, err := s.create(ctx, provider, map[string]string{"api_key": req.APIKey, "model": model})
	if err != nil {
		return Response{Error: "서버 오류: " + err.Error(), Status: http.StatusInternalServerError}
	}

	log.Info("Requesting draft")
	resp, err := client.Chat(ctx, llm.Request{
		System:      prompts.DraftSystemPrompt,
		Prompt:      req.PromptText,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		var remote *llm.RemoteServiceError
		if errors.As(err, &remote) {
			log.WithField("status", remote.StatusCode).Warn("Provider rejected draft request")
			return Response{
				Error:  fmt.Sprintf("%s 오류 (%d): %s", remote.Provider.DisplayName(), remote.StatusCode, remote.Body),
				Status: remote.StatusCode,
			}
		}
		log.WithError(err).Error("Draft request failed")
		return Response{Error: "서버 오류: " + err.Error(), Status: http.StatusInternalServerError}
	}

	log.WithFields(logrus.Fields{
		"input_tokens":  resp.InputTokens,
		"output_tokens": resp.OutputTokens,
	}).Info("Draft received")
	return Response{
		Content:      parser.CleanDraft(resp.Content),
		Model:        resp.Model,
		InputTokens:  resp.InputTokens,
		OutputTokens: resp.OutputTokens,
		Status:       http.StatusOK,
	}
}
