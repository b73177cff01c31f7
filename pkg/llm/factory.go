package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Provider represents the LLM provider type
type Provider string

const (
	ProviderClaude Provider = "anthropic"
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// ParseProvider accepts the provider names used by flags, env and the API.
func ParseProvider(s string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "anthropic", "claude":
		return ProviderClaude, nil
	case "openai":
		return ProviderOpenAI, nil
	case "gemini", "google":
		return ProviderGemini, nil
	default:
		return "", fmt.Errorf("unsupported LLM provider: %s (supported: openai, anthropic, gemini)", s)
	}
}

// DisplayName is the vendor name used in messages.
func (p Provider) DisplayName() string {
	switch p {
	case ProviderClaude:
		return "Anthropic"
	case ProviderOpenAI:
		return "OpenAI"
	case ProviderGemini:
		return "Gemini"
	default:
		return string(p)
	}
}

// APIKeyEnv is the environment variable holding the provider's key.
func (p Provider) APIKeyEnv() string {
	switch p {
	case ProviderClaude:
		return "ANTHROPIC_API_KEY"
	case ProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return "OPENAI_API_KEY"
	}
}

// ModelEnv is the environment variable overriding the default model.
func (p Provider) ModelEnv() string {
	switch p {
	case ProviderClaude:
		return "CLAUDE_MODEL"
	case ProviderGemini:
		return "GEMINI_MODEL"
	default:
		return "OPENAI_MODEL"
	}
}

// DefaultModel is used when neither flag nor env names a model.
func (p Provider) DefaultModel() string {
	switch p {
	case ProviderClaude:
		return defaultClaudeModel
	case ProviderGemini:
		return defaultGeminiModel
	default:
		return defaultOpenAIModel
	}
}

// Factory creates LLM instances based on provider
type Factory struct{}

// NewFactory creates a new LLM factory
func NewFactory() *Factory {
	return &Factory{}
}

// CreateLLM creates an LLM instance from provider and config. Recognised
// config keys are api_key, model and base_url.
func (f *Factory) CreateLLM(ctx context.Context, provider Provider, config map[string]string) (LLM, error) {
	apiKey := config["api_key"]
	if apiKey == "" {
		return nil, fmt.Errorf("%s API key is required", provider.DisplayName())
	}
	model := config["model"]
	if model == "" {
		model = provider.DefaultModel()
	}
	baseURL := strings.TrimRight(config["base_url"], "/")

	switch provider {
	case ProviderClaude:
		c := NewClaudeWithModel(apiKey, model)
		if baseURL != "" {
			c.baseURL = baseURL
		}
		return c, nil

	case ProviderOpenAI:
		o := NewOpenAIWithModel(apiKey, model)
		if baseURL != "" {
			o.baseURL = baseURL
		}
		return o, nil

	case ProviderGemini:
		return newGemini(ctx, apiKey, model, baseURL)

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}

// CreateFromEnv creates an LLM instance from environment variables.
// providerOverride and modelOverride win over LLM_PROVIDER and the
// per-provider model variables. OpenAI is the default provider.
func (f *Factory) CreateFromEnv(ctx context.Context, providerOverride, modelOverride string) (LLM, error) {
	name := providerOverride
	if name == "" {
		name = os.Getenv("LLM_PROVIDER")
	}
	if name == "" {
		name = string(ProviderOpenAI)
	}
	provider, err := ParseProvider(name)
	if err != nil {
		return nil, err
	}

	apiKey := os.Getenv(provider.APIKeyEnv())
	if apiKey == "" {
		return nil, fmt.Errorf("%s environment variable not set", provider.APIKeyEnv())
	}
	model := modelOverride
	if model == "" {
		model = os.Getenv(provider.ModelEnv())
	}
	return f.CreateLLM(ctx, provider, map[string]string{"api_key": apiKey, "model": model})
}

// GetAvailableProviders returns a list of available LLM providers
func (f *Factory) GetAvailableProviders() []Provider {
	return []Provider{ProviderOpenAI, ProviderClaude, ProviderGemini}
}
