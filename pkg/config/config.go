// Package config reads runtime settings from the environment, after loading
// a .env file when one exists. Command-line flags override these values.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	LogLevel string
	Addr     string

	Embedder EmbedderConfig
	LLM      LLMConfig
}

type EmbedderConfig struct {
	Backend    string
	Model      string
	OllamaURL  string
	GeminiKey  string
	BridgeFile string
	QueryCache int
}

type LLMConfig struct {
	Provider     string
	OpenAIKey    string
	AnthropicKey string
	GeminiKey    string
	OpenAIModel  string
	ClaudeModel  string
	GeminiModel  string
}

// Load reads .env (if present) and the environment.
func Load() *Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the environment only.
func FromEnv() *Config {
	gemini := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	return &Config{
		LogLevel: firstNonEmpty(strings.TrimSpace(os.Getenv("LOG_LEVEL")), "info"),
		Addr:     firstNonEmpty(strings.TrimSpace(os.Getenv("PROMPTGEN_ADDR")), ":8080"),
		Embedder: EmbedderConfig{
			Backend:    firstNonEmpty(strings.TrimSpace(os.Getenv("PROMPTGEN_EMBEDDER")), "ollama"),
			Model:      strings.TrimSpace(os.Getenv("PROMPTGEN_EMBED_MODEL")),
			OllamaURL:  firstNonEmpty(strings.TrimSpace(os.Getenv("OLLAMA_HOST")), "http://localhost:11434"),
			GeminiKey:  gemini,
			BridgeFile: strings.TrimSpace(os.Getenv("PROMPTGEN_BRIDGE_FILE")),
			QueryCache: intEnv("PROMPTGEN_QUERY_CACHE", 256),
		},
		LLM: LLMConfig{
			Provider:     strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER"))),
			OpenAIKey:    strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
			AnthropicKey: strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY")),
			GeminiKey:    gemini,
			OpenAIModel:  strings.TrimSpace(os.Getenv("OPENAI_MODEL")),
			ClaudeModel:  strings.TrimSpace(os.Getenv("CLAUDE_MODEL")),
			GeminiModel:  strings.TrimSpace(os.Getenv("GEMINI_MODEL")),
		},
	}
}

// APIKey returns the configured key for provider ("openai", "anthropic",
// "gemini").
func (c LLMConfig) APIKey(provider string) string {
	switch provider {
	case "anthropic", "claude":
		return c.AnthropicKey
	case "gemini":
		return c.GeminiKey
	default:
		return c.OpenAIKey
	}
}

// Model returns the configured model override for provider, if any.
func (c LLMConfig) Model(provider string) string {
	switch provider {
	case "anthropic", "claude":
		return c.ClaudeModel
	case "gemini":
		return c.GeminiModel
	default:
		return c.OpenAIModel
	}
}

// NewLogger builds the process logger. Unknown levels fall back to info.
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

func intEnv(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
