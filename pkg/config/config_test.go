package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"LOG_LEVEL", "PROMPTGEN_ADDR", "PROMPTGEN_EMBEDDER", "OLLAMA_HOST",
	"PROMPTGEN_EMBED_MODEL", "GEMINI_API_KEY", "PROMPTGEN_BRIDGE_FILE",
	"PROMPTGEN_QUERY_CACHE", "OPENAI_API_KEY", "ANTHROPIC_API_KEY",
	"LLM_PROVIDER", "OPENAI_MODEL", "CLAUDE_MODEL", "GEMINI_MODEL",
}

func clearEnv(t *testing.T) {
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := FromEnv()
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "ollama", cfg.Embedder.Backend)
	assert.Equal(t, "http://localhost:11434", cfg.Embedder.OllamaURL)
	assert.Equal(t, 256, cfg.Embedder.QueryCache)
	assert.Equal(t, "", cfg.LLM.Provider)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROMPTGEN_EMBEDDER", "hash")
	t.Setenv("PROMPTGEN_QUERY_CACHE", "32")
	t.Setenv("LLM_PROVIDER", " Anthropic ")
	t.Setenv("ANTHROPIC_API_KEY", "a-key")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("CLAUDE_MODEL", "claude-x")

	cfg := FromEnv()
	assert.Equal(t, "hash", cfg.Embedder.Backend)
	assert.Equal(t, 32, cfg.Embedder.QueryCache)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "a-key", cfg.LLM.APIKey("anthropic"))
	assert.Equal(t, "g-key", cfg.LLM.APIKey("gemini"))
	assert.Equal(t, "g-key", cfg.Embedder.GeminiKey)
	assert.Equal(t, "claude-x", cfg.LLM.Model("claude"))
	assert.Equal(t, "", cfg.LLM.Model("openai"))
}

func TestFromEnv_BadCacheSize(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROMPTGEN_QUERY_CACHE", "-3")
	assert.Equal(t, 256, FromEnv().Embedder.QueryCache)
	t.Setenv("PROMPTGEN_QUERY_CACHE", "lots")
	assert.Equal(t, 256, FromEnv().Embedder.QueryCache)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("PROMPTGEN_ADDR")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PROMPTGEN_ADDR=:9999\n"), 0o644))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		os.Unsetenv("PROMPTGEN_ADDR")
	})

	assert.Equal(t, ":9999", Load().Addr)
}

func TestNewLogger(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewLogger("debug").GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger("loud").GetLevel())
}
