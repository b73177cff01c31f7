package embedding

import (
	"context"
	"fmt"
	"sync"

	genai "google.golang.org/genai"
)

// GeminiEmbedder uses the Gemini embedding API. There is nothing to
// download, so Load only creates the client.
type GeminiEmbedder struct {
	apiKey string
	model  string

	mu  sync.Mutex
	cli *genai.Client
}

func NewGeminiEmbedder(apiKey, model string) *GeminiEmbedder {
	if model == "" {
		model = "text-embedding-004"
	}
	return &GeminiEmbedder{apiKey: apiKey, model: model}
}

func (g *GeminiEmbedder) Name() string { return "gemini:" + g.model }

func (g *GeminiEmbedder) Load(ctx context.Context, progress ProgressFunc) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cli == nil {
		cli, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: g.apiKey, Backend: genai.BackendGeminiAPI})
		if err != nil {
			return fmt.Errorf("creating Gemini client: %w", err)
		}
		g.cli = cli
	}
	if progress != nil {
		progress(100)
	}
	return nil
}

func (g *GeminiEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	g.mu.Lock()
	cli := g.cli
	g.mu.Unlock()
	if cli == nil {
		return nil, fmt.Errorf("Gemini embedder used before Load")
	}

	contents := make([]*genai.Content, len(texts))
	for i, t := range texts {
		contents[i] = genai.NewContentFromText(t, genai.RoleUser)
	}
	resp, err := cli.Models.EmbedContent(ctx, g.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("Gemini embed: %w", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("Gemini returned %d embeddings for %d inputs", len(resp.Embeddings), len(texts))
	}
	out := make([][]float32, len(resp.Embeddings))
	for i, e := range resp.Embeddings {
		if e == nil {
			return nil, fmt.Errorf("Gemini returned an empty embedding at %d", i)
		}
		out[i] = Normalize(append([]float32(nil), e.Values...))
	}
	return out, nil
}
