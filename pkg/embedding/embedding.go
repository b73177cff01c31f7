// Package embedding provides sentence-embedding backends for the
// recommender. Every backend returns mean-pooled, L2-normalised vectors.
package embedding

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// ProgressFunc receives model download progress in percent.
type ProgressFunc func(percent float64)

// Embedder turns texts into vectors. Load prepares the model (possibly a
// large download) and must be called before Embed.
type Embedder interface {
	Name() string
	Load(ctx context.Context, progress ProgressFunc) error
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Backend names accepted by New.
const (
	BackendHash   = "hash"
	BackendOllama = "ollama"
	BackendGemini = "gemini"
)

// Options configures New.
type Options struct {
	Backend   string
	Model     string
	OllamaURL string
	APIKey    string
}

// New builds the backend named in opts. An empty backend means ollama with
// all-minilm. hash is an offline fallback that only scores word overlap.
func New(opts Options) (Embedder, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case BackendOllama, "":
		return NewOllamaEmbedder(opts.OllamaURL, opts.Model), nil
	case BackendHash:
		return NewHashEmbedder(DefaultHashDims), nil
	case BackendGemini:
		if opts.APIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for the gemini embedder")
		}
		return NewGeminiEmbedder(opts.APIKey, opts.Model), nil
	default:
		return nil, fmt.Errorf("unsupported embedder: %s (supported: hash, ollama, gemini)", opts.Backend)
	}
}

// Normalize scales v to unit length in place. Zero vectors are left as is.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	n := float32(math.Sqrt(sum))
	for i := range v {
		v[i] /= n
	}
	return v
}

// MeanPool averages equally sized vectors.
func MeanPool(vectors [][]float32) []float32 {
	if len(vectors) == 0 {
		return nil
	}
	out := make([]float32, len(vectors[0]))
	for _, v := range vectors {
		for i := range out {
			out[i] += v[i]
		}
	}
	for i := range out {
		out[i] /= float32(len(vectors))
	}
	return out
}

// Cosine is dot(a,b) / (|a||b|). It returns 0 when either vector is zero or
// the lengths differ.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
