package embedding

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// OllamaEmbedder talks to a local Ollama server. Load pulls the model and
// streams download progress; Embed uses the batched /api/embed endpoint.
type OllamaEmbedder struct {
	baseURL string
	model   string
	client  *http.Client
}

func NewOllamaEmbedder(baseURL, model string) *OllamaEmbedder {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "all-minilm"
	}
	return &OllamaEmbedder{
		baseURL: baseURL,
		model:   model,
		// Pulls can run for minutes; callers bound them with ctx.
		client: &http.Client{},
	}
}

func (o *OllamaEmbedder) Name() string { return "ollama:" + o.model }

type ollamaPullRequest struct {
	Model  string `json:"model"`
	Stream bool   `json:"stream"`
}

type ollamaPullStatus struct {
	Status    string `json:"status"`
	Total     int64  `json:"total"`
	Completed int64  `json:"completed"`
	Error     string `json:"error"`
}

// Load pulls the model. Each streamed status line with a byte total reports
// completed/total as a percentage.
func (o *OllamaEmbedder) Load(ctx context.Context, progress ProgressFunc) error {
	body, err := json.Marshal(ollamaPullRequest{Model: o.model, Stream: true})
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/pull", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling Ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("Ollama pull returned status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var last ollamaPullStatus
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var st ollamaPullStatus
		if err := json.Unmarshal(line, &st); err != nil {
			return fmt.Errorf("decoding pull status: %w", err)
		}
		if st.Error != "" {
			return fmt.Errorf("Ollama pull failed: %s", st.Error)
		}
		if progress != nil && st.Total > 0 {
			progress(float64(st.Completed) / float64(st.Total) * 100)
		}
		last = st
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading pull stream: %w", err)
	}
	if last.Status != "success" {
		return fmt.Errorf("Ollama pull ended with status %q", last.Status)
	}
	if progress != nil {
		progress(100)
	}
	return nil
}

type ollamaEmbedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type ollamaEmbedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// Embed sends all texts in one request.
func (o *OllamaEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	body, err := json.Marshal(ollamaEmbedRequest{Model: o.model, Input: texts})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/embed", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling Ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Ollama returned status %d", resp.StatusCode)
	}

	var out ollamaEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if len(out.Embeddings) != len(texts) {
		return nil, fmt.Errorf("Ollama returned %d embeddings for %d inputs", len(out.Embeddings), len(texts))
	}
	for _, v := range out.Embeddings {
		Normalize(v)
	}
	return out.Embeddings, nil
}
