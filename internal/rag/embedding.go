package rag

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

// Embedder maps text into fixed-dimension dense vectors. Queries and
// documents must share the same embedding space, and the same input must
// always produce the same vector for a given model configuration.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float64, error)
	EmbedDocuments(ctx context.Context, texts []string) ([][]float64, error)
}

// OllamaEmbedder requests embeddings from an Ollama-compatible
// /api/embeddings endpoint.
type OllamaEmbedder struct {
	client  *http.Client
	baseURL string
	model   string
	timeout time.Duration
}

// NewOllamaEmbedder constructs an embedder against the given host URL and
// model name.
func NewOllamaEmbedder(baseURL, model string, timeout time.Duration) (*OllamaEmbedder, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("embedding host URL is empty")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("embedding model is empty")
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OllamaEmbedder{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		timeout: timeout,
	}, nil
}

type embeddingResponse struct {
	Embedding []float64 `json:"embedding"`
}

// EmbedQuery embeds a single query string.
func (e *OllamaEmbedder) EmbedQuery(ctx context.Context, text string) ([]float64, error) {
	return e.embed(ctx, text)
}

// EmbedDocuments embeds a batch of document texts, preserving order. The
// batch must be non-empty.
func (e *OllamaEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, ErrNoDocuments
	}
	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		vector, err := e.embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed document %d: %w", i, err)
		}
		vectors[i] = vector
	}
	return vectors, nil
}

func (e *OllamaEmbedder) embed(ctx context.Context, text string) ([]float64, error) {
	payload := map[string]any{
		"model":  e.model,
		"prompt": text,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal embedding request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/api/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create embedding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, upstream("embedding", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, upstream("embedding", fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(raw))))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, upstream("embedding", fmt.Errorf("read response: %w", err))
	}

	var parsed embeddingResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, upstream("embedding", fmt.Errorf("parse response: %w", err))
	}
	if len(parsed.Embedding) == 0 {
		return nil, upstream("embedding", fmt.Errorf("response returned empty vector"))
	}

	return parsed.Embedding, nil
}
