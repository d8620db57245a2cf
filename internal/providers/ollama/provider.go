// internal/providers/ollama/provider.go
// Package ollama provides a ChatProvider backed by Ollama-compatible HTTP endpoints.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/danielaScattarella/rag-ai/internal/appconfig"
	"github.com/danielaScattarella/rag-ai/internal/logging"
	"github.com/danielaScattarella/rag-ai/internal/providers"
)

// Provider implements providers.ChatProvider using the Ollama /api/chat endpoint.
type Provider struct {
	client  *http.Client
	timeout time.Duration
}

// New constructs a Provider configured with the application's request timeout.
func New(cfg *appconfig.Config) *Provider {
	timeout := cfg.RequestTimeout()
	return &Provider{
		client: &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{ForceAttemptHTTP2: false},
		},
		timeout: timeout,
	}
}

type chatResponse struct {
	Message struct {
		Role    string          `json:"role"`
		Content json.RawMessage `json:"content"`
	} `json:"message"`
	Done bool `json:"done"`
}

// Complete sends a non-streaming chat request with temperature zero and
// returns the normalized response text.
func (p *Provider) Complete(ctx context.Context, req providers.CompletionRequest) (string, error) {
	if strings.TrimSpace(req.Model) == "" {
		return "", fmt.Errorf("ollama: chat model is empty")
	}

	payload := map[string]any{
		"model": req.Model,
		"messages": []providers.ChatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		"options": map[string]any{"temperature": 0},
		"stream":  false,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("ollama: marshal chat request: %w", err)
	}
	logging.LogRequest("APP->LLM", req.Host.Name, req.Model, body)

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.Host.URL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ollama: create chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("ollama: chat request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ollama: read chat response: %w", err)
	}
	logging.LogRequest("LLM->APP", req.Host.Name, req.Model, respBody)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama: /api/chat returned %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("ollama: parse chat response: %w", err)
	}

	return normalizeContent(parsed.Message.Content), nil
}

// Close releases idle connections held by the HTTP client.
func (p *Provider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

type contentFragment struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// normalizeContent folds the two response shapes seen in the wild into one
// string: a plain string stays as-is, a fragment list keeps only text-typed
// fragments concatenated in order, and anything else degrades to its raw
// JSON text.
func normalizeContent(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	var fragments []contentFragment
	if err := json.Unmarshal(raw, &fragments); err == nil {
		var b strings.Builder
		for _, fragment := range fragments {
			if fragment.Type == "text" {
				b.WriteString(fragment.Text)
			}
		}
		return b.String()
	}
	return strings.TrimSpace(string(raw))
}
