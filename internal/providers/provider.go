// internal/providers/provider.go

// Package providers defines the interface for chat-completion backends. It
// abstracts the concrete service behind a prompt-in/text-out contract so the
// answering pipeline never depends on a specific vendor API.
package providers

import (
	"context"

	"github.com/danielaScattarella/rag-ai/internal/appconfig"
)

// ChatMessage represents a single message in a chat exchange.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest carries one system+user message pair to a backend.
type CompletionRequest struct {
	Host   appconfig.Host
	Model  string
	System string
	User   string
}

// ChatProvider is the interface all chat backends implement. Complete sends
// a deterministic (temperature zero) completion request and returns the
// normalized response text.
type ChatProvider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Close() error
}
