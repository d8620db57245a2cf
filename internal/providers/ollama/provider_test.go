package ollama

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielaScattarella/rag-ai/internal/appconfig"
	"github.com/danielaScattarella/rag-ai/internal/providers"
)

func TestCompleteSendsSystemAndUserMessages(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Errorf("unmarshal request: %v", err)
		}
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"La magnitudo è 6.0."},"done":true}`))
	}))
	defer server.Close()

	cfg := &appconfig.Config{TimeoutSeconds: 5}
	p := New(cfg)
	defer p.Close()

	answer, err := p.Complete(context.Background(), providers.CompletionRequest{
		Host:   appconfig.Host{Name: "local", URL: server.URL},
		Model:  "llama3.1",
		System: "rules plus context",
		User:   "Qual è la magnitudo?",
	})
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if answer != "La magnitudo è 6.0." {
		t.Fatalf("unexpected answer: %q", answer)
	}

	if captured["stream"] != false {
		t.Fatalf("expected stream disabled, got %v", captured["stream"])
	}
	options, _ := captured["options"].(map[string]any)
	if options["temperature"] != float64(0) {
		t.Fatalf("expected temperature 0, got %v", options["temperature"])
	}
	messages, _ := captured["messages"].([]any)
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	first, _ := messages[0].(map[string]any)
	if first["role"] != "system" {
		t.Fatalf("expected first message role system, got %v", first["role"])
	}
	if first["content"] != "rules plus context" {
		t.Fatalf("expected system content passthrough, got %v", first["content"])
	}
}

func TestCompleteUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	p := New(&appconfig.Config{TimeoutSeconds: 5})
	defer p.Close()

	_, err := p.Complete(context.Background(), providers.CompletionRequest{
		Host:  appconfig.Host{Name: "local", URL: server.URL},
		Model: "missing",
		User:  "question",
	})
	if err == nil {
		t.Fatalf("expected error for upstream failure")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected status in error, got: %v", err)
	}
}

func TestCompleteRejectsEmptyModel(t *testing.T) {
	p := New(&appconfig.Config{TimeoutSeconds: 5})
	defer p.Close()

	if _, err := p.Complete(context.Background(), providers.CompletionRequest{}); err == nil {
		t.Fatalf("expected error for empty model")
	}
}

func TestNormalizeContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain string", raw: `"hello"`, want: "hello"},
		{
			name: "text fragments",
			raw:  `[{"type":"text","text":"Non lo so "},{"type":"image","text":"skip"},{"type":"text","text":"in base ai documenti forniti."}]`,
			want: "Non lo so in base ai documenti forniti.",
		},
		{name: "other shape", raw: `{"unexpected":1}`, want: `{"unexpected":1}`},
		{name: "empty", raw: ``, want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := normalizeContent(json.RawMessage(tt.raw)); got != tt.want {
				t.Fatalf("normalizeContent(%s)=%q want %q", tt.raw, got, tt.want)
			}
		})
	}
}
