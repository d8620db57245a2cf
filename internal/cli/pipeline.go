// internal/cli/pipeline.go
package ragai

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/k0kubun/pp"

	"github.com/danielaScattarella/rag-ai/internal/appconfig"
	"github.com/danielaScattarella/rag-ai/internal/catalog"
	"github.com/danielaScattarella/rag-ai/internal/providers"
	"github.com/danielaScattarella/rag-ai/internal/providers/ollama"
	"github.com/danielaScattarella/rag-ai/internal/rag"
)

// pipeline bundles the components built from one catalog indexing run.
type pipeline struct {
	retriever *rag.Retriever
	composer  *rag.AnswerComposer
	provider  providers.ChatProvider
	chunks    int
	records   int
}

// chatBackend adapts a providers.ChatProvider to the composer's ChatClient,
// pinning the configured host and model.
type chatBackend struct {
	provider providers.ChatProvider
	host     appconfig.Host
	model    string
}

func (b *chatBackend) Complete(ctx context.Context, prompt rag.Prompt) (string, error) {
	return b.provider.Complete(ctx, providers.CompletionRequest{
		Host:   b.host,
		Model:  b.model,
		System: prompt.System,
		User:   prompt.User,
	})
}

// buildPipeline loads the catalog, chunks and embeds it, and assembles the
// retriever and answer composer. The caller owns provider shutdown via
// pipeline.close.
func buildPipeline(ctx context.Context, cfg *appconfig.Config) (*pipeline, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Debug {
		pp.Println(cfg)
	}

	status := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		log.Print(msg)
		fmt.Println(msg)
	}

	start := time.Now()
	status("[RAG] catalog: %s", cfg.CatalogPath)

	units, err := catalog.LoadUnits(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	records := len(units)
	status("[RAG] loaded %d event records", records)

	for i := range units {
		units[i].Content = rag.Clean(units[i].Content)
	}

	splitter := rag.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
	chunks := splitter.SplitUnits(units)
	status("[RAG] split into %d chunks (size=%d overlap=%d)", len(chunks), cfg.ChunkSize, cfg.ChunkOverlap)

	embeddingHost, err := cfg.HostByName(cfg.EmbeddingHost)
	if err != nil {
		return nil, err
	}
	embedder, err := rag.NewOllamaEmbedder(embeddingHost.URL, cfg.EmbeddingModel, cfg.RequestTimeout())
	if err != nil {
		return nil, err
	}

	index := rag.NewSearchIndex(embedder)
	status("[RAG] embedding chunks with %s on %s...", cfg.EmbeddingModel, embeddingHost.Name)
	if err := index.Create(ctx, chunks); err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	status("[RAG] index ready: %d chunks in %s", index.Len(), time.Since(start).Round(time.Millisecond))

	chatHost, err := cfg.HostByName(cfg.ChatHost)
	if err != nil {
		return nil, err
	}
	provider := ollama.New(cfg)

	retriever := rag.NewRetriever(index, embedder)
	composer := rag.NewAnswerComposer(retriever, &chatBackend{
		provider: provider,
		host:     chatHost,
		model:    cfg.ChatModel,
	}, cfg.TopK)

	return &pipeline{
		retriever: retriever,
		composer:  composer,
		provider:  provider,
		chunks:    index.Len(),
		records:   records,
	}, nil
}

func (p *pipeline) close() {
	if err := p.provider.Close(); err != nil {
		log.Printf("provider shutdown error: %v", err)
	}
}
