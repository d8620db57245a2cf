package rag

import (
	"context"
	"strings"
)

// DefaultTopK is the number of neighbors retrieved when callers do not
// configure their own.
const DefaultTopK = 8

const snippetRunes = 100

// Retriever embeds queries and searches a SearchIndex. It holds the index
// by reference and never mutates it.
type Retriever struct {
	index    *SearchIndex
	embedder Embedder
}

// NewRetriever binds a retriever to an index and the embedder that produced
// the index vectors.
func NewRetriever(index *SearchIndex, embedder Embedder) *Retriever {
	return &Retriever{index: index, embedder: embedder}
}

// Retrieve returns up to k text units relevant to the query, best first,
// with scores dropped. An empty or whitespace-only query returns an empty
// result without touching the embedder or the index.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]TextUnit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	scored, err := r.search(ctx, query, k)
	if err != nil {
		return nil, err
	}
	units := make([]TextUnit, len(scored))
	for i, s := range scored {
		units[i] = s.Unit
	}
	return units, nil
}

// RetrieveWithLogs performs the same search as Retrieve but also returns a
// per-result diagnostic record: 1-based rank, a content snippet, the source
// file ("unknown" when absent), and the similarity score.
func (r *Retriever) RetrieveWithLogs(ctx context.Context, query string, k int) ([]TextUnit, []RetrievalLog, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil, nil
	}
	scored, err := r.search(ctx, query, k)
	if err != nil {
		return nil, nil, err
	}

	units := make([]TextUnit, len(scored))
	logs := make([]RetrievalLog, len(scored))
	for i, s := range scored {
		units[i] = s.Unit
		source := s.Unit.Metadata.Source
		if source == "" {
			source = "unknown"
		}
		logs[i] = RetrievalLog{
			Rank:    i + 1,
			Snippet: snippet(s.Unit.Content, snippetRunes),
			Source:  source,
			Score:   s.Score,
		}
	}
	return units, logs, nil
}

func (r *Retriever) search(ctx context.Context, query string, k int) ([]ScoredUnit, error) {
	vector, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	return r.index.Search(vector, k)
}

func snippet(text string, max int) string {
	runes := []rune(text)
	if len(runes) > max {
		runes = runes[:max]
	}
	return string(runes) + "..."
}
