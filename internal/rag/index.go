package rag

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
)

// SearchIndex stores embedded text units and serves nearest-neighbor
// queries by cosine similarity. The index owns its vectors exclusively:
// entries are created by Create or Add and removed only by a full Create.
//
// Searches take a read lock and may run in parallel; Create and Add take
// the write lock and must be serialized by the caller when used
// concurrently with each other.
type SearchIndex struct {
	embedder Embedder

	mu      sync.RWMutex
	units   []TextUnit
	vectors [][]float64
	built   bool
}

// NewSearchIndex returns an empty index bound to an embedder. The index is
// unusable until Create has run once.
func NewSearchIndex(embedder Embedder) *SearchIndex {
	return &SearchIndex{embedder: embedder}
}

// Create embeds all unit contents in one batch and builds a fresh index,
// discarding any prior state. An empty unit set is an error.
func (x *SearchIndex) Create(ctx context.Context, units []TextUnit) error {
	if len(units) == 0 {
		return fmt.Errorf("create index: %w", ErrNoDocuments)
	}
	vectors, err := x.embedder.EmbedDocuments(ctx, contents(units))
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	x.units = append([]TextUnit(nil), units...)
	x.vectors = vectors
	x.built = true
	return nil
}

// Add embeds the given units and appends them without rebuilding. It fails
// when the index has not been created yet or when the unit set is empty.
// Duplicate suppression is a caller concern.
func (x *SearchIndex) Add(ctx context.Context, units []TextUnit) error {
	if !x.Built() {
		return fmt.Errorf("add documents: %w", ErrIndexNotBuilt)
	}
	if len(units) == 0 {
		return fmt.Errorf("add documents: %w", ErrNoDocuments)
	}
	vectors, err := x.embedder.EmbedDocuments(ctx, contents(units))
	if err != nil {
		return fmt.Errorf("add documents: %w", err)
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	x.units = append(x.units, units...)
	x.vectors = append(x.vectors, vectors...)
	return nil
}

// Search returns up to k stored units nearest to the query vector, best
// first. Scores are cosine similarities (higher is better). It fails when
// the index is uninitialized or k is not positive.
func (x *SearchIndex) Search(query []float64, k int) ([]ScoredUnit, error) {
	if k <= 0 {
		return nil, ErrInvalidTopK
	}

	x.mu.RLock()
	defer x.mu.RUnlock()
	if !x.built {
		return nil, ErrIndexNotBuilt
	}

	queryNorm := vectorNorm(query)
	scored := make([]ScoredUnit, 0, len(x.vectors))
	for i, vector := range x.vectors {
		if len(vector) != len(query) {
			continue
		}
		scored = append(scored, ScoredUnit{
			Unit:  x.units[i],
			Score: cosineSimilarity(query, vector, queryNorm),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

// Built reports whether Create has completed at least once.
func (x *SearchIndex) Built() bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.built
}

// Len returns the number of indexed units.
func (x *SearchIndex) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.units)
}

func contents(units []TextUnit) []string {
	texts := make([]string, len(units))
	for i, unit := range units {
		texts[i] = unit.Content
	}
	return texts
}

func cosineSimilarity(a, b []float64, normA float64) float64 {
	if normA == 0 {
		return 0
	}
	normB := vectorNorm(b)
	if normB == 0 {
		return 0
	}
	dot := 0.0
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot / (normA * normB)
}

func vectorNorm(v []float64) float64 {
	sum := 0.0
	for _, val := range v {
		sum += val * val
	}
	return math.Sqrt(sum)
}
