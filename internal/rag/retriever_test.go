package rag

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func buildTestRetriever(t *testing.T) (*Retriever, *stubEmbedder) {
	t.Helper()
	embedder := newTestEmbedder()
	index := NewSearchIndex(embedder)
	units := []TextUnit{
		{Content: "east", Metadata: Metadata{EventID: "1", Source: "events.txt"}},
		{Content: "north", Metadata: Metadata{EventID: "2"}},
	}
	if err := index.Create(context.Background(), units); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	embedder.docCalls = 0
	return NewRetriever(index, embedder), embedder
}

func TestRetrieveEmptyQueryShortCircuits(t *testing.T) {
	t.Parallel()

	retriever, embedder := buildTestRetriever(t)

	for _, query := range []string{"", "   ", "\t\n"} {
		units, err := retriever.Retrieve(context.Background(), query, 5)
		if err != nil {
			t.Fatalf("Retrieve(%q) error: %v", query, err)
		}
		if len(units) != 0 {
			t.Fatalf("expected empty result for %q, got %d units", query, len(units))
		}
	}
	if embedder.queryCalls != 0 || embedder.docCalls != 0 {
		t.Fatalf("expected no embedder calls, got query=%d docs=%d", embedder.queryCalls, embedder.docCalls)
	}

	units, logs, err := retriever.RetrieveWithLogs(context.Background(), "  ", 5)
	if err != nil || units != nil || logs != nil {
		t.Fatalf("expected empty diagnostics short-circuit, got units=%v logs=%v err=%v", units, logs, err)
	}
	if embedder.queryCalls != 0 {
		t.Fatalf("expected no embedder calls after diagnostics short-circuit, got %d", embedder.queryCalls)
	}
}

func TestRetrieveDropsScores(t *testing.T) {
	t.Parallel()

	retriever, embedder := buildTestRetriever(t)

	units, err := retriever.Retrieve(context.Background(), "query", 2)
	if err != nil {
		t.Fatalf("Retrieve error: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(units))
	}
	if units[0].Content != "east" {
		t.Fatalf("expected best unit first, got %q", units[0].Content)
	}
	if embedder.queryCalls != 1 {
		t.Fatalf("expected one query embedding, got %d", embedder.queryCalls)
	}
}

func TestRetrieveWithLogsDiagnostics(t *testing.T) {
	t.Parallel()

	retriever, _ := buildTestRetriever(t)

	units, logs, err := retriever.RetrieveWithLogs(context.Background(), "query", 2)
	if err != nil {
		t.Fatalf("RetrieveWithLogs error: %v", err)
	}
	if len(units) != 2 || len(logs) != 2 {
		t.Fatalf("expected 2 units and 2 logs, got %d/%d", len(units), len(logs))
	}
	if logs[0].Rank != 1 || logs[1].Rank != 2 {
		t.Fatalf("expected 1-based ranks, got %d/%d", logs[0].Rank, logs[1].Rank)
	}
	if logs[0].Source != "events.txt" {
		t.Fatalf("expected source events.txt, got %q", logs[0].Source)
	}
	if logs[1].Source != "unknown" {
		t.Fatalf("expected fallback source unknown, got %q", logs[1].Source)
	}
	if !strings.HasSuffix(logs[0].Snippet, "...") {
		t.Fatalf("expected snippet to end with ellipsis, got %q", logs[0].Snippet)
	}
	if logs[0].Score < logs[1].Score {
		t.Fatalf("expected scores ordered best-first, got %v", logs)
	}
}

func TestRetrieveUninitializedIndexFails(t *testing.T) {
	t.Parallel()

	embedder := newTestEmbedder()
	retriever := NewRetriever(NewSearchIndex(embedder), embedder)

	if _, err := retriever.Retrieve(context.Background(), "query", 3); !errors.Is(err, ErrIndexNotBuilt) {
		t.Fatalf("expected ErrIndexNotBuilt, got: %v", err)
	}
	if _, _, err := retriever.RetrieveWithLogs(context.Background(), "query", 3); !errors.Is(err, ErrIndexNotBuilt) {
		t.Fatalf("expected ErrIndexNotBuilt from diagnostics path, got: %v", err)
	}
}

func TestSnippetTruncatesLongContent(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("è", 150)
	got := snippet(long, 100)
	if got != strings.Repeat("è", 100)+"..." {
		t.Fatalf("unexpected snippet: %q", got)
	}
	if short := snippet("breve", 100); short != "breve..." {
		t.Fatalf("unexpected short snippet: %q", short)
	}
}
