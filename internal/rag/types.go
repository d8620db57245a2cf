// internal/rag/types.go
// Package rag implements the retrieval-augmented answering pipeline: text
// cleaning, chunking, embedding, in-memory vector search, retrieval, and
// grounded answer composition against a chat-completion backend.
package rag

// TextUnit is the atomic unit of retrieval: a text fragment plus the
// provenance it was derived from.
type TextUnit struct {
	Content  string
	Metadata Metadata
}

// Metadata carries provenance for a TextUnit. EventID is the catalog event
// identifier the text was rendered from (empty when unknown); Source names
// the file the event was loaded from.
type Metadata struct {
	EventID string
	Source  string
}

// ScoredUnit pairs a retrieved TextUnit with its similarity score.
// Scores are cosine similarities: higher is better.
type ScoredUnit struct {
	Unit  TextUnit
	Score float64
}

// RetrievalLog is a per-result diagnostic record emitted by
// Retriever.RetrieveWithLogs.
type RetrievalLog struct {
	Rank    int
	Snippet string
	Source  string
	Score   float64
}

// Prompt is the rendered system+user message pair sent to the chat model.
type Prompt struct {
	System string
	User   string
}

// AnswerResult is the structured outcome of one Answer call. It is built
// once per question and never mutated afterwards.
type AnswerResult struct {
	Answer          string
	SourceDocuments []TextUnit
	Question        string
	Prompt          Prompt
}
