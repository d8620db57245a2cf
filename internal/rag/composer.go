package rag

import (
	"context"
	"strings"

	"github.com/danielaScattarella/rag-ai/internal/logging"
)

// ChatClient is the language-model boundary: one rendered system+user
// prompt in, normalized answer text out.
type ChatClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// DocumentRetriever is the retrieval boundary the composer depends on.
// *Retriever satisfies it.
type DocumentRetriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]TextUnit, error)
}

// AnswerComposer assembles retrieved context into a grounded prompt,
// invokes the chat model, and returns the structured result. It is
// stateless across calls, so a failed call can be retried without
// corrupting any caller-held conversation state.
type AnswerComposer struct {
	retriever DocumentRetriever
	client    ChatClient
	topK      int
}

// NewAnswerComposer binds a composer to a retriever and a chat client.
// A non-positive topK falls back to DefaultTopK.
func NewAnswerComposer(retriever DocumentRetriever, client ChatClient, topK int) *AnswerComposer {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &AnswerComposer{retriever: retriever, client: client, topK: topK}
}

// Answer runs one full retrieve-and-generate pass for the question. Empty
// retrieval is not an error: the model is still called with an empty
// context string and is expected to return the refusal answer. Upstream
// failures propagate as *UpstreamError and are never turned into empty
// answers.
func (c *AnswerComposer) Answer(ctx context.Context, question string) (AnswerResult, error) {
	units, err := c.retriever.Retrieve(ctx, question, c.topK)
	if err != nil {
		return AnswerResult{}, err
	}

	prompt := RenderPrompt(JoinContext(units), question)
	logging.LogRequest("RAG->LLM", "", "", prompt.System+"\n"+prompt.User)

	answer, err := c.client.Complete(ctx, prompt)
	if err != nil {
		return AnswerResult{}, upstream("chat completion", err)
	}
	logging.LogRequest("LLM->RAG", "", "", answer)

	return AnswerResult{
		Answer:          answer,
		SourceDocuments: units,
		Question:        question,
		Prompt:          prompt,
	}, nil
}

// JoinContext joins unit contents with a blank-line separator in retrieval
// order. No units yields the empty string.
func JoinContext(units []TextUnit) string {
	if len(units) == 0 {
		return ""
	}
	parts := make([]string, len(units))
	for i, unit := range units {
		parts[i] = unit.Content
	}
	return strings.Join(parts, "\n\n")
}
