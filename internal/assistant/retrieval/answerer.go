// internal/assistant/retrieval/answerer.go
package retrieval

import (
	"context"
	"fmt"
	"strings"

	"banking-assistant/internal/common/genai"
	"banking-assistant/internal/common/logger"
	"banking-assistant/internal/common/metrics"
)

const systemPrompt = "You are a helpful document analysis assistant. Your task is to provide accurate and detailed answers based ONLY on the context provided from the document. If the answer is not in the context, state that the information is not available in the provided document."

// Deterministic texts the answerer degrades to. Every external failure maps to
// one of these; the pipeline never surfaces a raw error to the user.
const (
	NotFoundResponse = "I couldn't find specific loan eligibility information in the provided document to answer your question."
	ErrorResponse    = "Sorry, I encountered an error while retrieving loan details. Please try again later or contact customer support."
)

// Answerer embeds the question, retrieves matching chunks for one document and
// generates a grounded answer.
type Answerer struct {
	embedder   genai.Embedder
	generator  genai.Generator
	index      Index
	documentID string
	topK       int
	logger     logger.Logger
}

func NewAnswerer(embedder genai.Embedder, generator genai.Generator, index Index, documentID string, topK int, log logger.Logger) *Answerer {
	if topK <= 0 {
		topK = 4
	}
	return &Answerer{
		embedder:   embedder,
		generator:  generator,
		index:      index,
		documentID: documentID,
		topK:       topK,
		logger:     log,
	}
}

// Answer runs the RAG flow for a question. It always returns usable text: on
// any failure the deterministic error response, on empty retrieval the
// deterministic not-found response.
func (a *Answerer) Answer(ctx context.Context, question string) string {
	vectors, err := a.embedder.Embed(ctx, []string{question})
	if err != nil || len(vectors) == 0 {
		a.logger.WithError(err).Error("question embedding failed", nil)
		metrics.RetrievalQueries.WithLabelValues("error").Inc()
		return ErrorResponse
	}

	matches, err := a.index.Query(ctx, vectors[0], a.documentID, a.topK)
	if err != nil {
		a.logger.WithError(err).Error("vector index query failed", map[string]interface{}{
			"document_id": a.documentID,
		})
		metrics.RetrievalQueries.WithLabelValues("error").Inc()
		return ErrorResponse
	}

	// The index filter should already scope to our document; re-check here so
	// a misconfigured index can never leak another document's chunks.
	matches = filterByDocument(matches, a.documentID)

	if len(matches) == 0 {
		metrics.RetrievalQueries.WithLabelValues("not_found").Inc()
		return NotFoundResponse
	}

	contents := make([]string, 0, len(matches))
	for _, m := range matches {
		if strings.TrimSpace(m.Content) != "" {
			contents = append(contents, m.Content)
		}
	}
	if len(contents) == 0 {
		metrics.RetrievalQueries.WithLabelValues("not_found").Inc()
		return NotFoundResponse
	}

	answer, err := a.generator.Generate(ctx, buildAnswerPrompt(question, strings.Join(contents, "\n\n---\n\n")))
	if err != nil {
		a.logger.WithError(err).Error("answer generation failed", nil)
		metrics.RetrievalQueries.WithLabelValues("error").Inc()
		return ErrorResponse
	}

	metrics.RetrievalQueries.WithLabelValues("success").Inc()
	return answer
}

func filterByDocument(matches []Match, documentID string) []Match {
	filtered := matches[:0]
	for _, m := range matches {
		if m.DocumentID == documentID {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

func buildAnswerPrompt(question, context string) string {
	return fmt.Sprintf("%s\n\nContext from document:\n%s\n\nQuestion: %s\n\nAnswer:", systemPrompt, context, question)
}
