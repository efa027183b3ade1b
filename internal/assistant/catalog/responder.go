// internal/assistant/catalog/responder.go
package catalog

import (
	"context"
	"fmt"
	"strings"

	"banking-assistant/internal/assistant/intent"
	"banking-assistant/internal/common/genai"
	"banking-assistant/internal/common/logger"
)

// specificQuestionMarker is the prefix the general-inquiry model is instructed
// to emit when the message turns out to be a concrete question rather than a
// greeting. It stays internal to the responder: callers only ever see the
// structured NeedsEscalation flag.
const specificQuestionMarker = "SPECIFIC_QUESTION:"

// Responder resolves an intent and message to an answer. Service intents use
// the canned catalog scripts. General inquiries go through the generator,
// which either produces a short welcome reply or flags the message as a
// specific question that needs expert attention.
type Responder struct {
	catalog   *Catalog
	generator genai.Generator
	logger    logger.Logger
}

// NewResponder wraps the catalog. A nil generator is valid: general inquiries
// then fall back to the canned welcome script.
func NewResponder(cat *Catalog, generator genai.Generator, log logger.Logger) *Responder {
	return &Responder{catalog: cat, generator: generator, logger: log}
}

// Respond returns the answer for the classified intent. It never fails: any
// generation problem degrades to the canned script for the intent.
func (r *Responder) Respond(ctx context.Context, label intent.Intent, message string) Answer {
	if label != intent.GeneralInquiry || r.generator == nil {
		return r.catalog.Respond(label)
	}

	raw, err := r.generator.Generate(ctx, buildGeneralInquiryPrompt(message))
	if err != nil {
		r.logger.WithError(err).Warn("general inquiry generation failed, using canned script", nil)
		return r.catalog.Respond(label)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return r.catalog.Respond(label)
	}

	if rest, ok := strings.CutPrefix(raw, specificQuestionMarker); ok {
		question := strings.TrimSpace(rest)
		if question == "" {
			question = message
		}
		return Answer{NeedsEscalation: true, Question: question}
	}

	return Answer{Text: raw}
}

func buildGeneralInquiryPrompt(message string) string {
	return fmt.Sprintf(`You are a friendly assistant for Bank of Maharashtra customers.

The user said: %q

If this is a greeting or a general question about what you can do, reply with a short warm welcome listing the services you help with: balance inquiry, money transfers, loans, mobile banking, card services, branch/ATM locations and fraud prevention. Mention customer care 1800-233-4526.

If instead the user is asking a specific question that needs a concrete answer, do NOT attempt to answer it. Reply with exactly:
%s <the user's question restated in one sentence>`, message, specificQuestionMarker)
}
