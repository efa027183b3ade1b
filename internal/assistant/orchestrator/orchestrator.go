// Package orchestrator runs a chat turn through classification, escalation,
// answering and localization, and records the transcript.
package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"banking-assistant/internal/assistant/catalog"
	"banking-assistant/internal/assistant/escalation"
	"banking-assistant/internal/assistant/intent"
	"banking-assistant/internal/common/logger"
	"banking-assistant/internal/common/metrics"
	"banking-assistant/internal/models"
)

const defaultLanguage = "en"

// Classifier maps a message to an intent.
type Classifier interface {
	Classify(ctx context.Context, message, language string) intent.Intent
}

// DocumentAnswerer answers a question from the indexed document. It always
// returns usable text.
type DocumentAnswerer interface {
	Answer(ctx context.Context, question string) string
}

// Localizer renders a raw answer in the user's language.
type Localizer interface {
	Localize(ctx context.Context, raw, language, userQuery string) string
}

// AnswerSource resolves a classified intent and the user's message to a
// structured answer. An answer may carry NeedsEscalation, which routes the
// turn to the escalation gate instead of the localizer.
type AnswerSource interface {
	Respond(ctx context.Context, label intent.Intent, message string) catalog.Answer
}

// Orchestrator is safe for concurrent use: per-request state stays on the
// stack and the history store handles its own synchronization.
type Orchestrator struct {
	classifier Classifier
	answers    AnswerSource
	answerer   DocumentAnswerer
	gate       *escalation.Gate
	localizer  Localizer
	history    HistoryStore
	logger     logger.Logger
}

func New(classifier Classifier, answers AnswerSource, answerer DocumentAnswerer, gate *escalation.Gate, localizer Localizer, history HistoryStore, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		classifier: classifier,
		answers:    answers,
		answerer:   answerer,
		gate:       gate,
		localizer:  localizer,
		history:    history,
		logger:     log,
	}
}

// Process runs one chat turn. It never returns an error: every failure mode
// ends in a structured result, worst case status "error".
func (o *Orchestrator) Process(ctx context.Context, req models.ChatRequest) (result models.ChatResult) {
	started := time.Now()

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("pipeline panic recovered", map[string]interface{}{
				"session_id": req.SessionID,
				"panic":      fmt.Sprint(r),
			})
			result = o.errorResult(req, fmt.Sprintf("internal error: %v", r))
		}
		result.Duration = time.Since(started)
		metrics.ChatRequestsTotal.WithLabelValues(result.Status).Inc()
		metrics.ChatRequestDuration.WithLabelValues(result.Status).Observe(result.Duration.Seconds())
	}()

	message := strings.ToValidUTF8(strings.TrimSpace(req.Message), "")
	language := req.Language
	if language == "" {
		language = defaultLanguage
	}

	label := o.classifier.Classify(ctx, message, language)

	if label == intent.Unrecognized {
		gr := o.gate.EscalateUnrecognized(ctx, req.SessionID, message, req.MobileNo)
		return o.finish(ctx, req, message, label, gr.Message, gr.Status, true, gr.Saved)
	}

	if label == intent.GeneralInquiry && o.gate.ShouldEscalate(label) {
		gr := o.gate.EscalateGeneralInquiry(ctx, req.SessionID, message, req.MobileNo)
		return o.finish(ctx, req, message, label, gr.Message, gr.Status, true, gr.Saved)
	}

	answer := o.answer(ctx, label, message)

	if answer.NeedsEscalation {
		question := answer.Question
		if question == "" {
			question = message
		}
		gr := o.gate.EscalateSpecificQuestion(ctx, req.SessionID, question, req.MobileNo)
		return o.finish(ctx, req, message, label, gr.Message, gr.Status, true, gr.Saved)
	}

	localized := o.localizer.Localize(ctx, answer.Text, language, message)

	return o.finish(ctx, req, message, label, localized, models.StatusSuccess, false, false)
}

// answer resolves the intent to raw text. Loan eligibility goes through the
// document answerer when one is configured; everything else, and loan
// eligibility without an answerer, goes to the answer source.
func (o *Orchestrator) answer(ctx context.Context, label intent.Intent, message string) catalog.Answer {
	if label == intent.LoanEligibility && o.answerer != nil {
		return catalog.Answer{Text: o.answerer.Answer(ctx, message)}
	}
	return o.answers.Respond(ctx, label, message)
}

func (o *Orchestrator) finish(ctx context.Context, req models.ChatRequest, message string, label intent.Intent, response, status string, escalated, saved bool) models.ChatResult {
	now := time.Now().UTC()

	if req.SessionID != "" && o.history != nil {
		err := o.history.Append(ctx, req.SessionID,
			models.ConversationEntry{Role: "user", Text: message, Intent: string(label), Timestamp: now},
			models.ConversationEntry{Role: "assistant", Text: response, Status: status, Timestamp: now},
		)
		if err != nil {
			// Transcript loss is not worth failing the turn over.
			o.logger.WithError(err).Warn("failed to record conversation", map[string]interface{}{
				"session_id": req.SessionID,
			})
		}
	}

	language := req.Language
	if language == "" {
		language = defaultLanguage
	}

	return models.ChatResult{
		SessionID:         req.SessionID,
		Status:            status,
		Intent:            string(label),
		Response:          response,
		UserMessage:       message,
		Language:          language,
		IsBanking:         true,
		Escalated:         escalated,
		SavedAsUnanswered: saved,
		Timestamp:         now,
	}
}

func (o *Orchestrator) errorResult(req models.ChatRequest, detail string) models.ChatResult {
	return models.ChatResult{
		SessionID: req.SessionID,
		Status:    models.StatusError,
		Response:  detail,
		Timestamp: time.Now().UTC(),
	}
}
