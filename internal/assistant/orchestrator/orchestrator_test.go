// internal/assistant/orchestrator/orchestrator_test.go
package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"banking-assistant/internal/assistant/catalog"
	"banking-assistant/internal/assistant/escalation"
	"banking-assistant/internal/assistant/intent"
	"banking-assistant/internal/common/logger"
	"banking-assistant/internal/models"
)

type stubClassifier struct {
	label intent.Intent
}

func (s *stubClassifier) Classify(_ context.Context, _, _ string) intent.Intent {
	return s.label
}

type stubDocAnswerer struct {
	response string
	calls    int
}

func (s *stubDocAnswerer) Answer(_ context.Context, _ string) string {
	s.calls++
	return s.response
}

type passthroughLocalizer struct {
	prefix string
	calls  int
}

func (s *passthroughLocalizer) Localize(_ context.Context, raw, _, _ string) string {
	s.calls++
	return s.prefix + raw
}

type recordingSink struct {
	saved []models.UnansweredQuestion
	err   error
}

func (s *recordingSink) Save(_ context.Context, q models.UnansweredQuestion) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, q)
	return nil
}

type fixture struct {
	orchestrator *Orchestrator
	sink         *recordingSink
	answerer     *stubDocAnswerer
	localizer    *passthroughLocalizer
	history      *MemoryHistoryStore
}

func newFixture(t *testing.T, label intent.Intent, escalateGeneral bool) *fixture {
	t.Helper()
	log := logger.NewNoOpLogger()
	sink := &recordingSink{}
	answerer := &stubDocAnswerer{response: "document-grounded answer"}
	localizer := &passthroughLocalizer{prefix: "[localized] "}
	history := NewMemoryHistoryStore()

	gate := escalation.NewGate(sink, nil, escalation.Policy{EscalateGeneralInquiry: escalateGeneral}, log)
	o := New(&stubClassifier{label: label}, catalog.NewResponder(catalog.New(), nil, log), answerer, gate, localizer, history, log)

	return &fixture{orchestrator: o, sink: sink, answerer: answerer, localizer: localizer, history: history}
}

func TestProcess_CannedAnswerSuccess(t *testing.T) {
	f := newFixture(t, intent.CheckBalance, true)

	result := f.orchestrator.Process(context.Background(), models.ChatRequest{
		SessionID: "sess-1",
		Message:   "how do I check my balance?",
		Language:  "hi",
	})

	assert.Equal(t, models.StatusSuccess, result.Status)
	assert.Equal(t, "check_balance", result.Intent)
	assert.False(t, result.Escalated)
	assert.Contains(t, result.Response, "[localized] ")
	assert.Contains(t, result.Response, "9212632199")
	assert.Equal(t, "hi", result.Language)
	assert.Equal(t, "how do I check my balance?", result.UserMessage)
	assert.True(t, result.IsBanking)
	assert.Empty(t, f.sink.saved)
	assert.Equal(t, 0, f.answerer.calls)
}

func TestProcess_LoanEligibilityUsesDocumentAnswerer(t *testing.T) {
	f := newFixture(t, intent.LoanEligibility, true)

	result := f.orchestrator.Process(context.Background(), models.ChatRequest{
		SessionID: "sess-1",
		Message:   "am I eligible for a crop loan?",
	})

	assert.Equal(t, models.StatusSuccess, result.Status)
	assert.Equal(t, 1, f.answerer.calls)
	assert.Equal(t, "[localized] document-grounded answer", result.Response)
}

func TestProcess_LoanEligibilityFallsBackToCatalogWithoutAnswerer(t *testing.T) {
	f := newFixture(t, intent.LoanEligibility, true)
	f.orchestrator.answerer = nil

	result := f.orchestrator.Process(context.Background(), models.ChatRequest{
		SessionID: "sess-1",
		Message:   "am I eligible for a crop loan?",
	})

	assert.Equal(t, models.StatusSuccess, result.Status)
	assert.Contains(t, result.Response, "Kisan Credit Card")
}

func TestProcess_UnrecognizedEscalates(t *testing.T) {
	f := newFixture(t, intent.Unrecognized, true)

	result := f.orchestrator.Process(context.Background(), models.ChatRequest{
		SessionID: "sess-1",
		Message:   "what is the meaning of life?",
	})

	assert.Equal(t, models.StatusUnrecognizedSaved, result.Status)
	assert.True(t, result.Escalated)
	assert.True(t, result.SavedAsUnanswered)
	// Completed turns always count as banking traffic, even escalated ones.
	assert.True(t, result.IsBanking)
	assert.Equal(t, escalation.UnrecognizedSavedMessage, result.Response)
	if assert.Len(t, f.sink.saved, 1) {
		assert.Equal(t, "what is the meaning of life?", f.sink.saved[0].Question)
	}
	// Escalation messages bypass the localizer.
	assert.Equal(t, 0, f.localizer.calls)
}

func TestProcess_GeneralInquiryPolicy(t *testing.T) {
	t.Run("escalates when policy says so", func(t *testing.T) {
		f := newFixture(t, intent.GeneralInquiry, true)

		result := f.orchestrator.Process(context.Background(), models.ChatRequest{
			SessionID: "sess-1",
			Message:   "tell me about banking",
		})

		assert.Equal(t, models.StatusGeneralInquirySaved, result.Status)
		assert.True(t, result.Escalated)
		assert.Len(t, f.sink.saved, 1)
	})

	t.Run("answers with welcome script when policy disables escalation", func(t *testing.T) {
		f := newFixture(t, intent.GeneralInquiry, false)

		result := f.orchestrator.Process(context.Background(), models.ChatRequest{
			SessionID: "sess-1",
			Message:   "hello",
		})

		assert.Equal(t, models.StatusSuccess, result.Status)
		assert.False(t, result.Escalated)
		assert.Contains(t, result.Response, "Welcome to Bank of Maharashtra!")
		assert.Empty(t, f.sink.saved)
	})
}

// escalatingAnswerSource plays the role of a general-inquiry handler that
// decided the message is actually a concrete question.
type escalatingAnswerSource struct {
	question string
}

func (s escalatingAnswerSource) Respond(_ context.Context, _ intent.Intent, _ string) catalog.Answer {
	return catalog.Answer{NeedsEscalation: true, Question: s.question}
}

func TestProcess_AnswerFlaggedForEscalationSavesQuestion(t *testing.T) {
	f := newFixture(t, intent.GeneralInquiry, false)
	f.orchestrator.answers = escalatingAnswerSource{question: "what is the processing fee for a crop loan?"}

	result := f.orchestrator.Process(context.Background(), models.ChatRequest{
		SessionID: "sess-1",
		Message:   "tell me about fees",
	})

	assert.Equal(t, models.StatusSpecificQuestionSaved, result.Status)
	assert.True(t, result.Escalated)
	assert.True(t, result.SavedAsUnanswered)
	assert.Equal(t, escalation.SpecificQuestionSavedMessage, result.Response)
	if assert.Len(t, f.sink.saved, 1) {
		// The extracted question, not the raw message, goes to the sink.
		assert.Equal(t, "what is the processing fee for a crop loan?", f.sink.saved[0].Question)
	}
	assert.Equal(t, 0, f.localizer.calls)
}

func TestProcess_EscalationWithoutQuestionFallsBackToMessage(t *testing.T) {
	f := newFixture(t, intent.GeneralInquiry, false)
	f.orchestrator.answers = escalatingAnswerSource{}

	f.orchestrator.Process(context.Background(), models.ChatRequest{
		SessionID: "sess-1",
		Message:   "tell me about fees",
	})

	if assert.Len(t, f.sink.saved, 1) {
		assert.Equal(t, "tell me about fees", f.sink.saved[0].Question)
	}
}

func TestProcess_SinkFailureStillTerminatesSuccessfully(t *testing.T) {
	f := newFixture(t, intent.Unrecognized, true)
	f.sink.err = errors.New("sink down")

	result := f.orchestrator.Process(context.Background(), models.ChatRequest{
		SessionID: "sess-1",
		Message:   "???",
	})

	assert.Equal(t, models.StatusUnrecognizedSaved, result.Status)
	assert.True(t, result.Escalated)
	assert.False(t, result.SavedAsUnanswered)
	assert.Equal(t, escalation.UnrecognizedSaveFailedMessage, result.Response)
}

func TestProcess_RecordsConversation(t *testing.T) {
	f := newFixture(t, intent.MiniStatement, true)

	f.orchestrator.Process(context.Background(), models.ChatRequest{
		SessionID: "sess-1",
		Message:   "show my last transactions",
	})

	entries, err := f.history.History(context.Background(), "sess-1")
	assert.NoError(t, err)
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "user", entries[0].Role)
		assert.Equal(t, "show my last transactions", entries[0].Text)
		assert.Equal(t, "mini_statement", entries[0].Intent)
		assert.Equal(t, "assistant", entries[1].Role)
		assert.Equal(t, models.StatusSuccess, entries[1].Status)
	}
}

func TestProcess_NoSessionSkipsHistory(t *testing.T) {
	f := newFixture(t, intent.MiniStatement, true)

	result := f.orchestrator.Process(context.Background(), models.ChatRequest{
		Message: "show my last transactions",
	})

	assert.Equal(t, models.StatusSuccess, result.Status)
	entries, _ := f.history.History(context.Background(), "")
	assert.Empty(t, entries)
}

func TestProcess_DefaultsLanguage(t *testing.T) {
	f := newFixture(t, intent.CheckBalance, true)

	result := f.orchestrator.Process(context.Background(), models.ChatRequest{
		SessionID: "sess-1",
		Message:   "balance",
	})

	assert.Equal(t, "en", result.Language)
}

type panickingClassifier struct{}

func (panickingClassifier) Classify(_ context.Context, _, _ string) intent.Intent {
	panic("boom")
}

func TestProcess_PanicBecomesErrorResult(t *testing.T) {
	f := newFixture(t, intent.CheckBalance, true)
	f.orchestrator.classifier = panickingClassifier{}

	result := f.orchestrator.Process(context.Background(), models.ChatRequest{
		SessionID: "sess-1",
		Message:   "balance",
	})

	assert.Equal(t, models.StatusError, result.Status)
	assert.Contains(t, result.Response, "internal error")
}
