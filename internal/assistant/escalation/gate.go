// Package escalation decides when a question must be handed to human staff
// and persists it for follow-up.
package escalation

import (
	"context"
	"strings"

	"banking-assistant/internal/assistant/intent"
	"banking-assistant/internal/common/logger"
	"banking-assistant/internal/common/metrics"
	"banking-assistant/internal/models"
)

// QuestionSink persists an escalated question for staff review.
type QuestionSink interface {
	Save(ctx context.Context, q models.UnansweredQuestion) error
}

// PhoneLookup resolves a session to the user's mobile number.
type PhoneLookup interface {
	MobileNo(ctx context.Context, sessionID string) (string, error)
}

// Policy controls which intents escalate.
type Policy struct {
	// EscalateGeneralInquiry routes general banking questions to staff
	// instead of answering with the welcome script.
	EscalateGeneralInquiry bool
}

// Result is the outcome of an escalation attempt.
type Result struct {
	Message string
	Status  string
	Saved   bool
}

// Gate persists escalated questions and produces the user-facing outcome
// message. Sink and lookup failures degrade to a "contact support" message;
// the request itself still succeeds.
type Gate struct {
	sink   QuestionSink
	lookup PhoneLookup
	policy Policy
	logger logger.Logger
}

func NewGate(sink QuestionSink, lookup PhoneLookup, policy Policy, log logger.Logger) *Gate {
	return &Gate{
		sink:   sink,
		lookup: lookup,
		policy: policy,
		logger: log,
	}
}

// ShouldEscalate reports whether label bypasses the catalog and goes to staff.
func (g *Gate) ShouldEscalate(label intent.Intent) bool {
	switch label {
	case intent.Unrecognized:
		return true
	case intent.GeneralInquiry:
		return g.policy.EscalateGeneralInquiry
	}
	return false
}

// EscalateUnrecognized saves a question the classifier could not place.
func (g *Gate) EscalateUnrecognized(ctx context.Context, sessionID, question, mobileNo string) Result {
	saved := g.save(ctx, sessionID, question, mobileNo, models.ReasonUnrecognized)
	if saved {
		return Result{Message: UnrecognizedSavedMessage, Status: models.StatusUnrecognizedSaved, Saved: true}
	}
	return Result{Message: UnrecognizedSaveFailedMessage, Status: models.StatusUnrecognizedSaved, Saved: false}
}

// EscalateGeneralInquiry saves a general banking question for expert review.
func (g *Gate) EscalateGeneralInquiry(ctx context.Context, sessionID, question, mobileNo string) Result {
	saved := g.save(ctx, sessionID, question, mobileNo, models.ReasonGeneralInquiry)
	if saved {
		return Result{Message: GeneralInquirySavedMessage, Status: models.StatusGeneralInquirySaved, Saved: true}
	}
	return Result{Message: SaveFailedMessage, Status: models.StatusGeneralInquirySaved, Saved: false}
}

// EscalateSpecificQuestion saves a question an answerer flagged as needing a
// human answer.
func (g *Gate) EscalateSpecificQuestion(ctx context.Context, sessionID, question, mobileNo string) Result {
	saved := g.save(ctx, sessionID, question, mobileNo, models.ReasonSpecificQuestion)
	if saved {
		return Result{Message: SpecificQuestionSavedMessage, Status: models.StatusSpecificQuestionSaved, Saved: true}
	}
	return Result{Message: SaveFailedMessage, Status: models.StatusSpecificQuestionSaved, Saved: false}
}

func (g *Gate) save(ctx context.Context, sessionID, question, explicitMobileNo, reason string) bool {
	mobileNo := g.resolveMobileNo(ctx, sessionID, explicitMobileNo)

	err := g.sink.Save(ctx, models.UnansweredQuestion{
		SessionID:  sessionID,
		MobileNo:   mobileNo,
		Question:   question,
		Reason:     reason,
		NotifyUser: true,
		Status:     models.QuestionStatusPending,
	})
	if err != nil {
		g.logger.WithError(err).Error("failed to persist escalated question", map[string]interface{}{
			"session_id": sessionID,
			"reason":     reason,
		})
		return false
	}

	metrics.EscalationsSaved.WithLabelValues(reason).Inc()
	g.logger.Info("question escalated", map[string]interface{}{
		"session_id": sessionID,
		"reason":     reason,
	})
	return true
}

// resolveMobileNo prefers an explicitly supplied number, then the session
// lookup, then the "unknown" placeholder.
func (g *Gate) resolveMobileNo(ctx context.Context, sessionID, explicit string) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	if sessionID == "" || g.lookup == nil {
		return "unknown"
	}
	mobileNo, err := g.lookup.MobileNo(ctx, sessionID)
	if err != nil {
		g.logger.WithError(err).Warn("session phone lookup failed", map[string]interface{}{
			"session_id": sessionID,
		})
		return "unknown"
	}
	if strings.TrimSpace(mobileNo) == "" {
		return "unknown"
	}
	return mobileNo
}
