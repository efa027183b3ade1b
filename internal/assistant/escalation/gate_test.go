// internal/assistant/escalation/gate_test.go
package escalation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"banking-assistant/internal/assistant/intent"
	"banking-assistant/internal/common/logger"
	"banking-assistant/internal/models"
)

type countingSink struct {
	saved []models.UnansweredQuestion
	err   error
}

func (s *countingSink) Save(_ context.Context, q models.UnansweredQuestion) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, q)
	return nil
}

type stubLookup struct {
	mobileNo string
	err      error
	calls    int
}

func (s *stubLookup) MobileNo(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.mobileNo, s.err
}

func newTestGate(sink QuestionSink, lookup PhoneLookup, policy Policy) *Gate {
	return NewGate(sink, lookup, policy, logger.NewNoOpLogger())
}

func TestGate_ShouldEscalate(t *testing.T) {
	escalating := newTestGate(&countingSink{}, nil, Policy{EscalateGeneralInquiry: true})
	answering := newTestGate(&countingSink{}, nil, Policy{EscalateGeneralInquiry: false})

	assert.True(t, escalating.ShouldEscalate(intent.Unrecognized))
	assert.True(t, escalating.ShouldEscalate(intent.GeneralInquiry))
	assert.False(t, escalating.ShouldEscalate(intent.CheckBalance))

	assert.True(t, answering.ShouldEscalate(intent.Unrecognized))
	assert.False(t, answering.ShouldEscalate(intent.GeneralInquiry))
}

func TestGate_UnrecognizedInvokesSinkOnceWithOriginalText(t *testing.T) {
	sink := &countingSink{}
	gate := newTestGate(sink, nil, Policy{})

	result := gate.EscalateUnrecognized(context.Background(), "sess-1", "xyz", "")

	assert.True(t, result.Saved)
	assert.Equal(t, models.StatusUnrecognizedSaved, result.Status)
	assert.Equal(t, UnrecognizedSavedMessage, result.Message)
	if assert.Len(t, sink.saved, 1) {
		q := sink.saved[0]
		assert.Equal(t, "xyz", q.Question)
		assert.Equal(t, "sess-1", q.SessionID)
		assert.Equal(t, "unknown", q.MobileNo)
		assert.Equal(t, models.ReasonUnrecognized, q.Reason)
		assert.True(t, q.NotifyUser)
	}
}

func TestGate_SinkFailureDegradesToSupportMessage(t *testing.T) {
	gate := newTestGate(&countingSink{err: errors.New("api down")}, nil, Policy{})

	result := gate.EscalateUnrecognized(context.Background(), "sess-1", "xyz", "")

	assert.False(t, result.Saved)
	assert.Equal(t, models.StatusUnrecognizedSaved, result.Status)
	assert.Equal(t, UnrecognizedSaveFailedMessage, result.Message)
	assert.Contains(t, result.Message, "1800-233-4526")
}

func TestGate_GeneralInquiryMessages(t *testing.T) {
	t.Run("saved", func(t *testing.T) {
		gate := newTestGate(&countingSink{}, nil, Policy{EscalateGeneralInquiry: true})
		result := gate.EscalateGeneralInquiry(context.Background(), "sess-1", "how do loans work?", "")
		assert.True(t, result.Saved)
		assert.Equal(t, models.StatusGeneralInquirySaved, result.Status)
		assert.Equal(t, GeneralInquirySavedMessage, result.Message)
	})

	t.Run("save failed", func(t *testing.T) {
		gate := newTestGate(&countingSink{err: errors.New("down")}, nil, Policy{EscalateGeneralInquiry: true})
		result := gate.EscalateGeneralInquiry(context.Background(), "sess-1", "how do loans work?", "")
		assert.False(t, result.Saved)
		assert.Equal(t, SaveFailedMessage, result.Message)
	})
}

func TestGate_SpecificQuestion(t *testing.T) {
	sink := &countingSink{}
	gate := newTestGate(sink, nil, Policy{})

	result := gate.EscalateSpecificQuestion(context.Background(), "sess-1", "what is the FD premature withdrawal penalty?", "")

	assert.True(t, result.Saved)
	assert.Equal(t, models.StatusSpecificQuestionSaved, result.Status)
	assert.Equal(t, SpecificQuestionSavedMessage, result.Message)
	if assert.Len(t, sink.saved, 1) {
		assert.Equal(t, models.ReasonSpecificQuestion, sink.saved[0].Reason)
	}
}

func TestGate_PhoneResolution(t *testing.T) {
	tests := []struct {
		name      string
		sessionID string
		explicit  string
		lookup    *stubLookup
		expected  string
		lookupHit int
	}{
		{
			name:      "explicit number wins over lookup",
			sessionID: "sess-1",
			explicit:  "9876543210",
			lookup:    &stubLookup{mobileNo: "1111111111"},
			expected:  "9876543210",
			lookupHit: 0,
		},
		{
			name:      "lookup used when no explicit number",
			sessionID: "sess-1",
			lookup:    &stubLookup{mobileNo: "9876543210"},
			expected:  "9876543210",
			lookupHit: 1,
		},
		{
			name:      "lookup failure falls back to unknown",
			sessionID: "sess-1",
			lookup:    &stubLookup{err: errors.New("lookup down")},
			expected:  "unknown",
			lookupHit: 1,
		},
		{
			name:      "empty lookup result falls back to unknown",
			sessionID: "sess-1",
			lookup:    &stubLookup{mobileNo: "  "},
			expected:  "unknown",
			lookupHit: 1,
		},
		{
			name:     "no session skips lookup",
			lookup:   &stubLookup{mobileNo: "9876543210"},
			expected: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &countingSink{}
			gate := newTestGate(sink, tt.lookup, Policy{})

			gate.EscalateUnrecognized(context.Background(), tt.sessionID, "q", tt.explicit)

			if assert.Len(t, sink.saved, 1) {
				assert.Equal(t, tt.expected, sink.saved[0].MobileNo)
			}
			assert.Equal(t, tt.lookupHit, tt.lookup.calls)
		})
	}
}
