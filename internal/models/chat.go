// internal/models/chat.go
package models

import "time"

// ChatRequest is the inbound payload for a single conversational turn.
type ChatRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
	Language  string `json:"language,omitempty"`
	// MobileNo, when supplied, takes precedence over the session lookup for
	// escalation follow-up.
	MobileNo string `json:"mobileNo,omitempty"`
}

// Status values a processed turn can end with.
const (
	StatusSuccess               = "success"
	StatusUnrecognizedSaved     = "unrecognized_saved"
	StatusGeneralInquirySaved   = "general_inquiry_saved"
	StatusSpecificQuestionSaved = "specific_question_saved"
	StatusError                 = "error"
)

// ChatResult is the outcome of one pipeline run.
type ChatResult struct {
	SessionID   string `json:"sessionId"`
	Status      string `json:"status"`
	Intent      string `json:"intent"`
	Response    string `json:"response"`
	UserMessage string `json:"userMessage"`
	Language    string `json:"language"`
	// IsBanking is true for every turn the pipeline completed, including
	// escalated ones; only the error path leaves it false.
	IsBanking bool `json:"isBanking"`
	// Escalated marks turns routed through the escalation gate;
	// SavedAsUnanswered marks whether the sink actually persisted the question.
	Escalated         bool          `json:"escalated"`
	SavedAsUnanswered bool          `json:"savedAsUnanswered"`
	Duration          time.Duration `json:"-"`
	Timestamp         time.Time     `json:"timestamp"`
}

// ConversationEntry is one stored turn of a session transcript.
type ConversationEntry struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Text      string    `json:"text"`
	Intent    string    `json:"intent,omitempty"`
	Status    string    `json:"status,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
