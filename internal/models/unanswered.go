// internal/models/unanswered.go
package models

import "time"

// UnansweredQuestion is a user question the assistant could not answer,
// persisted for staff follow-up.
type UnansweredQuestion struct {
	ID         string     `json:"id" db:"id"`
	SessionID  string     `json:"sessionId" db:"session_id"`
	MobileNo   string     `json:"mobileNo" db:"mobile_no"`
	Question   string     `json:"question" db:"question"`
	Reason     string     `json:"reason" db:"reason"` // unrecognized | general_inquiry | specific_question
	NotifyUser bool       `json:"notifyUser" db:"notify_user"`
	Status     string     `json:"status" db:"status"` // pending | answered
	Answer     string     `json:"answer,omitempty" db:"answer"`
	AnsweredBy string     `json:"answeredBy,omitempty" db:"answered_by"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	AnsweredAt *time.Time `json:"answeredAt,omitempty" db:"answered_at"`
}

const (
	QuestionStatusPending  = "pending"
	QuestionStatusAnswered = "answered"
)

const (
	ReasonUnrecognized     = "unrecognized"
	ReasonGeneralInquiry   = "general_inquiry"
	ReasonSpecificQuestion = "specific_question"
)
