// Package errors provides standardized error handling for the assistant pipeline.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeClassificationFailed  ErrorCode = "CLASSIFICATION_FAILED"
	ErrCodeClassificationTimeout ErrorCode = "CLASSIFICATION_TIMEOUT"

	ErrCodeEmbeddingFailed        ErrorCode = "EMBEDDING_FAILED"
	ErrCodeIndexQueryFailed       ErrorCode = "INDEX_QUERY_FAILED"
	ErrCodeIndexQueryTimeout      ErrorCode = "INDEX_QUERY_TIMEOUT"
	ErrCodeAnswerGenerationFailed ErrorCode = "ANSWER_GENERATION_FAILED"

	ErrCodeLocalizationFailed ErrorCode = "LOCALIZATION_FAILED"

	ErrCodeEscalationPersistFailed ErrorCode = "ESCALATION_PERSIST_FAILED"
	ErrCodeSessionLookupFailed     ErrorCode = "SESSION_LOOKUP_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeOrchestratorError ErrorCode = "ORCHESTRATOR_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewClassificationFailedError wraps a generation-service failure during intent
// recognition. The classifier absorbs it and returns the unrecognized intent.
func NewClassificationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeClassificationFailed,
		Message:   "Intent classification call failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmbeddingFailedError creates a retryable embedding-service error.
func NewEmbeddingFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmbeddingFailed,
		Message:   "Embedding call failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIndexQueryFailedError creates a retryable vector-index error.
func NewIndexQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexQueryFailed,
		Message:   "Vector index query failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIndexQueryTimeoutError marks a vector-index query that ran out of time.
func NewIndexQueryTimeoutError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexQueryTimeout,
		Message:   "Vector index query timed out",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewAnswerGenerationFailedError wraps a generation-service failure while
// answering from retrieved context.
func NewAnswerGenerationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAnswerGenerationFailed,
		Message:   "Answer generation call failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewLocalizationFailedError wraps a formatting-call failure. The localizer
// absorbs it and returns the raw answer unchanged.
func NewLocalizationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLocalizationFailed,
		Message:   "Response localization call failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEscalationPersistFailedError wraps a question-sink failure. The gate
// degrades to a "call support" message; the request still succeeds.
func NewEscalationPersistFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEscalationPersistFailed,
		Message:   "Failed to persist escalated question",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionLookupFailedError wraps a failed session-to-phone lookup. The gate
// still saves the question with an empty mobile number.
func NewSessionLookupFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionLookupFailed,
		Message:   "Session phone lookup failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionError creates a database connection error.
func NewDatabaseConnectionError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Failed to connect to database",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionError creates a query execution error.
func NewQueryExecutionError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a notification delivery error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Failed to send notification",
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"channel": channel},
		Timestamp: time.Now().UTC(),
	}
}

// NewOrchestratorError wraps any otherwise-unclassified pipeline failure.
func NewOrchestratorError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeOrchestratorError,
		Message:   "Unhandled pipeline error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
