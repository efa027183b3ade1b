// internal/common/errors/handler.go
package errors

import (
	"net/http"
	"time"
)

// Handler normalizes pipeline errors and maps them to HTTP responses.
type Handler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewHandler(logger Logger) *Handler {
	return &Handler{logger: logger}
}

// Normalize ensures we always have a StandardError
func (h *Handler) Normalize(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeOrchestratorError,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// Handle logs the error and returns the HTTP status it should surface as.
func (h *Handler) Handle(err error, stage string) (*StandardError, int) {
	stdErr := h.Normalize(err)

	h.logger.Error("pipeline stage failed", map[string]interface{}{
		"stage":      stage,
		"error_code": string(stdErr.Code),
		"message":    stdErr.Message,
		"details":    stdErr.Details,
		"retryable":  stdErr.Retryable,
	})

	return stdErr, HTTPStatus(stdErr.Code)
}

// GetRetryCount returns how many attempts a failed external call deserves.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeIndexQueryFailed,
		ErrCodeEmbeddingFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeClassificationFailed,
		ErrCodeAnswerGenerationFailed:
		return 3 // Retryable technical errors

	case ErrCodeIndexQueryTimeout,
		ErrCodeClassificationTimeout:
		return 2 // Partial retry for timeouts

	default:
		return 0 // Business errors: no retry
	}
}

// HTTPStatus maps an internal error code to the status a handler should write.
// Most pipeline failures degrade to a fallback answer and never reach here;
// this covers the cases where the request itself cannot be served.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed:
		return http.StatusServiceUnavailable
	case ErrCodeClassificationTimeout, ErrCodeIndexQueryTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
