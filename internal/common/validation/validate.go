package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const MaxMessageLength = 4000

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

var (
	phonePattern    = regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,}$`)
	languagePattern = regexp.MustCompile(`^[a-z]{2,3}(-[A-Za-z]{2,4})?$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// ValidateChatInput checks the user-facing fields of a chat request before the
// pipeline runs. Only the message is required; the session id may be absent
// (anonymous turns skip transcript recording) and the language defaults later.
func ValidateChatInput(message, language string) *ValidationResult {
	errors := []ValidationError{}

	if strings.TrimSpace(message) == "" {
		errors = append(errors, ValidationError{
			Field:   "message",
			Message: "required field missing",
			Code:    "REQUIRED_FIELD_MISSING",
		})
	} else if utf8.RuneCountInString(message) > MaxMessageLength {
		errors = append(errors, ValidationError{
			Field:   "message",
			Message: fmt.Sprintf("value must be at most %d characters", MaxMessageLength),
			Code:    "MAX_LENGTH_VIOLATION",
		})
	}

	if language != "" && !ValidateLanguageTag(language) {
		errors = append(errors, ValidationError{
			Field:   "language",
			Message: "invalid language tag",
			Code:    "INVALID_LANGUAGE",
		})
	}

	return &ValidationResult{
		Valid:  len(errors) == 0,
		Errors: errors,
	}
}

// ValidateLanguageTag accepts BCP 47 style tags such as "hi", "mr-IN", "en".
func ValidateLanguageTag(tag string) bool {
	return languagePattern.MatchString(tag)
}

// ValidatePhone validates basic phone number format
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ValidateEmail validates basic email format
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}
