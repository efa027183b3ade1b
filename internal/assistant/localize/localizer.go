// Package localize reformats canned answers into the user's language without
// changing their content.
package localize

import (
	"context"
	"fmt"
	"strings"

	"banking-assistant/internal/common/genai"
	"banking-assistant/internal/common/logger"
)

// Localizer rewrites a raw answer in the requested language. A failed or
// empty formatting call degrades to the raw answer, so the user always gets
// the factual content.
type Localizer struct {
	generator genai.Generator
	logger    logger.Logger
}

func NewLocalizer(generator genai.Generator, log logger.Logger) *Localizer {
	return &Localizer{
		generator: generator,
		logger:    log,
	}
}

// Localize formats raw for the language. English content passes through the
// formatter too, which smooths the canned scripts into conversational prose.
func (l *Localizer) Localize(ctx context.Context, raw, language, userQuery string) string {
	formatted, err := l.generator.Generate(ctx, buildFormatPrompt(raw, language, userQuery))
	if err != nil {
		l.logger.WithError(err).Warn("response localization failed, returning raw answer", map[string]interface{}{
			"language": language,
		})
		return raw
	}
	if strings.TrimSpace(formatted) == "" {
		return raw
	}
	return formatted
}

func buildFormatPrompt(raw, language, userQuery string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Format the following banking information response in %s language in a helpful and conversational manner.\n", language)
	b.WriteString("Make sure the response is accurate, clear, and maintains the original information.\n")
	b.WriteString("Critical instructions: the response must be based solely on the raw response given to you. Do not add anything deviating from the original content. Keep phone numbers, amounts, SMS keywords and URLs exactly as written.\n")
	fmt.Fprintf(&b, "Original query: %s\n", userQuery)
	fmt.Fprintf(&b, "Raw response: %s\n\n", raw)
	fmt.Fprintf(&b, "Provide a well-formatted, helpful response in %s that a bank customer would understand easily.\n", language)
	b.WriteString("Keep the response concise but informative.\n")
	b.WriteString("Write flowing sentences only: no line breaks, bullet points or break markers, the text is read aloud.\n")
	return b.String()
}
