// internal/assistant/intent/classifier.go
package intent

import (
	"context"
	"fmt"
	"strings"

	"banking-assistant/internal/common/genai"
	"banking-assistant/internal/common/logger"
	"banking-assistant/internal/common/metrics"
)

// Classifier maps a user message to an Intent using the generation service.
// Any failure degrades to Unrecognized; classification never returns an error
// to the caller.
type Classifier struct {
	generator genai.Generator
	logger    logger.Logger
}

func NewClassifier(generator genai.Generator, log logger.Logger) *Classifier {
	return &Classifier{
		generator: generator,
		logger:    log,
	}
}

// Classify returns the intent for the message. The classifier trusts only the
// closed set: unexpected model output and call failures both map to
// Unrecognized.
func (c *Classifier) Classify(ctx context.Context, message, language string) Intent {
	prompt := buildClassificationPrompt(message, language)

	raw, err := c.generator.Generate(ctx, prompt)
	if err != nil {
		c.logger.WithError(err).Warn("intent classification call failed", map[string]interface{}{
			"language": language,
		})
		metrics.IntentClassified.WithLabelValues(string(Unrecognized)).Inc()
		return Unrecognized
	}

	label := Parse(normalizeLabel(raw))

	c.logger.Info("intent classified", map[string]interface{}{
		"intent":   string(label),
		"language": language,
	})
	metrics.IntentClassified.WithLabelValues(string(label)).Inc()

	return label
}

// normalizeLabel strips the quoting and casing noise models add around labels.
func normalizeLabel(raw string) string {
	label := strings.ToLower(strings.TrimSpace(raw))
	label = strings.Trim(label, "\"'`.")
	// Some models answer in a sentence; keep the last whitespace-separated
	// token, which in practice is the label.
	if fields := strings.Fields(label); len(fields) > 1 {
		label = fields[len(fields)-1]
	}
	return label
}

func buildClassificationPrompt(message, language string) string {
	var b strings.Builder
	b.WriteString("You are a banking assistant. Analyze the user's query and determine which banking service they need.\n\n")
	fmt.Fprintf(&b, "User query: %q\n", message)
	fmt.Fprintf(&b, "Language: %s\n\n", language)
	b.WriteString("Available banking functions:\n")
	for _, svc := range Services() {
		if svc == GeneralInquiry {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", svc, Descriptions[svc])
	}
	b.WriteString("\nReturn ONLY the function name from the list above that best matches the user's intent.\n")
	b.WriteString("If the query is just a greeting or asks what you can help with (like \"hi\" or \"what can you do\"), return \"general_inquiry\".\n")
	b.WriteString("For anything else (ambiguous requests, questions needing specific details, or topics outside banking), return \"unrecognized_intent\".\n")
	return b.String()
}
