// internal/assistant/localize/localizer_test.go
package localize

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"banking-assistant/internal/common/logger"
)

type stubGenerator struct {
	response string
	err      error
	prompts  []string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestLocalizer_Success(t *testing.T) {
	gen := &stubGenerator{response: "आपका बैलेंस चेक करने के लिए BAL लिखकर 9212632199 पर SMS भेजें।"}
	l := NewLocalizer(gen, logger.NewNoOpLogger())

	got := l.Localize(context.Background(), "Send SMS BAL to 9212632199", "hi", "balance kaise dekhe")

	assert.Equal(t, gen.response, got)
	if assert.Len(t, gen.prompts, 1) {
		assert.Contains(t, gen.prompts[0], "hi")
		assert.Contains(t, gen.prompts[0], "Send SMS BAL to 9212632199")
		assert.Contains(t, gen.prompts[0], "balance kaise dekhe")
		assert.Contains(t, gen.prompts[0], "phone numbers, amounts, SMS keywords and URLs exactly as written")
	}
}

// echoGenerator returns the raw answer embedded in the prompt unchanged, the
// way a model following the preservation instruction would for entities.
type echoGenerator struct {
	prompts []string
}

func (e *echoGenerator) Generate(_ context.Context, prompt string) (string, error) {
	e.prompts = append(e.prompts, prompt)
	return prompt[strings.Index(prompt, "Raw response:"):], nil
}

func TestLocalizer_PreservesContactNumbers(t *testing.T) {
	raw := "For help call customer care 1800-233-4526 or send SMS BLOCK to 9212332199."
	gen := &echoGenerator{}
	l := NewLocalizer(gen, logger.NewNoOpLogger())

	got := l.Localize(context.Background(), raw, "mr", "card harvli ahe")

	assert.Contains(t, got, "1800-233-4526")
	assert.Contains(t, got, "9212332199")
	if assert.Len(t, gen.prompts, 1) {
		// The literal numbers reach the model next to the instruction that
		// forbids rewriting them.
		assert.Contains(t, gen.prompts[0], "1800-233-4526")
		assert.Contains(t, gen.prompts[0], "phone numbers, amounts, SMS keywords and URLs exactly as written")
	}
}

func TestLocalizer_FailureReturnsRawAnswer(t *testing.T) {
	raw := "Send SMS BAL to 9212632199"
	l := NewLocalizer(&stubGenerator{err: errors.New("llm down")}, logger.NewNoOpLogger())

	assert.Equal(t, raw, l.Localize(context.Background(), raw, "mr", "query"))
}

func TestLocalizer_EmptyCompletionReturnsRawAnswer(t *testing.T) {
	raw := "Send SMS BAL to 9212632199"
	l := NewLocalizer(&stubGenerator{response: "   "}, logger.NewNoOpLogger())

	assert.Equal(t, raw, l.Localize(context.Background(), raw, "ta", "query"))
}
