// Package speech wraps the external ASR/TTS service. Audio handling itself is
// the service's problem; this package only moves bytes and language codes.
package speech

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	httpclient "banking-assistant/internal/common/http"
	"banking-assistant/internal/common/logger"
)

// SupportedLanguages maps language names to the codes the pipeline accepts.
var SupportedLanguages = map[string]string{
	"hindi":     "hi",
	"english":   "en",
	"marathi":   "mr",
	"tamil":     "ta",
	"telugu":    "te",
	"gujarati":  "gu",
	"kannada":   "kn",
	"malayalam": "ml",
	"bengali":   "bn",
	"punjabi":   "pa",
	"odia":      "or",
	"assamese":  "as",
}

// asrLanguages are the codes the ASR model actually supports; others degrade
// to English transcription.
var asrLanguages = map[string]bool{
	"hi": true, "en": true, "mr": true, "ta": true, "te": true,
	"gu": true, "kn": true, "ml": true, "bn": true,
}

// ASRLanguage maps a requested language code to one the ASR model supports.
func ASRLanguage(code string) string {
	if asrLanguages[code] {
		return code
	}
	return "en"
}

// Client calls the external speech service.
type Client struct {
	client  *httpclient.Client
	baseURL string
	logger  logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		client:  httpclient.NewClient(timeout),
		baseURL: baseURL,
		logger:  log,
	}
}

// Transcribe converts audio bytes to text in the given language.
func (c *Client) Transcribe(ctx context.Context, audio []byte, languageCode string) (string, error) {
	payload := map[string]interface{}{
		"audio_base64": base64.StdEncoding.EncodeToString(audio),
		"language":     ASRLanguage(languageCode),
	}

	var response struct {
		Text  string `json:"text"`
		Error string `json:"error,omitempty"`
	}
	if err := c.client.PostJSON(ctx, c.baseURL+"/api/speech/transcribe", payload, &response); err != nil {
		return "", fmt.Errorf("speech to text: %w", err)
	}
	if response.Error != "" {
		return "", fmt.Errorf("speech to text: %s", response.Error)
	}
	return response.Text, nil
}

// Synthesize converts text to audio bytes in the given language.
func (c *Client) Synthesize(ctx context.Context, text, languageCode string) ([]byte, error) {
	payload := map[string]interface{}{
		"text":     text,
		"language": languageCode,
	}

	var response struct {
		AudioBase64 string `json:"audio_base64"`
		Error       string `json:"error,omitempty"`
	}
	if err := c.client.PostJSON(ctx, c.baseURL+"/api/speech/synthesize", payload, &response); err != nil {
		return nil, fmt.Errorf("text to speech: %w", err)
	}
	if response.Error != "" {
		return nil, fmt.Errorf("text to speech: %s", response.Error)
	}

	audio, err := base64.StdEncoding.DecodeString(response.AudioBase64)
	if err != nil {
		return nil, fmt.Errorf("text to speech: decode audio: %w", err)
	}
	return audio, nil
}
