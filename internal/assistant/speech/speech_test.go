// internal/assistant/speech/speech_test.go
package speech

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"banking-assistant/internal/common/logger"
)

func TestASRLanguage(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"hi", "hi"},
		{"mr", "mr"},
		{"en", "en"},
		{"pa", "en"}, // punjabi is a chat language but not an ASR language
		{"or", "en"},
		{"", "en"},
		{"xx", "en"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ASRLanguage(tt.code), "code %q", tt.code)
	}
}

func TestSupportedLanguagesHaveValidCodes(t *testing.T) {
	assert.Len(t, SupportedLanguages, 12)
	for name, code := range SupportedLanguages {
		assert.Len(t, code, 2, "language %s", name)
	}
}

func TestTranscribe(t *testing.T) {
	var gotPayload map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/speech/transcribe", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		_ = json.NewEncoder(w).Encode(map[string]string{"text": "mera balance kya hai"})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, logger.NewNoOpLogger())

	audio := []byte("fake audio bytes")
	text, err := client.Transcribe(context.Background(), audio, "pa")
	require.NoError(t, err)
	assert.Equal(t, "mera balance kya hai", text)
	assert.Equal(t, base64.StdEncoding.EncodeToString(audio), gotPayload["audio_base64"])
	// Unsupported ASR code degrades to English before the request goes out.
	assert.Equal(t, "en", gotPayload["language"])
}

func TestTranscribe_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "model overloaded"})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, logger.NewNoOpLogger())

	_, err := client.Transcribe(context.Background(), []byte("audio"), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestSynthesize(t *testing.T) {
	audioOut := []byte("synthesized audio")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/speech/synthesize", r.URL.Path)
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "aapka balance", payload["text"])
		assert.Equal(t, "hi", payload["language"])
		_ = json.NewEncoder(w).Encode(map[string]string{
			"audio_base64": base64.StdEncoding.EncodeToString(audioOut),
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, logger.NewNoOpLogger())

	audio, err := client.Synthesize(context.Background(), "aapka balance", "hi")
	require.NoError(t, err)
	assert.Equal(t, audioOut, audio)
}

func TestSynthesize_BadAudioPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"audio_base64": "not base64!!!"})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, logger.NewNoOpLogger())

	_, err := client.Synthesize(context.Background(), "text", "hi")
	assert.Error(t, err)
}

func TestTranscribe_HTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, logger.NewNoOpLogger())

	_, err := client.Transcribe(context.Background(), []byte("audio"), "hi")
	assert.Error(t, err)
}
