// internal/common/genai/client_test.go
package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) *Config {
	return &Config{
		BaseURL:          baseURL,
		GenerateTimeout:  5 * time.Second,
		EmbeddingTimeout: 5 * time.Second,
		MaxRetries:       2,
	}
}

func TestGenerate_Success(t *testing.T) {
	var gotBody map[string]interface{}
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/generate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]string{"text": "  check_balance\n"})
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.APIKey = "secret"
	cfg.MaxTokens = 50
	cfg.Temperature = 0.2
	client := NewClient(cfg)

	text, err := client.Generate(context.Background(), "classify this")
	require.NoError(t, err)
	assert.Equal(t, "check_balance", text)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "classify this", gotBody["prompt"])
	assert.Equal(t, float64(50), gotBody["max_tokens"])
	assert.Equal(t, 0.2, gotBody["temperature"])
}

func TestGenerate_RetriesOnServerError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"text": "recovered"})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))

	text, err := client.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "recovered", text)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGenerate_ExhaustedRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))

	_, err := client.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestGenerate_EmptyCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"text": "   "})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))

	_, err := client.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestGenerate_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(map[string]string{"text": "too late"})
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.GenerateTimeout = 20 * time.Millisecond
	client := NewClient(cfg)

	_, err := client.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrRequestTimeout)
}

func TestEmbed_Success(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/embeddings", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"embeddings": [][]float32{{0.1, 0.2}, {0.3, 0.4}},
		})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))

	vectors, err := client.Embed(context.Background(), []string{"first", "second"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, []float32{0.1, 0.2}, vectors[0])
	assert.Equal(t, []interface{}{"first", "second"}, gotBody["input"])
}

func TestEmbed_CountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"embeddings": [][]float32{{0.1}},
		})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))

	_, err := client.Embed(context.Background(), []string{"first", "second"})
	assert.ErrorIs(t, err, ErrEmbeddingFailed)
}

func TestEmbed_EmptyInput(t *testing.T) {
	client := NewClient(testConfig("http://unused.invalid"))

	vectors, err := client.Embed(context.Background(), nil)
	assert.NoError(t, err)
	assert.Nil(t, vectors)
}
