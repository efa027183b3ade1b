// internal/common/genai/client.go
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var (
	ErrGenerationFailed = errors.New("GENERATION_FAILED")
	ErrRequestTimeout   = errors.New("GENAI_REQUEST_TIMEOUT")
	ErrEmbeddingFailed  = errors.New("EMBEDDING_FAILED")
)

// Generator produces free-form text from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Embedder maps texts to fixed-dimension vectors.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

type Config struct {
	BaseURL          string
	APIKey           string
	GenerateTimeout  time.Duration
	EmbeddingTimeout time.Duration
	MaxRetries       int
	MaxTokens        int
	Temperature      float64
}

// Client talks to the GenAI service over HTTP. It implements both Generator
// and Embedder.
type Client struct {
	config *Config
	client *http.Client
}

func NewClient(config *Config) *Client {
	if config.MaxTokens == 0 {
		config.MaxTokens = 1000
	}
	return &Client{
		config: config,
		// No client-level timeout: each call is bounded by its own context.
		client: &http.Client{},
	}
}

// Generate calls the generation endpoint and returns the trimmed output text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if deadline, ok := ctx.Deadline(); !ok || time.Until(deadline) > c.config.GenerateTimeout {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.GenerateTimeout)
		defer cancel()
	}

	requestBody := map[string]interface{}{
		"prompt":      prompt,
		"max_tokens":  c.config.MaxTokens,
		"temperature": c.config.Temperature,
	}

	respBody, err := c.post(ctx, "/api/ai/generate", requestBody, ErrGenerationFailed)
	if err != nil {
		return "", err
	}

	var apiResponse struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(respBody, &apiResponse); err != nil {
		return "", fmt.Errorf("%w: decode error: %v", ErrGenerationFailed, err)
	}

	text := strings.TrimSpace(apiResponse.Text)
	if text == "" {
		return "", fmt.Errorf("%w: empty completion", ErrGenerationFailed)
	}

	return text, nil
}

// Embed calls the embedding endpoint for a batch of texts.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	if deadline, ok := ctx.Deadline(); !ok || time.Until(deadline) > c.config.EmbeddingTimeout {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.EmbeddingTimeout)
		defer cancel()
	}

	requestBody := map[string]interface{}{
		"input": texts,
	}

	respBody, err := c.post(ctx, "/api/ai/embeddings", requestBody, ErrEmbeddingFailed)
	if err != nil {
		return nil, err
	}

	var apiResponse struct {
		Embeddings [][]float32 `json:"embeddings"`
	}
	if err := json.Unmarshal(respBody, &apiResponse); err != nil {
		return nil, fmt.Errorf("%w: decode error: %v", ErrEmbeddingFailed, err)
	}

	if len(apiResponse.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts", ErrEmbeddingFailed, len(apiResponse.Embeddings), len(texts))
	}

	return apiResponse.Embeddings, nil
}

func (c *Client) post(ctx context.Context, path string, requestBody map[string]interface{}, failure error) ([]byte, error) {
	body, _ := json.Marshal(requestBody)

	var respBody []byte
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff between retries
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ErrRequestTimeout
			}
		}

		req, err := http.NewRequestWithContext(ctx, "POST", c.config.BaseURL+path, bytes.NewBuffer(body))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", failure, err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.config.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
		}

		var resp *http.Response
		resp, lastErr = c.client.Do(req)

		if ctx.Err() != nil ||
			errors.Is(lastErr, context.DeadlineExceeded) ||
			errors.Is(lastErr, context.Canceled) {
			return nil, ErrRequestTimeout
		}

		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				var readErr error
				respBody, readErr = readAll(resp)
				resp.Body.Close()
				if readErr == nil {
					return respBody, nil
				}
				lastErr = readErr
				continue
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
		}
	}

	if ctx.Err() == context.DeadlineExceeded {
		return nil, ErrRequestTimeout
	}
	return nil, fmt.Errorf("%w: %v", failure, lastErr)
}

func readAll(resp *http.Response) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
