package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/crawlproduct/backend/internal/domain"
)

// maxErrorBody caps how much of an error response is carried in messages.
const maxErrorBody = 512

// Config holds the settings for the completion backend.
type Config struct {
	Endpoint    string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
	PerMinute   int
}

// Client talks to an OpenAI-compatible chat-completions endpoint. One
// request per Complete call; no batching, no retry, no streaming.
type Client struct {
	httpClient  *http.Client
	endpoint    string
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	rateLimiter *rate.Limiter
}

// NewClient creates a new completion client. Calls are rate limited so a
// page with many variants cannot flood the backend.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	perMinute := cfg.PerMinute
	if perMinute <= 0 {
		perMinute = 60
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		endpoint:    cfg.Endpoint,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		rateLimiter: rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute),
	}
}

type (
	chatRequest struct {
		Model       string    `json:"model"`
		Messages    []message `json:"messages"`
		MaxTokens   int       `json:"max_tokens"`
		Temperature float64   `json:"temperature"`
	}
	message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	chatResponse struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
)

// Complete sends one system+user instruction pair and returns the backend's
// single textual completion. An empty system string sends a user-only
// prompt. Non-success responses and timeouts yield domain.ErrCompletionFailed;
// callers treat that as a soft failure.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	var messages []message
	if system != "" {
		messages = append(messages, message{Role: "system", Content: system})
	}
	messages = append(messages, message{Role: "user", Content: user})

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	// Azure deployments authenticate with api-key instead of a bearer token.
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCompletionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("%w: status %d, body: %s", domain.ErrCompletionFailed, resp.StatusCode, string(errBody))
	}

	var completion chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", domain.ErrCompletionFailed, err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: response carries no choices", domain.ErrCompletionFailed)
	}

	return completion.Choices[0].Message.Content, nil
}
