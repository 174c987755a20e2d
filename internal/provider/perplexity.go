package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const perplexityEndpoint = "https://api.perplexity.ai/chat/completions"

const perplexitySystemPrompt = "You are a helpful assistant that provides accurate information " +
	"about Indian colleges and educational institutions. Always respond with valid JSON when requested."

// PerplexityClient issues one chat completion request against the primary
// provider with a caller-supplied key. Key selection and rotation live in
// KeyManager; this type only speaks the wire protocol.
type PerplexityClient struct {
	endpoint string
	model    string
	client   *http.Client
}

// NewPerplexityClient creates a primary provider client.
func NewPerplexityClient(model string, timeout time.Duration) *PerplexityClient {
	return &PerplexityClient{
		endpoint: perplexityEndpoint,
		model:    model,
		client:   &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the prompt with the given key and returns the raw
// completion text. Maps 401/403 to ErrUnauthorized and 429 to
// ErrRateLimited so the orchestrator can rotate accordingly.
func (p *PerplexityClient) Complete(ctx context.Context, apiKey, prompt string) (string, error) {
	body := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: perplexitySystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.2,
		MaxTokens:   1000,
	}
	return doChatRequest(ctx, p.client, p.endpoint, apiKey, body)
}

// doChatRequest posts a chat completion and decodes the first choice.
func doChatRequest(ctx context.Context, client *http.Client, endpoint, apiKey string, body chatRequest) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", fmt.Errorf("%w: HTTP %d", ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", fmt.Errorf("%w: HTTP %d", ErrRateLimited, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return "", fmt.Errorf("provider returned HTTP %d: %s", resp.StatusCode, snippet)
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("provider returned no choices")
	}
	return cr.Choices[0].Message.Content, nil
}
