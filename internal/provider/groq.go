package provider

import (
	"context"
	"net/http"
	"time"
)

const groqEndpoint = "https://api.groq.com/openai/v1/chat/completions"

// GroqClient is the single-key fallback provider.
type GroqClient struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
}

// NewGroqClient creates a fallback provider client.
func NewGroqClient(apiKey, model string, timeout time.Duration) *GroqClient {
	return &GroqClient{
		endpoint: groqEndpoint,
		model:    model,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

// Complete sends the prompt and returns the raw completion text.
func (g *GroqClient) Complete(ctx context.Context, prompt string) (string, error) {
	body := chatRequest{
		Model:     g.model,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens: 1000,
	}
	return doChatRequest(ctx, g.client, g.endpoint, g.apiKey, body)
}
