// Package ai wraps an OpenAI-compatible chat-completions endpoint used to
// draft app descriptions from a title, URL, and tags.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the OpenAI API endpoint used when none is configured.
const DefaultBaseURL = "https://api.openai.com/v1"

// DefaultModel is a small, cheap model suitable for one-paragraph copy.
const DefaultModel = "gpt-4o-mini"

// Client calls a chat-completions API. Any OpenAI-compatible server works
// as long as BaseURL points at its /v1 root.
type Client struct {
	APIKey  string
	BaseURL string
	Model   string

	// HTTPClient is used for outbound calls; nil means a default client
	// with a 30s timeout.
	HTTPClient *http.Client
}

// NewClient builds a Client. Empty baseURL/model fall back to the OpenAI
// defaults.
func NewClient(apiKey, baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		APIKey:     apiKey,
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Model:      model,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GenerateDescription asks the model for a short storefront description of
// the app. The returned text is trimmed; an empty completion is an error.
func (c *Client) GenerateDescription(ctx context.Context, title, appURL string, tags []string) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("ai: no API key configured")
	}

	prompt := fmt.Sprintf(
		"Write a concise, friendly description (2-3 sentences, no markdown) for a web app called %q hosted at %s.",
		title, appURL,
	)
	if len(tags) > 0 {
		prompt += " Tags: " + strings.Join(tags, ", ") + "."
	}

	body, err := json.Marshal(chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You write short app-store descriptions."},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   200,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("ai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	httpc := c.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("ai: read response: %w", err)
	}

	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("ai: decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != nil {
			return "", fmt.Errorf("ai: api error: %s", out.Error.Message)
		}
		return "", fmt.Errorf("ai: api returned %d", resp.StatusCode)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("ai: no choices in response")
	}

	text := strings.TrimSpace(out.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("ai: empty completion")
	}
	return text, nil
}
