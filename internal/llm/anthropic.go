package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	anthropicMessagesURL  = "https://api.anthropic.com/v1/messages"
	anthropicVersion      = "2023-06-01"
	defaultAnthropicModel = "claude-haiku-4-5-20251001"
	defaultMaxTokens      = 1024
)

var anthropicHTTPClient = &http.Client{Timeout: 60 * time.Second}

// 5 requests/second, burst 2
var anthropicRateLimiter = rate.NewLimiter(5, 2)

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

type AnthropicConfig struct {
	APIKey string
	Model  string
	// URL overrides the messages endpoint; empty means the public API.
	URL string
}

type Anthropic struct {
	config     AnthropicConfig
	httpClient *http.Client
}

func NewAnthropic(config AnthropicConfig) *Anthropic {
	if config.Model == "" {
		config.Model = defaultAnthropicModel
	}
	if config.URL == "" {
		config.URL = anthropicMessagesURL
	}
	return &Anthropic{config: config, httpClient: anthropicHTTPClient}
}

func (a *Anthropic) Provider() Provider { return ProviderAnthropic }

func (a *Anthropic) Generate(ctx context.Context, req Request) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}
	body, err := json.Marshal(messagesRequest{
		Model:     a.config.Model,
		MaxTokens: maxTokens,
		System:    req.System,
		Messages:  []message{{Role: "user", Content: req.Prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", a.config.APIKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	if err := anthropicRateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}
	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("anthropic request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	var out messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	for _, c := range out.Content {
		if c.Type == "text" || c.Type == "" {
			return strings.TrimSpace(c.Text), nil
		}
	}
	return "", fmt.Errorf("no text content in response")
}
